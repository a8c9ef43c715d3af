package parse

import "context"

type parseOpts struct {
	lang  string
	style string
	src   Source
	ctx   context.Context
}

// Option configures a parse pass.
type Option func(*parseOpts)

// Lang selects the language whose node parsers run. Defaults to the empty
// language, which only produces raw text nodes.
func Lang(lang string) Option {
	return func(o *parseOpts) {
		o.lang = lang
	}
}

// Style selects a parsing style within the language. Defaults to "default".
func Style(style string) Option {
	return func(o *parseOpts) {
		o.style = style
	}
}

// Plugins sets the source of node parsers, normally a *registry.Registry.
func Plugins(src Source) Option {
	return func(o *parseOpts) {
		o.src = src
	}
}

// WithContext attaches a context to the pass. The engine checks it between
// node parser invocations and returns its error once cancelled.
func WithContext(ctx context.Context) Option {
	return func(o *parseOpts) {
		o.ctx = ctx
	}
}

func (o *parseOpts) cancelled() error {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Err()
}
