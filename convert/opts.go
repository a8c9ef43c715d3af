package convert

import "context"

type convertOpts struct {
	style  string
	src    Source
	strict bool
	ctx    context.Context
}

// Option configures a convert pass.
type Option func(*convertOpts)

// Style selects the converter set to run and becomes the style of the
// output document. Defaults to "default".
func Style(style string) Option {
	return func(o *convertOpts) {
		o.style = style
	}
}

// Plugins sets the source of node converters, normally a *registry.Registry.
func Plugins(src Source) Option {
	return func(o *convertOpts) {
		o.src = src
	}
}

// Strict records an error diagnostic for each unregistered node type and
// aborts the pass on the first converter failure or ancestor mutation.
// The default carries unregistered types over silently and downgrades the
// fatal cases to diagnostics.
func Strict() Option {
	return func(o *convertOpts) {
		o.strict = true
	}
}

// WithContext attaches a context to the pass. The engine checks it before
// each node and returns its error once cancelled.
func WithContext(ctx context.Context) Option {
	return func(o *convertOpts) {
		o.ctx = ctx
	}
}

func (o *convertOpts) cancelled() error {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Err()
}
