package write

import "context"

type writeOpts struct {
	lang   string
	style  string
	src    Source
	strict bool
	ctx    context.Context
}

// Option configures a write pass.
type Option func(*writeOpts)

// Lang overrides the document's language when selecting writers.
func Lang(lang string) Option {
	return func(o *writeOpts) {
		o.lang = lang
	}
}

// Style overrides the document's writing style.
func Style(style string) Option {
	return func(o *writeOpts) {
		o.style = style
	}
}

// Plugins sets the source of node writers, normally a *registry.Registry.
func Plugins(src Source) Option {
	return func(o *writeOpts) {
		o.src = src
	}
}

// Strict makes an unregistered node type a hard error instead of a
// diagnostic plus default-writer fallback.
func Strict() Option {
	return func(o *writeOpts) {
		o.strict = true
	}
}

// WithContext attaches a context to the pass. The engine checks it before
// each node and returns its error once cancelled.
func WithContext(ctx context.Context) Option {
	return func(o *writeOpts) {
		o.ctx = ctx
	}
}

func (o *writeOpts) cancelled() error {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Err()
}
