// Package tagml implements a small tag markup language: tags with quoted
// attributes, comments, and processing instructions. It exercises every
// engine and serves as the template for writing language plugins.
package tagml

import (
	"github.com/jmlopez-rod/lexor/eval"
	"github.com/jmlopez-rod/lexor/registry"
	"github.com/jmlopez-rod/lexor/style"
	"github.com/jmlopez-rod/lexor/write"
)

// Lang is the language name tagml registers under.
const Lang = "tagml"

// Default and minified writing styles.
const (
	StyleDefault = "default"
	StyleMin     = "min"
)

// Info describes the plugin.
var Info = style.Info{
	Lang:        Lang,
	Style:       StyleDefault,
	Version:     "0.1.0",
	License:     "BSD",
	Description: "tag markup with comments and processing instructions",
}

// Register contributes the tagml parsers, writers, and the expression
// converter to r. Parser order matters: comments and processing
// instructions trigger on prefixes of the tag trigger.
func Register(r *registry.Registry) error {
	regs := []func() error{
		func() error { return r.RegisterParser(Lang, StyleDefault, CommentParser{}) },
		func() error { return r.RegisterParser(Lang, StyleDefault, PIParser{}) },
		func() error { return r.RegisterParser(Lang, StyleDefault, ElementParser{}) },

		func() error { return r.RegisterWriter(Lang, StyleDefault, CommentType, CommentWriter{}) },
		func() error { return r.RegisterWriter(Lang, StyleDefault, write.DefaultType, TagWriter{}) },

		func() error { return r.RegisterWriter(Lang, StyleMin, CommentType, dropWriter{}) },
		func() error { return r.RegisterWriter(Lang, StyleMin, write.DefaultType, TagWriter{}) },

		func() error { return r.RegisterConverter(Lang, Lang, StyleDefault, PIPrefix+"expr", eval.Converter{}) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}
