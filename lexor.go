// Package lexor is a document transformation engine. Text is parsed into
// a tree of typed nodes, the tree can be converted between languages, and
// written back out in a chosen style. Languages are plugins registered in
// a registry; package tagml is the built-in one.
package lexor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/registry"
	"github.com/jmlopez-rod/lexor/tagml"
	"github.com/jmlopez-rod/lexor/write"
)

var (
	defaultOnce sync.Once
	defaultReg  *registry.Registry
)

// DefaultRegistry returns the shared registry with the built-in languages
// registered and sealed. Programs that need their own plugins build a
// *registry.Registry directly and pass it to the engines.
func DefaultRegistry() *registry.Registry {
	defaultOnce.Do(func() {
		defaultReg = registry.New()
		if err := tagml.Register(defaultReg); err != nil {
			panic(fmt.Sprintf("registering built-in languages: %v", err))
		}
		defaultReg.Seal()
	})
	return defaultReg
}

// Parse parses text in lang using the default registry.
func Parse(text, lang string, opts ...parse.Option) (*node.Document, diag.List, error) {
	all := append([]parse.Option{
		parse.Lang(lang),
		parse.Plugins(DefaultRegistry()),
	}, opts...)
	return parse.Parse([]byte(text), all...)
}

// Read parses the file at path, inferring the language from the file
// extension.
func Read(path string, opts ...parse.Option) (*node.Document, diag.List, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	all := append([]parse.Option{
		parse.Lang(lang),
		parse.Plugins(DefaultRegistry()),
	}, opts...)
	doc, log, err := parse.Parse(d, all...)
	if doc != nil {
		doc.URI = path
	}
	return doc, log, err
}

// Write renders doc using the default registry.
func Write(doc *node.Document, opts ...write.Option) (string, diag.List, error) {
	all := append([]write.Option{write.Plugins(DefaultRegistry())}, opts...)
	return write.Write(doc, all...)
}

// WriteFile renders doc into the file at path.
func WriteFile(path string, doc *node.Document, opts ...write.Option) (diag.List, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	all := append([]write.Option{write.Plugins(DefaultRegistry())}, opts...)
	log, err := write.WriteTo(f, doc, all...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return log, err
}

// Convert builds a toLang document from doc using the default registry.
func Convert(doc *node.Document, toLang string, opts ...convert.Option) (*node.Document, diag.List, error) {
	all := append([]convert.Option{convert.Plugins(DefaultRegistry())}, opts...)
	return convert.Convert(doc, toLang, all...)
}
