// Package registry collects the parsers, writers, converters, and mapping
// tables that language packages contribute, and serves them to the engines.
// A registry is populated at startup, sealed, and then read concurrently.
package registry

import (
	"fmt"
	"sync"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/write"
)

type parseKey struct {
	lang, style string
}

type convertKey struct {
	from, to, style string
}

// Registry implements parse.Source, write.Source, and convert.Source.
type Registry struct {
	mu         sync.RWMutex
	sealed     bool
	parsers    map[parseKey][]parse.NodeParser
	writers    map[parseKey]map[string]write.NodeWriter
	converters map[convertKey]map[string]convert.NodeConverter
	mappings   map[convertKey]convert.Mapping
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		parsers:    map[parseKey][]parse.NodeParser{},
		writers:    map[parseKey]map[string]write.NodeWriter{},
		converters: map[convertKey]map[string]convert.NodeConverter{},
		mappings:   map[convertKey]convert.Mapping{},
	}
}

// RegisterParser appends a node parser for a language and style. Order of
// registration is the trigger precedence: the first parser whose Trigger
// matches wins.
func (r *Registry) RegisterParser(lang, style string, np parse.NodeParser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	k := parseKey{lang, style}
	r.parsers[k] = append(r.parsers[k], np)
	return nil
}

// RegisterWriter binds a node writer to a node type for a language and
// style. Registering the same type twice is an error.
func (r *Registry) RegisterWriter(lang, style, nodeType string, nw write.NodeWriter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	k := parseKey{lang, style}
	if r.writers[k] == nil {
		r.writers[k] = map[string]write.NodeWriter{}
	}
	if _, ok := r.writers[k][nodeType]; ok {
		return fmt.Errorf("%w: writer for %s in %s.%s", ErrDuplicate, nodeType, lang, style)
	}
	r.writers[k][nodeType] = nw
	return nil
}

// RegisterConverter binds a node converter to a source node type for a
// language pair and conversion style. Registering the same type twice is
// an error.
func (r *Registry) RegisterConverter(fromLang, toLang, style, nodeType string, nc convert.NodeConverter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	k := convertKey{fromLang, toLang, style}
	if r.converters[k] == nil {
		r.converters[k] = map[string]convert.NodeConverter{}
	}
	if _, ok := r.converters[k][nodeType]; ok {
		return fmt.Errorf("%w: converter for %s in %s>%s.%s", ErrDuplicate, nodeType, fromLang, toLang, style)
	}
	r.converters[k][nodeType] = nc
	return nil
}

// RegisterMapping merges rename rules into the mapping table of a language
// pair and conversion style. A rule for an already mapped type is an error.
func (r *Registry) RegisterMapping(fromLang, toLang, style string, m convert.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	k := convertKey{fromLang, toLang, style}
	if r.mappings[k] == nil {
		r.mappings[k] = convert.Mapping{}
	}
	for typ, rule := range m {
		if _, ok := r.mappings[k][typ]; ok {
			return fmt.Errorf("%w: mapping for %s in %s>%s.%s", ErrDuplicate, typ, fromLang, toLang, style)
		}
		r.mappings[k][typ] = rule
	}
	return nil
}

// Seal freezes the registry. Registrations after Seal fail, which makes
// concurrent reads by the engines safe without further locking.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// NodeParsers implements parse.Source.
func (r *Registry) NodeParsers(lang, style string) []parse.NodeParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsers[parseKey{lang, style}]
}

// NodeWriters implements write.Source.
func (r *Registry) NodeWriters(lang, style string) map[string]write.NodeWriter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writers[parseKey{lang, style}]
}

// NodeConverters implements convert.Source.
func (r *Registry) NodeConverters(fromLang, toLang, style string) map[string]convert.NodeConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[convertKey{fromLang, toLang, style}]
}

// Mapping implements convert.Source.
func (r *Registry) Mapping(fromLang, toLang, style string) convert.Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappings[convertKey{fromLang, toLang, style}]
}
