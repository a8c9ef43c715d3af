package main

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/registry"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
	reg  *registry.Registry
}

type document struct {
	uri     string
	content string
	version int32
	lang    string
	doc     *node.Document
	log     diag.List
	pos     *parse.PosIndex
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	lang := strings.TrimPrefix(filepath.Ext(uri), ".")
	src := []byte(content)
	doc, log, err := parse.Parse(src,
		parse.Lang(lang),
		parse.Plugins(ds.reg))
	if err != nil {
		log.Errorf(parse.CodeMalformed, node.Span{}, "%v", err)
		doc = nil
	}
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		lang:    lang,
		doc:     doc,
		log:     log,
		pos:     parse.NewPosIndex(src),
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(doc.log))
	for _, d := range doc.log {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    spanRange(doc.pos, d.Span),
			Severity: severity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Source:   "lexor",
		})
	}

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func spanRange(pos *parse.PosIndex, sp node.Span) protocol.Range {
	bl, bc := pos.LineCol(sp.Begin)
	end := sp.End
	if end < sp.Begin {
		end = sp.Begin
	}
	el, ec := pos.LineCol(end)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(bl), Character: uint32(bc)},
		End:   protocol.Position{Line: uint32(el), Character: uint32(ec)},
	}
}

func severity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("open", zap.String("uri", string(params.TextDocument.URI)))
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		rangeVal := change.Range
		if rangeVal.Start.Line == 0 && rangeVal.Start.Character == 0 && rangeVal.End.Line == 0 && rangeVal.End.Character == 0 {
			// Full document replacement.
			content = change.Text
			continue
		}
		startOffset := lineColToOffset(content, int(rangeVal.Start.Line), int(rangeVal.Start.Character))
		endOffset := lineColToOffset(content, int(rangeVal.End.Line), int(rangeVal.End.Character))
		if startOffset <= len(content) && endOffset <= len(content) && startOffset <= endOffset {
			content = content[:startOffset] + change.Text + content[endOffset:]
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(content)
}
