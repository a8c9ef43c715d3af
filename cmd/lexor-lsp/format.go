package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/jmlopez-rod/lexor/write"
)

// Formatting rewrites the whole document through the write engine of its
// language, which normalizes the constructs the parser recognized.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	if doc.log.HasErrors() {
		// Never reformat a document that did not parse cleanly.
		return nil, nil
	}

	formatted, _, err := write.Write(doc.doc, write.Plugins(s.reg))
	if err != nil {
		s.logger.Warn("formatting failed", zap.String("uri", doc.uri), zap.Error(err))
		return nil, nil
	}
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}, nil
}
