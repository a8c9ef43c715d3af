// Package diag collects per-pass diagnostics. A pass over a document returns
// a complete result together with zero or more diagnostics; only the fatal
// errors defined by each engine abort a pass.
package diag

import (
	"fmt"

	"github.com/jmlopez-rod/lexor/node"
)

type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic records one message attached to a source span. Codes follow the
// style module convention: E for errors, W for warnings.
type Diagnostic struct {
	Code     string
	Message  string
	Span     node.Span
	Severity Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// List accumulates diagnostics for one pass.
type List []Diagnostic

func (l *List) Errorf(code string, span node.Span, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		Severity: Error,
	})
}

func (l *List) Warnf(code string, span node.Span, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		Severity: Warning,
	})
}

// HasErrors reports whether the list contains an error severity entry.
func (l List) HasErrors() bool {
	for i := range l {
		if l[i].Severity == Error {
			return true
		}
	}
	return false
}
