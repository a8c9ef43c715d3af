package eval

import (
	"fmt"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/node"
)

// Converter rewrites expression processing instructions into the text of
// their result. Register it for the processing-instruction node type of a
// language pair.
type Converter struct {
	convert.Base

	// Env is the variable environment handed to every expression.
	Env Env
}

func (c Converter) Process(cv *convert.Conversion, src, dst *node.Node) error {
	v, err := Eval(src.Data, cv, src, c.Env)
	if err != nil {
		return err
	}
	var out string
	if v != nil {
		out = fmt.Sprint(v)
	}
	repl := node.NewText(out).At(src.Span.Begin)
	repl.Span.End = src.Span.End
	repl.Parent = dst.Parent
	repl.ParentIndex = dst.ParentIndex
	*dst = *repl
	return nil
}
