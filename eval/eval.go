// Package eval evaluates the expressions embedded in documents as
// processing instructions. Expressions run in the expr language with a
// small set of document functions.
package eval

import (
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/debug"
	"github.com/jmlopez-rod/lexor/node"
)

// Env holds the variables visible to an expression.
type Env map[string]any

// exprOpts are the functions available to document expressions.
func exprOpts(cv *convert.Conversion, n *node.Node) []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("whereami", func(params ...any) (any, error) {
			return Path(n), nil
		},
			new(func() string)),
		expr.Function("attr", func(params ...any) (any, error) {
			name := params[0].(string)
			for a := n; a != nil; a = a.Parent {
				if v, ok := a.Attr(name); ok {
					return v, nil
				}
			}
			return "", nil
		},
			new(func(string) string)),
		expr.Function("get", func(params ...any) (any, error) {
			v, _ := cv.Get(params[0].(string))
			return v, nil
		},
			new(func(string) any)),
		expr.Function("set", func(params ...any) (any, error) {
			key := params[0].(string)
			if err := cv.Set(key, params[1]); err != nil {
				return nil, err
			}
			return params[1], nil
		},
			new(func(string, any) any)),
	}
}

// Eval compiles and runs input at node n within a conversion.
func Eval(input string, cv *convert.Conversion, n *node.Node, env Env) (any, error) {
	debug.Eval.Logf("eval %q at %s", input, Path(n))
	program, err := expr.Compile(input, exprOpts(cv, n)...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", input, err)
	}
	out, err := vm.Run(program, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", input, err)
	}
	return out, nil
}

// Path renders the position of a node in its tree, for messages and the
// whereami function.
func Path(n *node.Node) string {
	var parts []string
	for a := n; a != nil; a = a.Parent {
		if a.Parent == nil {
			parts = append(parts, a.Type)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s[%d]", a.Type, a.ParentIndex))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}
