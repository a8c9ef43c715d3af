// Package debug provides env-gated trace logging for the engines. Each
// gate is switched on by its LEXOR_DEBUG_* environment variable and writes
// to stderr; when off, logging is a no-op.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Gate is one switchable trace stream.
type Gate struct {
	on bool
}

var (
	Parse   Gate
	Write   Gate
	Convert Gate
	Eval    Gate
)

func init() {
	Parse = Gate{on: boolEnv("LEXOR_DEBUG_PARSE")}
	Write = Gate{on: boolEnv("LEXOR_DEBUG_WRITE")}
	Convert = Gate{on: boolEnv("LEXOR_DEBUG_CONVERT")}
	Eval = Gate{on: boolEnv("LEXOR_DEBUG_EVAL")}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// On reports whether the gate is enabled.
func (g Gate) On() bool {
	return g.on
}

// Logf writes a formatted line to stderr when the gate is on.
func (g Gate) Logf(msg string, args ...any) {
	if !g.on {
		return
	}
	for i := range args {
		switch args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(args[i], "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", args[i])
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
}

// LogAny writes a value as JSON to stderr when the gate is on.
func (g Gate) LogAny(v any) {
	if !g.on {
		return
	}
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
