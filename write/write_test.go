package write

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmlopez-rod/lexor/node"
)

// wrapWriter brackets its node with its type name.
type wrapWriter struct {
	Base
}

func (wrapWriter) Start(pr *Printer, n *node.Node) {
	pr.Printf("<%s>", n.Type)
}

func (wrapWriter) End(pr *Printer, n *node.Node) {
	pr.Printf("</%s>", n.Type)
}

// skipBWriter suppresses children of type "b".
type skipBWriter struct {
	wrapWriter
}

func (skipBWriter) Child(pr *Printer, child *node.Node) bool {
	return child.Type != "b"
}

type writerSource map[string]NodeWriter

func (s writerSource) NodeWriters(lang, style string) map[string]NodeWriter {
	return s
}

func sampleDoc() *node.Document {
	doc := node.NewDocument("x", "default")
	a := node.NewElement("a")
	a.Append(node.NewText("hi"))
	b := node.NewElement("b")
	b.Append(node.NewText("nested"))
	a.Append(b)
	doc.Root.Append(a)
	doc.Root.Append(node.NewText("!"))
	return doc
}

func TestWriteHooks(t *testing.T) {
	src := writerSource{"a": wrapWriter{}, "b": wrapWriter{}}
	out, log, err := Write(sampleDoc(), Plugins(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Fatalf("unexpected diagnostics: %v", log)
	}
	want := "<a>hi<b>nested</b></a>!"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestWriteSuppressedChild(t *testing.T) {
	src := writerSource{"a": skipBWriter{}, "b": wrapWriter{}}
	out, _, err := Write(sampleDoc(), Plugins(src))
	if err != nil {
		t.Fatal(err)
	}
	want := "<a>hi</a>!"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestWriteDefaultFallback(t *testing.T) {
	// No writer for "b": its frame is dropped but its children still
	// render, and a diagnostic records the gap.
	src := writerSource{"a": wrapWriter{}}
	out, log, err := Write(sampleDoc(), Plugins(src))
	if err != nil {
		t.Fatal(err)
	}
	want := "<a>hinested</a>!"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
	if len(log) != 1 || log[0].Code != CodeUnregistered {
		t.Fatalf("diagnostics = %v, want one %s", log, CodeUnregistered)
	}
}

func TestWriteCatchAll(t *testing.T) {
	src := writerSource{DefaultType: wrapWriter{}}
	out, log, err := Write(sampleDoc(), Plugins(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Fatalf("unexpected diagnostics: %v", log)
	}
	want := "<a>hi<b>nested</b></a>!"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestWriteStrict(t *testing.T) {
	src := writerSource{"a": wrapWriter{}}
	_, _, err := Write(sampleDoc(), Plugins(src), Strict())
	if !errors.Is(err, ErrUnregistered) {
		t.Fatalf("expected ErrUnregistered, got %v", err)
	}
}

func TestWriteTo(t *testing.T) {
	var sb strings.Builder
	src := writerSource{"a": wrapWriter{}, "b": wrapWriter{}}
	if _, err := WriteTo(&sb, sampleDoc(), Plugins(src)); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "<a>hi<b>nested</b></a>!" {
		t.Fatalf("out = %q", sb.String())
	}
}

func TestWriteCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Write(sampleDoc(), WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
