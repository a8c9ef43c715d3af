package lexor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/tagml"
	"github.com/jmlopez-rod/lexor/write"
)

func TestParseWriteRoundTrip(t *testing.T) {
	in := `<a href="x">hi<!-- note --></a>`
	doc, log, err := Parse(in, tagml.Lang)
	if err != nil {
		t.Fatal(err)
	}
	if log.HasErrors() {
		t.Fatalf("diagnostics: %v", log)
	}
	out, wlog, err := Write(doc)
	if err != nil {
		t.Fatal(err)
	}
	if wlog.HasErrors() {
		t.Fatalf("diagnostics: %v", wlog)
	}
	if out != in {
		t.Fatalf("round trip changed text:\n in: %q\nout: %q", in, out)
	}
}

func TestReadInfersLang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tagml")
	if err := os.WriteFile(path, []byte(`<a>hi</a>`), 0644); err != nil {
		t.Fatal(err)
	}
	doc, log, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if log.HasErrors() {
		t.Fatalf("diagnostics: %v", log)
	}
	if doc.Lang != tagml.Lang {
		t.Fatalf("lang = %q, want %q", doc.Lang, tagml.Lang)
	}
	if doc.URI != path {
		t.Fatalf("uri = %q, want %q", doc.URI, path)
	}
	if len(doc.Root.Children) != 1 || doc.Root.Children[0].Type != "a" {
		t.Fatalf("bad tree: %+v", doc.Root.Children)
	}
}

func TestWriteFile(t *testing.T) {
	doc, _, err := Parse(`<a>hi</a>`, tagml.Lang)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.tagml")
	if _, err := WriteFile(path, doc); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `<a>hi</a>` {
		t.Fatalf("file = %q", d)
	}
}

func TestConvertTop(t *testing.T) {
	doc, _, err := Parse(`<?expr 40 + 2?>`, tagml.Lang)
	if err != nil {
		t.Fatal(err)
	}
	out, log, err := Convert(doc, tagml.Lang)
	if err != nil {
		t.Fatal(err)
	}
	if log.HasErrors() {
		t.Fatalf("diagnostics: %v", log)
	}
	if len(out.Root.Children) != 1 {
		t.Fatalf("children = %+v", out.Root.Children)
	}
	res := out.Root.Children[0]
	if res.Type != node.TextType || res.Data != "42" {
		t.Fatalf("result = %+v", res)
	}
}

func TestWriteMinStyleOverride(t *testing.T) {
	doc, _, err := Parse(`<a>hi<!-- x --></a>`, tagml.Lang)
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := Write(doc, write.Style(tagml.StyleMin))
	if err != nil {
		t.Fatal(err)
	}
	if out != `<a>hi</a>` {
		t.Fatalf("out = %q", out)
	}
}
