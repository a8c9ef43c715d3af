package eval

import (
	"testing"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/node"
)

type converterSource map[string]convert.NodeConverter

func (s converterSource) NodeConverters(fromLang, toLang, style string) map[string]convert.NodeConverter {
	return s
}

func (s converterSource) Mapping(fromLang, toLang, style string) convert.Mapping {
	return nil
}

func TestEval(t *testing.T) {
	t.Setenv("LEXOR_TEST_VALUE", "ok")
	n := node.NewElement("a")
	n.SetAttr("id", "42")
	child := node.NewData("?expr", "")
	if err := n.Append(child); err != nil {
		t.Fatal(err)
	}

	cv := new(convert.Conversion)
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "arith", in: "1 + 2", want: 3},
		{name: "string", in: `"a" + "b"`, want: "ab"},
		{name: "env", in: `getenv("LEXOR_TEST_VALUE")`, want: "ok"},
		{name: "attr from ancestor", in: `attr("id")`, want: "42"},
		{name: "missing attr", in: `attr("nope")`, want: ""},
		{name: "whereami", in: "whereami()", want: "a/?expr[0]"},
		{name: "vars", in: "x * 2", want: 10},
	}
	env := Env{"x": 5}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.in, cv, child, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("Eval(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
			}
		})
	}
}

func TestEvalSetGet(t *testing.T) {
	cv := new(convert.Conversion)
	n := node.NewData("?expr", "")
	if _, err := Eval(`set("k", 7)`, cv, n, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Eval(`get("k")`, cv, n, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Fatalf("get = %v, want 7", got)
	}
}

func TestEvalReservedSet(t *testing.T) {
	cv := new(convert.Conversion)
	n := node.NewData("?expr", "")
	if _, err := Eval(`set("doc", 1)`, cv, n, nil); err == nil {
		t.Fatal("expected error setting a reserved key")
	}
}

func TestEvalCompileError(t *testing.T) {
	cv := new(convert.Conversion)
	n := node.NewData("?expr", "")
	if _, err := Eval("1 +", cv, n, nil); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestConverter(t *testing.T) {
	doc := node.NewDocument("x", "default")
	doc.Root.Append(node.NewText("sum="))
	doc.Root.Append(node.NewData("?expr", "2 + 3").At(4))

	out, log, err := convert.Convert(doc, "x",
		convert.Plugins(converterSource{"?expr": Converter{}}))
	if err != nil {
		t.Fatal(err)
	}
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log)
	}
	if len(out.Root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(out.Root.Children))
	}
	res := out.Root.Children[1]
	if res.Type != node.TextType || res.Data != "5" {
		t.Fatalf("result node = %+v, want #text 5", res)
	}
	if res.Parent != out.Root || res.ParentIndex != 1 {
		t.Fatal("replacement lost its parent links")
	}
}

func TestConverterError(t *testing.T) {
	doc := node.NewDocument("x", "default")
	doc.Root.Append(node.NewData("?expr", "1 +"))

	_, log, err := convert.Convert(doc, "x",
		convert.Plugins(converterSource{"?expr": Converter{}}))
	if err != nil {
		t.Fatal(err)
	}
	if !log.HasErrors() {
		t.Fatal("expected a diagnostic for the bad expression")
	}
}

func TestPath(t *testing.T) {
	r := node.NewElement(node.RootType)
	a := node.NewElement("a")
	r.Append(a)
	b := node.NewElement("b")
	a.Append(node.NewText("x"))
	a.Append(b)
	if got := Path(b); got != "#document/a[0]/b[1]" {
		t.Fatalf("Path = %q", got)
	}
}
