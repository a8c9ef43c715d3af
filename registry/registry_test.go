package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/write"
)

type fakeParser struct {
	id int
}

func (fakeParser) Trigger(ct *parse.Caret) bool { return false }

func (fakeParser) MakeNode(ct *parse.Caret, log *diag.List) (*node.Node, error) {
	return nil, nil
}

type fakeWriter struct {
	write.Base
}

type fakeConverter struct {
	convert.Base
}

func TestParserOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterParser("x", "default", fakeParser{id: 1}))
	require.NoError(t, r.RegisterParser("x", "default", fakeParser{id: 2}))
	require.NoError(t, r.RegisterParser("x", "other", fakeParser{id: 3}))

	ps := r.NodeParsers("x", "default")
	require.Len(t, ps, 2)
	require.Equal(t, 1, ps[0].(fakeParser).id)
	require.Equal(t, 2, ps[1].(fakeParser).id)
	require.Len(t, r.NodeParsers("x", "other"), 1)
	require.Empty(t, r.NodeParsers("y", "default"))
}

func TestDuplicateWriter(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterWriter("x", "default", "a", fakeWriter{}))
	err := r.RegisterWriter("x", "default", "a", fakeWriter{})
	require.ErrorIs(t, err, ErrDuplicate)
	// Same type under another style is fine.
	require.NoError(t, r.RegisterWriter("x", "min", "a", fakeWriter{}))
}

func TestDuplicateConverter(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterConverter("x", "y", "default", "a", fakeConverter{}))
	err := r.RegisterConverter("x", "y", "default", "a", fakeConverter{})
	require.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, r.RegisterConverter("y", "x", "default", "a", fakeConverter{}))
	// Same type under another style is fine.
	require.NoError(t, r.RegisterConverter("x", "y", "min", "a", fakeConverter{}))
}

func TestMappingMerge(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterMapping("x", "y", "default", convert.Mapping{
		"a": {Type: "link"},
	}))
	require.NoError(t, r.RegisterMapping("x", "y", "default", convert.Mapping{
		"b": {Type: "box"},
	}))
	err := r.RegisterMapping("x", "y", "default", convert.Mapping{
		"a": {Type: "anchor"},
	})
	require.ErrorIs(t, err, ErrDuplicate)

	m := r.Mapping("x", "y", "default")
	require.Equal(t, "link", m["a"].Type)
	require.Equal(t, "box", m["b"].Type)
	require.Nil(t, r.Mapping("x", "y", "min"))
}

func TestSeal(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterParser("x", "default", fakeParser{}))
	r.Seal()
	require.ErrorIs(t, r.RegisterParser("x", "default", fakeParser{}), ErrSealed)
	require.ErrorIs(t, r.RegisterWriter("x", "default", "a", fakeWriter{}), ErrSealed)
	require.ErrorIs(t, r.RegisterConverter("x", "y", "default", "a", fakeConverter{}), ErrSealed)
	require.ErrorIs(t, r.RegisterMapping("x", "y", "default", nil), ErrSealed)
	require.Len(t, r.NodeParsers("x", "default"), 1)
}
