package parse

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Caret is the parser's cursor into the source buffer. It only moves
// forward; node parsers advance it as they consume input. One caret belongs
// to one parse pass and is never shared.
type Caret struct {
	d   []byte
	off int
}

func newCaret(d []byte) *Caret {
	return &Caret{d: d}
}

// Offset returns the current byte offset.
func (c *Caret) Offset() int {
	return c.off
}

// EOF reports whether the caret is past the last byte.
func (c *Caret) EOF() bool {
	return c.off >= len(c.d)
}

// Byte returns the byte under the caret. It is only valid when !EOF.
func (c *Caret) Byte() byte {
	return c.d[c.off]
}

// Rest returns the unconsumed tail of the buffer.
func (c *Caret) Rest() []byte {
	return c.d[c.off:]
}

// HasPrefix reports whether the unconsumed input starts with s.
func (c *Caret) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.d[c.off:], []byte(s))
}

// Advance moves the caret forward n bytes, clamped to the end of the buffer.
func (c *Caret) Advance(n int) {
	c.off += n
	if c.off > len(c.d) {
		c.off = len(c.d)
	}
}

// ReadUntil consumes input up to but excluding the next occurrence of stop
// and returns it. When stop does not occur the caret consumes the rest of
// the buffer and ok is false.
func (c *Caret) ReadUntil(stop string) (s string, ok bool) {
	i := bytes.Index(c.d[c.off:], []byte(stop))
	if i < 0 {
		s = string(c.d[c.off:])
		c.off = len(c.d)
		return s, false
	}
	s = string(c.d[c.off : c.off+i])
	c.off += i
	return s, true
}

// PosIndex maps byte offsets to line and column numbers, both zero based.
// Build one per source buffer when rendering diagnostics.
type PosIndex struct {
	d []byte
	n []int
}

// NewPosIndex indexes the newline offsets of d.
func NewPosIndex(d []byte) *PosIndex {
	p := &PosIndex{d: d}
	for i, b := range d {
		if b == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol returns the zero based line and column of a byte offset.
func (p *PosIndex) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

// Describe renders an offset with a small sample of surrounding input, for
// error messages.
func (p *PosIndex) Describe(off int) string {
	lo := max(0, off-5)
	hi := min(off+5, len(p.d))
	sample := strconv.Quote(string(p.d[lo:hi]))
	sample = sample[1 : len(sample)-1]
	l, c := p.LineCol(off)
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, off, l, c)
}
