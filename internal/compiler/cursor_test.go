package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ztc/internal/source"
)

func newTestCursor(text string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c", []byte(text))
	return NewCursor(fs.Get(id))
}

func TestCursorPeek(t *testing.T) {
	c := newTestCursor("aあb")
	require.False(t, c.EOF())
	assert.Equal(t, 'a', c.Current())

	_, ok := c.Peek(-1)
	assert.False(t, ok)
	r, ok := c.Peek(1)
	assert.True(t, ok)
	assert.Equal(t, 'あ', r)

	c.Bump()
	c.Bump()
	assert.Equal(t, 2, c.Pos())
	assert.True(t, c.PeekIs(-1, 'あ'))
	assert.False(t, c.PeekIs(1, 'b'))

	c.Bump()
	assert.True(t, c.EOF())
	assert.Equal(t, rune(0), c.Current())
	c.Bump()
	assert.Equal(t, 3, c.Pos())
}

func TestCursorTextAndSpan(t *testing.T) {
	c := newTestCursor("aあb")
	s, ok := c.Text(2)
	assert.True(t, ok)
	assert.Equal(t, "aあ", s)
	_, ok = c.Text(4)
	assert.False(t, ok)

	c.Bump()
	sp := c.Span(1)
	assert.Equal(t, uint32(1), sp.Start)
	assert.Equal(t, uint32(4), sp.End)

	// spans are clamped to the end of input
	sp = c.Span(10)
	assert.Equal(t, uint32(5), sp.End)
}

func TestCursorInvalidUTF8(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad", []byte{'a', 0xFF, 'b'})
	c := NewCursor(fs.Get(id))
	c.Bump()
	assert.Equal(t, '\uFFFD', c.Current())
	assert.Equal(t, uint32(2), c.Span(1).End)
}
