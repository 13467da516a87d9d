package compiler

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ztc/internal/source"
)

// Cursor walks a file one decoded character at a time.
// Peeks outside the input report ok=false instead of panicking.
type Cursor struct {
	file  *source.File
	runes []rune
	offs  []uint32 // байтовое смещение каждого символа + len(Content) в конце
	pos   int
}

// NewCursor decodes the file content. Invalid UTF-8 bytes become U+FFFD.
func NewCursor(f *source.File) Cursor {
	n := utf8.RuneCount(f.Content)
	c := Cursor{
		file:  f,
		runes: make([]rune, 0, n),
		offs:  make([]uint32, 0, n+1),
	}
	for off := 0; off < len(f.Content); {
		r, size := utf8.DecodeRune(f.Content[off:])
		c.runes = append(c.runes, r)
		c.offs = append(c.offs, toOffset(off))
		off += size
	}
	c.offs = append(c.offs, toOffset(len(f.Content)))
	return c
}

func toOffset(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("file offset overflow: %w", err))
	}
	return off
}

// EOF reports whether every character has been consumed.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.runes)
}

// Pos returns the index of the current character.
func (c *Cursor) Pos() int {
	return c.pos
}

// Current returns the character under the cursor, or 0 at EOF.
func (c *Cursor) Current() rune {
	if c.EOF() {
		return 0
	}
	return c.runes[c.pos]
}

// Peek returns the character delta positions away from the current one.
// Negative deltas look back.
func (c *Cursor) Peek(delta int) (rune, bool) {
	i := c.pos + delta
	if i < 0 || i >= len(c.runes) {
		return 0, false
	}
	return c.runes[i], true
}

// PeekIs reports whether the character at delta exists and equals r.
func (c *Cursor) PeekIs(delta int, r rune) bool {
	got, ok := c.Peek(delta)
	return ok && got == r
}

// Bump advances by one character.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.pos++
	}
}

// Text returns the n characters starting at the cursor.
func (c *Cursor) Text(n int) (string, bool) {
	if n <= 0 || c.pos+n > len(c.runes) {
		return "", false
	}
	return string(c.runes[c.pos : c.pos+n]), true
}

// Span covers the n characters starting at the cursor.
func (c *Cursor) Span(n int) source.Span {
	end := min(c.pos+n, len(c.runes))
	start := min(c.pos, len(c.runes))
	return source.Span{
		File:  c.file.ID,
		Start: c.offs[start],
		End:   c.offs[end],
	}
}
