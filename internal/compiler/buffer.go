package compiler

import "ztc/internal/charmap"

// Buffer is the output byte stream. Besides appends it supports exactly two
// edits of its tail, both used by tag handling.
//
// Bytes written with Append or AppendCode are sealed: TrimTail never removes
// them. Only bytes written with AppendTrimmable can be trimmed.
type Buffer struct {
	b     []byte
	floor int // TrimTail не опускается ниже
}

// Append adds sealed bytes.
func (b *Buffer) Append(bs ...byte) {
	b.b = append(b.b, bs...)
	b.floor = len(b.b)
}

// AppendCode adds a sealed character-map code, two bytes when it exceeds 0xFF.
func (b *Buffer) AppendCode(code uint16) {
	b.b = charmap.AppendCode(b.b, code)
	b.floor = len(b.b)
}

// AppendTrimmable adds bytes a following TrimTail may remove.
func (b *Buffer) AppendTrimmable(bs ...byte) {
	b.b = append(b.b, bs...)
}

// PopIf removes the last byte when it equals v.
func (b *Buffer) PopIf(v byte) bool {
	n := len(b.b)
	if n == 0 || b.b[n-1] != v {
		return false
	}
	b.b = b.b[:n-1]
	b.floor = min(b.floor, len(b.b))
	return true
}

// TrimTail removes trailing trimmable bytes equal to v and returns how many went.
func (b *Buffer) TrimTail(v byte) int {
	n := len(b.b)
	for n > b.floor && b.b[n-1] == v {
		n--
	}
	removed := len(b.b) - n
	b.b = b.b[:n]
	return removed
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns the underlying slice.
func (b *Buffer) Bytes() []byte {
	return b.b
}
