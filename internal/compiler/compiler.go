// Package compiler turns dialogue script text into the renderer's byte stream.
//
// Compilation is a single pass over the decoded characters. Plain text is
// encoded through the character map, markup is handled inline:
//
//	<TAG>     control tag (OPTION, RED, /RED, ANSWER, or a mugshot directive)
//	{...}     insert span, replaced by one insert marker
//	#         comment marker, ends the current message
//	..        ellipsis shorthand
//	▼\n       line continued without a line break byte
//
// In chat mode the whitespace that aligns continuation lines in the source is
// skipped. Compilation never fails; characters missing from the character map
// are reported to the configured diag.Reporter and contribute no bytes.
package compiler

import (
	"fmt"
	"strings"

	"ztc/internal/charmap"
	"ztc/internal/diag"
	"ztc/internal/opcode"
	"ztc/internal/source"
)

const (
	// defaultIndent is the alignment width skipped after a line break in chat mode.
	defaultIndent = 2
	// answerIndent widens the alignment once an answer list starts.
	answerIndent = 4
)

// Options configures a Compiler. Nil tables fall back to the embedded defaults.
type Options struct {
	Chat     bool
	Charmap  *charmap.Table
	Mugshots *charmap.Mugshots
	Reporter diag.Reporter // nil: диагностики теряются
}

// Compiler holds the configuration shared by every compile call.
// It keeps no per-script state and is safe for concurrent use.
type Compiler struct {
	opts Options
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	if opts.Charmap == nil {
		opts.Charmap = charmap.Default()
	}
	if opts.Mugshots == nil {
		opts.Mugshots = charmap.DefaultMugshots()
	}
	return &Compiler{opts: opts}
}

// Chat reports whether chat-mode layout handling is on.
func (c *Compiler) Chat() bool {
	return c.opts.Chat
}

// Compile translates one file. The result always ends with opcode.Terminator.
func (c *Compiler) Compile(f *source.File) []byte {
	e := &engine{
		opts:   &c.opts,
		cursor: NewCursor(f),
		indent: defaultIndent,
	}
	return e.run()
}

// Compile translates text with the default tables.
func Compile(text string, chat bool) []byte {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<inline>", []byte(text))
	return New(Options{Chat: chat}).Compile(fs.Get(id))
}

// engine is the state of one compile call.
type engine struct {
	opts   *Options
	cursor Cursor
	buf    Buffer

	answer  uint8 // ответов с последнего OPTION
	indent  int
	widened bool // indent already grown for an answer list
	insert  bool
	skip    int

	inTag bool
	tag   strings.Builder
}

func (e *engine) run() []byte {
	cur := &e.cursor
	for ; !cur.EOF(); cur.Bump() {
		ch := cur.Current()

		// '<' and '}' are seen even while skipping or inside an insert span.
		switch ch {
		case '<':
			e.skip = 0
		case '}':
			e.insert = false
			continue
		}

		if e.insert {
			continue
		}
		if e.skip > 0 {
			e.skip--
			continue
		}

		e.dispatch(ch)
	}

	e.buf.Append(opcode.Terminator)
	return e.buf.Bytes()
}

// indentWidth is the alignment width; zero outside chat mode.
func (e *engine) indentWidth() int {
	if !e.opts.Chat {
		return 0
	}
	return e.indent
}

func (e *engine) dispatch(ch rune) {
	cur := &e.cursor
	switch {
	case ch == '<':
		e.inTag = true
		e.tag.Reset()

	case ch == '>' && e.inTag:
		e.processTag(e.tag.String())
		e.inTag = false
		e.tag.Reset()
		// the tag lays out its own line; drop the break and its padding
		if e.opts.Chat && cur.PeekIs(1, '\n') {
			e.skip = e.indentWidth() + 1
		}

	case ch == '{':
		e.insert = true
		e.buf.Append(opcode.Insert)

	case ch == '\n':
		continued := cur.PeekIs(-1, opcode.ForwardMarker)
		if !continued {
			e.buf.Append(opcode.LineBreak)
		}
		e.skip = e.indentWidth()
		if e.opts.Chat && continued {
			e.skip++
		}
		// tags and comments are never preceded by padding
		if cur.PeekIs(1, '<') || cur.PeekIs(1, '#') {
			e.skip = 0
		}

	case ch == '#':
		e.buf.PopIf(opcode.LineBreak)
		e.buf.Append(opcode.Terminator)
		// TODO: swallow the whole comment line; today only the next
		// character goes and longer comment bodies are encoded as text.
		e.skip = 1

	case e.inTag:
		e.tag.WriteRune(ch)

	default:
		e.encode(ch)
	}
}

func (e *engine) encode(ch rune) {
	cur := &e.cursor
	next, _ := cur.Peek(1)

	switch {
	case ch == '.' && next == '.':
		e.skip = 1
		e.buf.Append(opcode.Ellipsis)
		return
	case ch == '工' && next == '場':
		e.skip = 1
		e.buf.Append(opcode.Factory[:]...)
		return
	case ch == '場' && next == '合':
		e.skip = 1
		e.buf.Append(opcode.Occasion[:]...)
		return
	}

	// longest key first, so table shorthands win over single characters
	for n := e.opts.Charmap.MaxKeyLen(); n >= 1; n-- {
		key, ok := cur.Text(n)
		if !ok {
			continue
		}
		if code, found := e.opts.Charmap.Lookup(key); found {
			if code == uint16(opcode.Space) {
				e.buf.AppendTrimmable(opcode.Space)
			} else {
				e.buf.AppendCode(code)
			}
			e.skip = n - 1
			return
		}
	}

	if e.opts.Reporter != nil {
		diag.ReportWarning(e.opts.Reporter, diag.LexUnmappedChar, cur.Span(1),
			fmt.Sprintf("no character map entry for %q (U+%04X)", ch, ch)).Emit()
	}
}
