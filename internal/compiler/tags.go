package compiler

import (
	"ztc/internal/opcode"
	"ztc/internal/tag"
)

// processTag emits the bytes for one tag and updates answer numbering.
func (e *engine) processTag(text string) {
	// spaces written right before a tag carry no meaning
	e.buf.TrimTail(opcode.Space)

	t := tag.Parse(text)
	switch t.Kind {
	case tag.KindOption:
		e.answer = 0
		e.buf.Append(opcode.Option, opcode.OptionArg)

	case tag.KindRed:
		e.buf.Append(opcode.Red)

	case tag.KindUnRed:
		e.buf.Append(opcode.White)

	case tag.KindAnswer:
		old := e.answer
		e.answer++
		// the answer opcode takes the place of the line break
		e.buf.PopIf(opcode.LineBreak)
		if old == 0 {
			if !e.widened {
				e.indent += answerIndent
				e.widened = true
			}
			e.buf.Append(opcode.AnswerNext)
		} else {
			e.buf.Append(opcode.AnswerReturn)
		}
		e.buf.Append(opcode.Answer, old)

	case tag.KindMugshot:
		e.buf.Append(opcode.Mugshot, e.mugshotValue(t))
		if t.Top() {
			e.buf.Append(opcode.Top)
		}
		if t.Bottom() {
			e.buf.Append(opcode.Bottom)
		}
	}
}

// mugshotValue packs the portrait index and the right-side flag.
// Unknown names leave the index at zero.
func (e *engine) mugshotValue(t tag.Tag) byte {
	var val byte
	if t.Right() {
		val = 1
	}
	if idx, ok := e.opts.Mugshots.Index(t.Name); ok {
		val |= idx * 2
	}
	return val
}
