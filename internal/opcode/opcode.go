// Package opcode lists the control bytes understood by the dialogue renderer.
package opcode

// Terminator ends every compiled script; comments emit it too.
const Terminator byte = 0xFF

const (
	LineBreak    byte = 0xFE
	Insert       byte = 0xFD
	AnswerNext   byte = 0xFC // opens an answer list
	AnswerReturn byte = 0xFB // separates later answers
	Answer       byte = 0xFA
	Red          byte = 0xF9
	White        byte = 0xF8
	Mugshot      byte = 0xF7
	Option       byte = 0xF6
	Top          byte = 0xF5
	Bottom       byte = 0xF4
)

const (
	// OptionArg follows Option.
	OptionArg byte = 0x02

	// Ellipsis is emitted for the ".." shorthand.
	Ellipsis byte = 0xE4

	// Space is the code the default character map assigns to ' '.
	// Runs of it directly before a tag are dropped.
	Space byte = 0x00
)

var (
	// Factory encodes 工場.
	Factory = [3]byte{0xE5, 0x01, 0x5B}
	// Occasion encodes 場合.
	Occasion = [3]byte{0xE5, 0x02, 0x7C}
)

// ForwardMarker is the glyph that already implies a continued line.
const ForwardMarker = '▼'
