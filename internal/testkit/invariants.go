// Package testkit holds checks shared by tests that drive the compiler with
// generated or arbitrary input.
package testkit

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ztc/internal/diag"
	"ztc/internal/opcode"
	"ztc/internal/source"
)

// CheckCompileInvariants runs the invariants every compile result must hold:
// 1) the output is non-empty and ends with the terminator
// 2) every diagnostic is an unmapped-character warning
// 3) every diagnostic span is non-empty and points inside sf; for valid UTF-8
//    input it also starts on a rune boundary
func CheckCompileInvariants(out []byte, sf *source.File, bag *diag.Bag) error {
	if sf == nil {
		return errors.New("nil file")
	}
	if len(out) == 0 {
		return errors.New("empty output")
	}
	if last := out[len(out)-1]; last != opcode.Terminator {
		return fmt.Errorf("output ends with 0x%02X, want terminator", last)
	}
	if bag == nil {
		return nil
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	valid := utf8.Valid(sf.Content)
	for i, d := range bag.Items() {
		if d.Code != diag.LexUnmappedChar || d.Severity != diag.SevWarning {
			return fmt.Errorf("diagnostic %d: unexpected %s (%s)", i, d.Code.ID(), d.Severity)
		}
		sp := d.Primary
		if sp.File != sf.ID {
			return fmt.Errorf("diagnostic %d: span points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("diagnostic %d: empty span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("diagnostic %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if valid && !utf8.RuneStart(sf.Content[sp.Start]) {
			return fmt.Errorf("diagnostic %d: span starts inside a character: %v", i, sp)
		}
	}
	return nil
}
