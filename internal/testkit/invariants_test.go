package testkit

import (
	"testing"

	"ztc/internal/diag"
	"ztc/internal/source"
)

func TestCheckCompileInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.txt", []byte("AΩ"))
	sf := fs.Get(id)

	bag := diag.NewBag(8)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnmappedChar, source.Span{File: id, Start: 1, End: 3}, "unmapped"))
	if err := CheckCompileInvariants([]byte{0xB1, 0xFF}, sf, bag); err != nil {
		t.Fatalf("valid result rejected: %v", err)
	}

	cases := []struct {
		name string
		out  []byte
		d    diag.Diagnostic
	}{
		{"no terminator", []byte{0xB1}, diag.Diagnostic{}},
		{"empty output", nil, diag.Diagnostic{}},
		{"wrong code", []byte{0xFF}, diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: id, Start: 0, End: 1}, "x")},
		{"empty span", []byte{0xFF}, diag.New(diag.SevWarning, diag.LexUnmappedChar, source.Span{File: id, Start: 1, End: 1}, "x")},
		{"past end", []byte{0xFF}, diag.New(diag.SevWarning, diag.LexUnmappedChar, source.Span{File: id, Start: 1, End: 9}, "x")},
		{"mid rune", []byte{0xFF}, diag.New(diag.SevWarning, diag.LexUnmappedChar, source.Span{File: id, Start: 2, End: 3}, "x")},
	}
	for _, tc := range cases {
		var b *diag.Bag
		if tc.d.Code != 0 {
			b = diag.NewBag(8)
			b.Add(tc.d)
		}
		if err := CheckCompileInvariants(tc.out, sf, b); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
