package diag

import (
	"testing"

	"ztc/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(New(SevWarning, LexUnmappedChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if b.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", b.Dropped())
	}
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatalf("unexpected severity summary")
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LexUnmappedChar, source.Span{File: 1, Start: 0, End: 1}, "c"))
	b.Add(New(SevWarning, LexUnmappedChar, source.Span{File: 0, Start: 5, End: 6}, "b"))
	b.Add(New(SevError, IOLoadFileError, source.Span{File: 0, Start: 5, End: 6}, "a"))
	b.Add(New(SevWarning, LexUnmappedChar, source.Span{File: 0, Start: 1, End: 2}, "d"))
	b.Sort()

	want := []string{"d", "a", "b", "c"}
	for i, d := range b.Items() {
		if d.Message != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], d.Message)
		}
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportError(BagReporter{Bag: b}, IOLoadFileError, source.Span{}, "boom").
		WithNote(source.Span{Start: 1, End: 2}, "here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected single emit, got %d", b.Len())
	}
	if len(b.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be carried")
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnmappedChar, "LEX1001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d: expected %s, got %s", tt.code, tt.want, got)
		}
	}
	if got := LexUnmappedChar.String(); got != "[LEX1001]: Unmapped character" {
		t.Errorf("unexpected String(): %s", got)
	}
}
