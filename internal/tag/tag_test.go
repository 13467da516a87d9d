package tag

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		kind   Kind
		prefix string
		name   string
	}{
		{"OPTION", KindOption, "", ""},
		{"RED", KindRed, "", ""},
		{"/RED", KindUnRed, "", ""},
		{"ANSWER", KindAnswer, "", ""},
		{"answer", KindMugshot, "", "answer"},
		{"hero", KindMugshot, "", "hero"},
		{"rt:hero", KindMugshot, "rt", "hero"},
		{":hero", KindMugshot, "", "hero"},
		{"r:", KindMugshot, "r", ""},
		{"a:b:c", KindMugshot, "", "a:b:c"},
		{"", KindMugshot, "", ""},
	}

	for i, tt := range tests {
		got := Parse(tt.input)
		if got.Kind != tt.kind || got.Prefix != tt.prefix || got.Name != tt.name {
			t.Errorf("Parse Test %d (%q): expected {%s %q %q}, got {%s %q %q}",
				i, tt.input, tt.kind, tt.prefix, tt.name, got.Kind, got.Prefix, got.Name)
		}
	}
}

func TestPlacementFlags(t *testing.T) {
	tests := []struct {
		prefix             string
		right, top, bottom bool
	}{
		{"", false, false, false},
		{"r", true, false, false},
		{"tb", false, true, true},
		{"rtb", true, true, true},
		{"bt", false, true, true},
	}
	for _, tt := range tests {
		tg := Parse(tt.prefix + ":name")
		if tg.Right() != tt.right || tg.Top() != tt.top || tg.Bottom() != tt.bottom {
			t.Errorf("prefix %q: got right=%v top=%v bottom=%v", tt.prefix, tg.Right(), tg.Top(), tg.Bottom())
		}
	}
}
