// Package tag parses the text found between '<' and '>' in a dialogue script.
//
// The vocabulary is closed: OPTION, RED, /RED and ANSWER are matched exactly,
// anything else is a mugshot directive of the form "prefix:name" or "name".
package tag

import "strings"

// Kind distinguishes tag variants.
type Kind uint8

const (
	KindOption Kind = iota + 1
	KindRed
	KindUnRed
	KindAnswer
	KindMugshot
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindRed:
		return "red"
	case KindUnRed:
		return "unred"
	case KindAnswer:
		return "answer"
	case KindMugshot:
		return "mugshot"
	}
	return "unknown"
}

// Tag is a parsed tag. Prefix and Name are set for KindMugshot only.
type Tag struct {
	Kind   Kind
	Prefix string
	Name   string
}

// Parse classifies tag text. It never fails: unknown words are mugshots.
func Parse(text string) Tag {
	switch text {
	case "OPTION":
		return Tag{Kind: KindOption}
	case "RED":
		return Tag{Kind: KindRed}
	case "/RED":
		return Tag{Kind: KindUnRed}
	case "ANSWER":
		return Tag{Kind: KindAnswer}
	}

	// prefix только при ровно одном ':'
	parts := strings.Split(text, ":")
	if len(parts) == 2 {
		return Tag{Kind: KindMugshot, Prefix: parts[0], Name: parts[1]}
	}
	return Tag{Kind: KindMugshot, Name: text}
}

// Right reports the right-side placement flag.
func (t Tag) Right() bool { return strings.Contains(t.Prefix, "r") }

// Top reports whether the top marker follows the portrait.
func (t Tag) Top() bool { return strings.Contains(t.Prefix, "t") }

// Bottom reports whether the bottom marker follows the portrait.
func (t Tag) Bottom() bool { return strings.Contains(t.Prefix, "b") }
