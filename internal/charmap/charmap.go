// Package charmap holds the two lookup tables the compiler consults: the
// character map (script text to renderer codes) and the mugshot table
// (portrait names to indices).
//
// Tables are read from TOML:
//
//	[chars]
//	"あ" = 0x0C
//	"工" = 0x0120
//
//	[mugshots]
//	hero = 1
//
// Both are immutable once built and safe for concurrent use.
package charmap

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

var (
	// ErrEmptyKey is returned for a table entry with an empty key.
	ErrEmptyKey = errors.New("empty key")
	// ErrMugshotIndexRange is returned for a portrait index that does not fit in seven bits.
	ErrMugshotIndexRange = errors.New("mugshot index out of range")
	// ErrReservedRune is returned for a multi-character key that contains
	// markup the scanner handles before any table lookup.
	ErrReservedRune = errors.New("shorthand key contains reserved character")
)

// reservedRunes never reach the table inside a multi-character key.
const reservedRunes = "<>{}#\n"

// MaxMugshotIndex is the largest index whose doubled value still fits in a byte.
const MaxMugshotIndex = 127

//go:embed default_charmap.toml
var defaultCharmapTOML string

//go:embed default_mugshots.toml
var defaultMugshotsTOML string

// Table maps script text to renderer codes.
// Keys are usually one character; longer keys are explicit shorthands.
type Table struct {
	codes  map[string]uint16
	maxLen int // longest key, in runes
}

// NewTable validates entries and builds a Table.
func NewTable(entries map[string]uint16) (*Table, error) {
	t := &Table{codes: make(map[string]uint16, len(entries)), maxLen: 1}
	for key, code := range entries {
		if key == "" {
			return nil, ErrEmptyKey
		}
		if !utf8.ValidString(key) {
			return nil, fmt.Errorf("key %q is not valid UTF-8", key)
		}
		n := utf8.RuneCountInString(key)
		if n > 1 && strings.ContainsAny(key, reservedRunes) {
			return nil, fmt.Errorf("%w: %q", ErrReservedRune, key)
		}
		t.codes[key] = code
		if n > t.maxLen {
			t.maxLen = n
		}
	}
	return t, nil
}

// Lookup returns the code for key.
func (t *Table) Lookup(key string) (uint16, bool) {
	code, ok := t.codes[key]
	return code, ok
}

// MaxKeyLen is the rune length of the longest key.
func (t *Table) MaxKeyLen() int {
	return t.maxLen
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.codes)
}

// AppendCode appends the encoded form of code: the high byte first when the
// code does not fit in one byte, then the low byte.
func AppendCode(dst []byte, code uint16) []byte {
	if code > 0xFF {
		dst = append(dst, byte(code>>8))
	}
	return append(dst, byte(code))
}

// Mugshots maps portrait names to indices.
type Mugshots struct {
	index map[string]uint8
}

// NewMugshots validates entries and builds a Mugshots table.
func NewMugshots(entries map[string]uint8) (*Mugshots, error) {
	m := &Mugshots{index: make(map[string]uint8, len(entries))}
	for name, idx := range entries {
		if name == "" {
			return nil, ErrEmptyKey
		}
		if idx > MaxMugshotIndex {
			return nil, fmt.Errorf("%w: %s = %d", ErrMugshotIndexRange, name, idx)
		}
		m.index[name] = idx
	}
	return m, nil
}

// Index returns the portrait index for name.
func (m *Mugshots) Index(name string) (uint8, bool) {
	idx, ok := m.index[name]
	return idx, ok
}

// Len reports the number of entries.
func (m *Mugshots) Len() int {
	return len(m.index)
}

type charmapFile struct {
	Chars map[string]uint16 `toml:"chars"`
}

type mugshotsFile struct {
	Mugshots map[string]uint8 `toml:"mugshots"`
}

// ParseCharmap decodes a character map from TOML text.
func ParseCharmap(data string) (*Table, error) {
	var f charmapFile
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("chars") {
		return nil, errors.New("missing [chars]")
	}
	return NewTable(f.Chars)
}

// ParseMugshots decodes a mugshot table from TOML text.
func ParseMugshots(data string) (*Mugshots, error) {
	var f mugshotsFile
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("mugshots") {
		return nil, errors.New("missing [mugshots]")
	}
	return NewMugshots(f.Mugshots)
}

// LoadCharmap reads a character map file.
func LoadCharmap(path string) (*Table, error) {
	var f charmapFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("chars") {
		return nil, fmt.Errorf("%s: missing [chars]", path)
	}
	t, err := NewTable(f.Chars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadMugshots reads a mugshot table file.
func LoadMugshots(path string) (*Mugshots, error) {
	var f mugshotsFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("mugshots") {
		return nil, fmt.Errorf("%s: missing [mugshots]", path)
	}
	m, err := NewMugshots(f.Mugshots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

var (
	defaultCharmap = sync.OnceValue(func() *Table {
		t, err := ParseCharmap(defaultCharmapTOML)
		if err != nil {
			panic(fmt.Errorf("embedded charmap: %w", err))
		}
		return t
	})
	defaultMugshots = sync.OnceValue(func() *Mugshots {
		m, err := ParseMugshots(defaultMugshotsTOML)
		if err != nil {
			panic(fmt.Errorf("embedded mugshots: %w", err))
		}
		return m
	})
)

// Default returns the embedded character map.
func Default() *Table { return defaultCharmap() }

// DefaultMugshots returns the embedded mugshot table.
func DefaultMugshots() *Mugshots { return defaultMugshots() }
