// Package bundle stores several compiled scripts in one msgpack file.
package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is bumped whenever the Bundle layout changes.
const SchemaVersion uint16 = 1

// ErrSchema is returned when a file was written with another SchemaVersion.
var ErrSchema = errors.New("unsupported bundle schema")

// Entry is one compiled script.
type Entry struct {
	Name   string   `msgpack:"name"`
	Source [32]byte `msgpack:"sha256"` // хеш исходного текста
	Data   []byte   `msgpack:"data"`
}

// Bundle is the on-disk container.
type Bundle struct {
	Schema  uint16  `msgpack:"schema"`
	Chat    bool    `msgpack:"chat"`
	Entries []Entry `msgpack:"entries"`
}

// New returns an empty bundle of the current schema.
func New(chat bool) *Bundle {
	return &Bundle{Schema: SchemaVersion, Chat: chat}
}

// Add appends an entry, replacing an existing one with the same name.
func (b *Bundle) Add(e Entry) {
	if i := b.index(e.Name); i >= 0 {
		b.Entries[i] = e
		return
	}
	b.Entries = append(b.Entries, e)
}

// Lookup returns the entry called name.
func (b *Bundle) Lookup(name string) (Entry, bool) {
	if i := b.index(name); i >= 0 {
		return b.Entries[i], true
	}
	return Entry{}, false
}

// Sort orders entries by name so equal inputs give byte-identical files.
func (b *Bundle) Sort() {
	slices.SortFunc(b.Entries, func(x, y Entry) int {
		return strings.Compare(x.Name, y.Name)
	})
}

func (b *Bundle) index(name string) int {
	return slices.IndexFunc(b.Entries, func(e Entry) bool { return e.Name == name })
}

// Encode writes b to w.
func Encode(w io.Writer, b *Bundle) error {
	return msgpack.NewEncoder(w).Encode(b)
}

// Decode reads a bundle and checks its schema.
func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSchema, b.Schema, SchemaVersion)
	}
	return &b, nil
}

// Write stores b at path. The file is written next to the target and renamed
// into place, so readers never see a partial bundle.
func Write(path string, b *Bundle) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".ztb-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = Encode(f, b); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// Read loads a bundle from path.
func Read(path string) (*Bundle, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
