package bundle

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestWriteRead(t *testing.T) {
	b := New(true)
	b.Add(Entry{Name: "b.txt", Source: sha256.Sum256([]byte("B")), Data: []byte{0xB2, 0xFF}})
	b.Add(Entry{Name: "a.txt", Source: sha256.Sum256([]byte("A")), Data: []byte{0xB1, 0xFF}})
	b.Sort()

	path := filepath.Join(t.TempDir(), "out", "game.ztb")
	require.NoError(t, Write(path, b))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.Equal(t, "a.txt", got.Entries[0].Name)

	e, ok := got.Lookup("b.txt")
	require.True(t, ok)
	assert.Equal(t, []byte{0xB2, 0xFF}, e.Data)

	// no temp files left behind
	files, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestAddReplaces(t *testing.T) {
	b := New(false)
	b.Add(Entry{Name: "x", Data: []byte{0x01}})
	b.Add(Entry{Name: "x", Data: []byte{0x02}})
	require.Len(t, b.Entries, 1)
	assert.Equal(t, []byte{0x02}, b.Entries[0].Data)

	_, ok := b.Lookup("y")
	assert.False(t, ok)
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(&Bundle{Schema: SchemaVersion + 1}))

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = Decode(bytes.NewReader([]byte{0xC1}))
	assert.Error(t, err)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.ztb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
