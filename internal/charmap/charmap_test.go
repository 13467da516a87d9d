package charmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	cm := Default()
	tests := []struct {
		key  string
		code uint16
	}{
		{" ", 0x00},
		{"1", 0x02},
		{"あ", 0x0C},
		{"A", 0xB1},
		{"▼", 0xDA},
		{"a", 0x0100},
		{"工", 0x0120},
	}
	for _, tt := range tests {
		code, ok := cm.Lookup(tt.key)
		require.True(t, ok, "missing %q", tt.key)
		assert.Equal(t, tt.code, code, "code for %q", tt.key)
	}
	_, ok := cm.Lookup("Ω")
	assert.False(t, ok)
	assert.Equal(t, 1, cm.MaxKeyLen())

	idx, ok := DefaultMugshots().Index("rival")
	require.True(t, ok)
	assert.Equal(t, uint8(2), idx)
}

func TestAppendCode(t *testing.T) {
	assert.Equal(t, []byte{0x41}, AppendCode(nil, 0x41))
	assert.Equal(t, []byte{0x00}, AppendCode(nil, 0x00))
	assert.Equal(t, []byte{0x01, 0x20}, AppendCode(nil, 0x0120))
	assert.Equal(t, []byte{0xFF, 0xAB, 0xCD}, AppendCode([]byte{0xFF}, 0xABCD))
}

func TestNewTableTracksLongestKey(t *testing.T) {
	cm, err := NewTable(map[string]uint16{"a": 1, "ポケ": 0x0200, "xyz": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cm.MaxKeyLen())
	assert.Equal(t, 3, cm.Len())
}

func TestNewTableRejectsEmptyKey(t *testing.T) {
	_, err := NewTable(map[string]uint16{"": 1})
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewMugshotsRange(t *testing.T) {
	_, err := NewMugshots(map[string]uint8{"giant": 128})
	assert.ErrorIs(t, err, ErrMugshotIndexRange)

	m, err := NewMugshots(map[string]uint8{"edge": 127})
	require.NoError(t, err)
	idx, ok := m.Index("edge")
	assert.True(t, ok)
	assert.Equal(t, uint8(127), idx)
}

func TestParseCharmap(t *testing.T) {
	cm, err := ParseCharmap(`
[chars]
"x" = 0x10
"yy" = 0x0311
`)
	require.NoError(t, err)
	code, ok := cm.Lookup("yy")
	require.True(t, ok)
	assert.Equal(t, uint16(0x0311), code)

	_, err = ParseCharmap(`[other]`)
	assert.Error(t, err)

	_, err = ParseCharmap(`[chars]
"x" = 70000
`)
	assert.Error(t, err, "codes must fit in 16 bits")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	cmPath := filepath.Join(dir, "charmap.toml")
	mgPath := filepath.Join(dir, "mugshots.toml")
	require.NoError(t, os.WriteFile(cmPath, []byte("[chars]\n\"z\" = 0x33\n"), 0o600))
	require.NoError(t, os.WriteFile(mgPath, []byte("[mugshots]\nboss = 9\n"), 0o600))

	cm, err := LoadCharmap(cmPath)
	require.NoError(t, err)
	code, _ := cm.Lookup("z")
	assert.Equal(t, uint16(0x33), code)

	m, err := LoadMugshots(mgPath)
	require.NoError(t, err)
	idx, _ := m.Index("boss")
	assert.Equal(t, uint8(9), idx)

	_, err = LoadMugshots(cmPath)
	assert.ErrorContains(t, err, "missing [mugshots]")

	_, err = LoadCharmap(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err)
}

func TestNewTableRejectsReservedShorthand(t *testing.T) {
	_, err := NewTable(map[string]uint16{"a<": 1})
	assert.ErrorIs(t, err, ErrReservedRune)

	// одиночные символы разрешены, сканер до них просто не дойдёт
	_, err = NewTable(map[string]uint16{"#": 1})
	assert.NoError(t, err)
}
