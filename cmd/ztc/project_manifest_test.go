package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadProjectManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), `
[tables]
charmap = "tables/charmap.toml"

[compile]
chat = true
`)
	nested := filepath.Join(root, "scripts", "town")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, ok, err := loadProjectManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, manifestName), m.Path)
	assert.True(t, m.chat())
	assert.False(t, m.nfc())
	assert.Equal(t, filepath.Join(root, "tables", "charmap.toml"), m.tablePath(m.charmap()))
	assert.Equal(t, "", m.tablePath(m.mugshots()))
}

func TestLoadProjectManifestMissing(t *testing.T) {
	m, ok, err := loadProjectManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)

	// nil manifests fall back to defaults
	assert.False(t, m.chat())
	assert.Equal(t, "", m.charmap())
	assert.Equal(t, "abs.toml", m.tablePath("abs.toml"))
}

func TestLoadProjectConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), manifestName)
	writeFile(t, path, "[compile]\nchatty = true\n")

	_, err := loadProjectConfig(path)
	assert.ErrorContains(t, err, "unknown keys: compile.chatty")

	writeFile(t, path, "[compile\n")
	_, err = loadProjectConfig(path)
	assert.ErrorContains(t, err, "failed to parse TOML")
}
