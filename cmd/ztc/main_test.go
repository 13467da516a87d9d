package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ztc/internal/driver"
)

// run executes the CLI in a fresh working directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompileInlineText(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := run(t, "..")
	require.NoError(t, err)
	assert.Equal(t, "0xE4, 0xFF\n", stdout)

	stdout, _, err = run(t, "<OPTION>")
	require.NoError(t, err)
	assert.Equal(t, "0xF6, 0x02, 0xFF\n", stdout)
}

func TestCompileNoInput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t)
	assert.ErrorIs(t, err, driver.ErrNoInput)
}

func TestCompileFileToOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "intro.txt"), "A\n  B")

	stdout, stderr, err := run(t, "ignored", "--file", "intro.txt", "--chat", "-o", "intro.bin", "--verbose")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "size is 4")

	data, err := os.ReadFile(filepath.Join(dir, "intro.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB1, 0xFE, 0xB2, 0xFF}, data)
}

func TestCompileReportsUnmapped(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, stderr, err := run(t, "AΩ")
	require.NoError(t, err)
	assert.Equal(t, "0xB1, 0xFF\n", stdout)
	assert.Contains(t, stderr, "<inline>:1:2: WARNING LEX1001")

	_, stderr, err = run(t, "AΩ", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = run(t, "AΩ", "--diag-format", "json")
	require.NoError(t, err)
	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &payload))
	assert.Equal(t, 1, payload.Count)
}

func TestManifestAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, manifestName), `
[tables]
charmap = "tables/charmap.toml"

[compile]
chat = true
`)
	writeFile(t, filepath.Join(dir, "tables", "charmap.toml"), `
[chars]
"x" = 0x10
" " = 0x00
`)

	stdout, _, err := run(t, "x\n  x")
	require.NoError(t, err)
	assert.Equal(t, "0x10, 0xFE, 0x10, 0xFF\n", stdout)

	stdout, _, err = run(t, "x\n  x", "--chat=false")
	require.NoError(t, err)
	assert.Equal(t, "0x10, 0xFE, 0x00, 0x00, 0x10, 0xFF\n", stdout)
}

func TestBundleAndDump(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "a.txt"), "A")
	writeFile(t, filepath.Join(dir, "b.txt"), "..")

	_, stderr, err := run(t, "bundle", "-o", "out/game.ztb", "--jobs", "2", "--verbose", "b.txt", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 scripts, 4 bytes")

	stdout, _, err := run(t, "dump", "out/game.ztb")
	require.NoError(t, err)
	assert.Contains(t, stdout, "schema 1, plain, 2 entries")
	assert.Contains(t, stdout, "a.txt (2 bytes, sha256 ")
	assert.Contains(t, stdout, "0xB1, 0xFF\n")
	assert.Contains(t, stdout, "0xE4, 0xFF\n")

	stdout, _, err = run(t, "dump", "out/game.ztb", "--entry", "b.txt")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "a.txt")

	_, _, err = run(t, "dump", "out/game.ztb", "--entry", "zzz")
	assert.ErrorContains(t, err, `no entry named "zzz"`)
}

func TestBundleMissingInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "a.txt"), "A")

	_, stderr, err := run(t, "bundle", "-o", "game.ztb", "a.txt", "gone.txt")
	assert.ErrorContains(t, err, "1 of 2 scripts failed to load")
	assert.Contains(t, stderr, "IO4001")
	assert.NoFileExists(t, filepath.Join(dir, "game.ztb"))
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := run(t, "version", "--format", "json")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "ztc", payload.Tool)
	assert.NotEmpty(t, payload.Version)

	_, _, err = run(t, "version", "--format", "xml")
	assert.Error(t, err)
}

func TestCompileWithProfiling(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "--cpu-profile", "cpu.out", "--mem-profile", "mem.out", "AB")
	require.NoError(t, err)
	assert.Equal(t, "0xB1, 0xB2, 0xFF\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "cpu.out"))
	assert.FileExists(t, filepath.Join(dir, "mem.out"))
}
