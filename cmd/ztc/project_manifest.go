package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "ztc.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Tables  tablesConfig  `toml:"tables"`
	Compile compileConfig `toml:"compile"`
}

type tablesConfig struct {
	Charmap  string `toml:"charmap"`
	Mugshots string `toml:"mugshots"`
}

type compileConfig struct {
	Chat bool `toml:"chat"`
	NFC  bool `toml:"nfc"`
}

// findManifest walks up from startDir looking for ztc.toml.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (m *projectManifest) chat() bool {
	return m != nil && m.Config.Compile.Chat
}

func (m *projectManifest) nfc() bool {
	return m != nil && m.Config.Compile.NFC
}

func (m *projectManifest) charmap() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Config.Tables.Charmap)
}

func (m *projectManifest) mugshots() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Config.Tables.Mugshots)
}

// tablePath resolves rel against the manifest directory.
func (m *projectManifest) tablePath(rel string) string {
	if m == nil || rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}
