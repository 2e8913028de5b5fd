// Package config loads emblem.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file looked up from the
// working directory upwards.
const FileName = "emblem.toml"

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode accepts auto, on and off (plus always/never aliases).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, on or off)", s)
}

type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Source SourceConfig `toml:"source"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type ParseConfig struct {
	Italic    []string `toml:"italic"`
	Bold      []string `toml:"bold"`
	MaxDepth  int      `toml:"max_depth"`
	Recover   bool     `toml:"recover"`
	MaxErrors int      `toml:"max_errors"`
}

type SourceConfig struct {
	NFC bool `toml:"nfc"`
}

type OutputConfig struct {
	Color         ColorMode `toml:"color"`
	FatalWarnings bool      `toml:"fatal_warnings"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто - $XDG_CACHE_HOME/emblem
}

// Default returns the configuration used when no emblem.toml exists.
func Default() Config {
	return Config{
		Parse: ParseConfig{
			Italic:    []string{"_"},
			Bold:      []string{"*"},
			MaxDepth:  128,
			MaxErrors: 100,
		},
		Source: SourceConfig{NFC: true},
		Output: OutputConfig{Color: ColorAuto},
		Cache:  CacheConfig{Enabled: true},
	}
}

// Find looks for emblem.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load finds and decodes emblem.toml starting at startDir. Without a file
// it returns Default() and an empty path.
func Load(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile decodes path over the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	// пустой список в файле означает "без разделителя", а не "по умолчанию"
	if meta.IsDefined("parse", "italic") && cfg.Parse.Italic == nil {
		cfg.Parse.Italic = []string{}
	}
	if meta.IsDefined("parse", "bold") && cfg.Parse.Bold == nil {
		cfg.Parse.Bold = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
