// Package config loads combdiag.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"combdiag/internal/diagfmt"
	"combdiag/internal/trace"
)

// FileName is searched for upward from the working directory.
const FileName = "combdiag.toml"

// Config mirrors the layout of combdiag.toml.
type Config struct {
	Render RenderConfig `toml:"render"`
	Trace  TraceConfig  `toml:"trace"`
}

type RenderConfig struct {
	Color         string `toml:"color"` // auto|on|off
	PathMode      string `toml:"path_mode"`
	Title         string `toml:"title"`
	Label         string `toml:"label"`
	UnknownOrigin string `toml:"unknown_origin"`
	TabWidth      int    `toml:"tab_width"`
	Selector      string `toml:"selector"` // first|failed
	Format        string `toml:"format"`   // pretty|json|sarif
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Color:    "auto",
			PathMode: "auto",
			Selector: "first",
			Format:   "pretty",
		},
		Trace: TraceConfig{Level: "off", Format: "auto", Output: "-"},
	}
}

// Find walks upward from startDir looking for FileName.
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

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest combdiag.toml, falling back to
// Default when none exists. The returned path is empty in that case.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every enumerated value.
func (c Config) Validate() error {
	switch c.Render.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[render].color: invalid value %q (expected auto|on|off)", c.Render.Color)
	}
	if _, ok := diagfmt.ParsePathMode(c.Render.PathMode); !ok {
		return fmt.Errorf("[render].path_mode: invalid value %q", c.Render.PathMode)
	}
	switch c.Render.Selector {
	case "", "first", "failed":
	default:
		return fmt.Errorf("[render].selector: invalid value %q (expected first|failed)", c.Render.Selector)
	}
	switch c.Render.Format {
	case "", "pretty", "json", "sarif":
	default:
		return fmt.Errorf("[render].format: invalid value %q (expected pretty|json|sarif)", c.Render.Format)
	}
	if c.Render.TabWidth < 0 {
		return fmt.Errorf("[render].tab_width: must not be negative")
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}
