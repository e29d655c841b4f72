// Package config loads and saves the user's inkwell configuration from
// ~/.inkwell. JSON is the primary format; a config.yaml is read when no
// config.json exists.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"inkwell/internal/linksafety"
)

const (
	DefaultHistoryDepth    = 100
	DefaultNewGroupDelayMs = 500
)

type Config struct {
	// Link tunes the link-safety gate. Configured domains extend the
	// built-in denylists; they never replace them.
	Link *LinkConfig `json:"link,omitempty" yaml:"link,omitempty"`

	History *HistoryConfig `json:"history,omitempty" yaml:"history,omitempty"`

	// TUI holds optional user preferences for the interactive editor.
	TUI *TUIConfig `json:"tui,omitempty" yaml:"tui,omitempty"`
}

type LinkConfig struct {
	DefaultProtocol        string                `json:"defaultProtocol,omitempty" yaml:"defaultProtocol,omitempty"`
	Protocols              []linksafety.Protocol `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	BlockedDomains         []string              `json:"blockedDomains,omitempty" yaml:"blockedDomains,omitempty"`
	AutolinkBlockedDomains []string              `json:"autolinkBlockedDomains,omitempty" yaml:"autolinkBlockedDomains,omitempty"`
}

type HistoryConfig struct {
	Depth           int `json:"depth,omitempty" yaml:"depth,omitempty"`
	NewGroupDelayMs int `json:"newGroupDelayMs,omitempty" yaml:"newGroupDelayMs,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
	// Theme selects the palette ("auto", "light", "dark").
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`
	// Preview selects the preview pane ("html" or "rendered").
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// Dir returns the config directory. INKWELL_CONFIG_DIR overrides it.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("INKWELL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inkwell"), nil
}

// Path returns the config file inside dir (Dir() when empty): config.json,
// or an existing config.yaml/config.yml when there is no config.json.
func Path(dir string) (string, error) {
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	jsonPath := filepath.Join(dir, "config.json")
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return jsonPath, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the config at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(b, &cfg)
	} else {
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// LoadDir resolves the config file in dir and loads it.
func LoadDir(dir string) (*Config, string, error) {
	path, err := Path(dir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// Save writes cfg to path in the format its extension names. The previous
// file, if any, is kept as path+".bak".
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var b []byte
	var err error
	if isYAML(path) {
		b, err = yaml.Marshal(cfg)
	} else {
		b, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	base := filepath.Base(path)
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, base+".bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, base+".*.tmp", path, b, 0o600)
}

// Gate builds the link gate: the built-in policy extended by configured
// domains, and the configured protocol allow-list (http, https by default).
func (c *Config) Gate() linksafety.Gate {
	g := linksafety.DefaultGate()
	if c == nil || c.Link == nil {
		return g
	}
	l := c.Link
	g.Policy = g.Policy.WithBlockedDomains(l.BlockedDomains, l.AutolinkBlockedDomains)
	protocols := g.Context.Protocols
	if len(l.Protocols) > 0 {
		protocols = l.Protocols
	}
	g.Context = linksafety.NewContext(l.DefaultProtocol, protocols)
	return g
}

func (c *Config) HistoryDepth() int {
	if c != nil && c.History != nil && c.History.Depth > 0 {
		return c.History.Depth
	}
	return DefaultHistoryDepth
}

func (c *Config) NewGroupDelay() time.Duration {
	ms := DefaultNewGroupDelayMs
	if c != nil && c.History != nil && c.History.NewGroupDelayMs > 0 {
		ms = c.History.NewGroupDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Config) tui() TUIConfig {
	if c == nil || c.TUI == nil {
		return TUIConfig{}
	}
	return *c.TUI
}

// Glyphs returns the glyph preference. INKWELL_TUI_GLYPHS wins over the
// file.
func (c *Config) Glyphs() string {
	return envOverride("INKWELL_TUI_GLYPHS", c.tui().Glyphs)
}

// Theme returns the theme preference. INKWELL_TUI_THEME wins over the file.
func (c *Config) Theme() string {
	return envOverride("INKWELL_TUI_THEME", c.tui().Theme)
}

// Preview returns "html" or "rendered".
func (c *Config) Preview() string {
	if strings.EqualFold(strings.TrimSpace(c.tui().Preview), "rendered") {
		return "rendered"
	}
	return "html"
}

func envOverride(key, v string) string {
	if e := strings.TrimSpace(os.Getenv(key)); e != "" {
		return strings.ToLower(e)
	}
	return strings.ToLower(strings.TrimSpace(v))
}
