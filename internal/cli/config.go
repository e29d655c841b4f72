package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/linksafety"
)

// effectiveConfig is the config as the editor will apply it: defaults filled
// in and environment overrides resolved.
type effectiveConfig struct {
	Path                   string   `json:"path" yaml:"path"`
	DefaultProtocol        string   `json:"defaultProtocol" yaml:"defaultProtocol"`
	Protocols              []string `json:"protocols" yaml:"protocols"`
	BlockedDomains         []string `json:"blockedDomains" yaml:"blockedDomains"`
	AutolinkBlockedDomains []string `json:"autolinkBlockedDomains" yaml:"autolinkBlockedDomains"`
	HistoryDepth           int      `json:"historyDepth" yaml:"historyDepth"`
	NewGroupDelayMs        int64    `json:"newGroupDelayMs" yaml:"newGroupDelayMs"`
	Glyphs                 string   `json:"glyphs" yaml:"glyphs"`
	Theme                  string   `json:"theme" yaml:"theme"`
	Preview                string   `json:"preview" yaml:"preview"`
}

func effective(cfg *config.Config, path string) effectiveConfig {
	g := cfg.Gate()
	return effectiveConfig{
		Path:                   path,
		DefaultProtocol:        g.Context.DefaultProtocol,
		Protocols:              linksafety.Schemes(g.Context.Protocols),
		BlockedDomains:         g.Policy.BlockedDomains,
		AutolinkBlockedDomains: g.Policy.AutolinkBlockedDomains,
		HistoryDepth:           cfg.HistoryDepth(),
		NewGroupDelayMs:        cfg.NewGroupDelay().Milliseconds(),
		Glyphs:                 cfg.Glyphs(),
		Theme:                  cfg.Theme(),
		Preview:                cfg.Preview(),
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path(app.ConfigDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, statErr := os.Stat(path)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   path,
				"exists": statErr == nil,
			}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": effective(cfg, path)})
		},
	})

	var force bool
	var asYAML bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.ConfigDir
			if dir == "" {
				d, err := config.Dir()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = d
			}
			name := "config.json"
			if asYAML {
				name = "config.yaml"
			}
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, errUsage("config already exists: %s (use --force to overwrite)", path))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return writeErr(cmd, err)
			}

			cfg := defaultConfig()
			if err := config.Save(path, cfg); err != nil {
				return writeErr(cmd, fmt.Errorf("save config: %w", err))
			}
			return writeOut(cmd, app, map[string]any{"data": effective(cfg, path)})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	initCmd.Flags().BoolVar(&asYAML, "yaml", false, "Write config.yaml instead of config.json")
	cmd.AddCommand(initCmd)

	return cmd
}

func defaultConfig() *config.Config {
	return &config.Config{
		Link: &config.LinkConfig{
			DefaultProtocol: linksafety.DefaultProtocol,
			Protocols:       []linksafety.Protocol{linksafety.Scheme("http"), linksafety.Scheme("https")},
		},
		History: &config.HistoryConfig{
			Depth:           config.DefaultHistoryDepth,
			NewGroupDelayMs: config.DefaultNewGroupDelayMs,
		},
		TUI: &config.TUIConfig{Glyphs: "unicode", Theme: "auto", Preview: "html"},
	}
}
