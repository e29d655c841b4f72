package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/document/memdoc"
	"inkwell/internal/format"
)

type App struct {
	ConfigDir string
	Format    string
	Pretty    bool

	logFile *os.File
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "inkwell",
		Short:        "Terminal rich-text editor with safe links and embedded images",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit a new document and print its HTML on exit
  inkwell edit --print

  # Edit an existing file (shortcut for: inkwell edit notes.html)
  inkwell notes.html

  # Check whether URLs would be linked
  inkwell links check example.com javascript:alert(1)

  # Encode an image as a data URI
  inkwell embed ./diagram.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setupLogging()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logFile != nil {
			return app.logFile.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("INKWELL_CONFIG_DIR", ""), "Config directory (default: ~/.inkwell)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INKWELL_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newEmbedCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// setupLogging sends debug logs to INKWELL_DEBUG_LOG. Without it logs are
// discarded; the editor owns the terminal.
func (app *App) setupLogging() error {
	path := strings.TrimSpace(os.Getenv("INKWELL_DEBUG_LOG"))
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	app.logFile = f
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

func loadConfig(app *App) (*config.Config, string, error) {
	cfg, path, err := config.LoadDir(app.ConfigDir)
	if err != nil {
		return nil, path, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

// newDoc builds an engine configured from cfg.
func newDoc(cfg *config.Config) *memdoc.Doc {
	return memdoc.New(memdoc.Options{
		Gate:          cfg.Gate(),
		HistoryDepth:  cfg.HistoryDepth(),
		NewGroupDelay: cfg.NewGroupDelay(),
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
