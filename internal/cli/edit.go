package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/tui"
)

func newEditCmd(app *App) *cobra.Command {
	var printHTML bool
	var out string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the editor (.html, .htm or .md; a missing file starts a new document)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var path string
			if len(args) == 1 {
				path = args[0]
				if _, err := kindOf(path); err != nil {
					return writeErr(cmd, err)
				}
			}
			doc := newDoc(cfg)
			if err := loadDocument(doc, path, true); err != nil {
				return writeErr(cmd, err)
			}

			html, err := tui.Run(tui.Options{
				Editor:  doc,
				Gate:    cfg.Gate(),
				Preview: cfg.Preview(),
				Theme:   cfg.Theme(),
			}, tui.Appearance{Glyphs: cfg.Glyphs(), Theme: cfg.Theme()})
			if err != nil {
				return writeErr(cmd, err)
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(html+"\n"), 0o644); err != nil {
					return writeErr(cmd, fmt.Errorf("write %s: %w", out, err))
				}
			}
			if printHTML {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&printHTML, "print", false, "Print the document HTML on exit")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document HTML to this file on exit")

	return cmd
}
