package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/content"
)

func newExportCmd(app *App) *cobra.Command {
	var sanitize bool
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Load a document through the editor and print its HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := newDoc(cfg)
			if err := loadDocument(doc, args[0], false); err != nil {
				return writeErr(cmd, err)
			}

			var body string
			switch {
			case asMarkdown:
				body = doc.Markdown()
			case sanitize:
				body = content.Sanitize(doc.HTML())
			default:
				body = doc.HTML()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Pass the HTML through the export sanitizer")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print markdown instead of HTML")
	cmd.MarkFlagsMutuallyExclusive("sanitize", "markdown")

	return cmd
}
