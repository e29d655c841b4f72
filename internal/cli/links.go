package cli

import (
	"github.com/spf13/cobra"

	"inkwell/internal/document/memdoc"
	"inkwell/internal/linksafety"
)

type linkReport struct {
	URL        string `json:"url" yaml:"url"`
	Normalized string `json:"normalized" yaml:"normalized"`
	// Allowed is what a manual link insertion would decide: the input is
	// normalized first, then gated.
	Allowed bool `json:"allowed" yaml:"allowed"`
	// Autolink is what typing raw into the editor would do.
	Autolink bool `json:"autolink" yaml:"autolink"`
}

func checkLink(g linksafety.Gate, raw string) linkReport {
	href := linksafety.NormalizeHref(raw)
	return linkReport{
		URL:        raw,
		Normalized: href,
		Allowed:    g.IsAllowedURI(href),
		Autolink:   memdoc.Autolinks(g, raw),
	}
}

func newLinksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Inspect the link-safety gate",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <url>...",
		Short: "Report whether each URL may be linked or autolinked",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			g := cfg.Gate()
			out := make([]linkReport, 0, len(args))
			for _, raw := range args {
				out = append(out, checkLink(g, raw))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})

	return cmd
}
