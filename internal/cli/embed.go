package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/document"
	"inkwell/internal/ingest"
)

type embedResult struct {
	File    string `json:"file" yaml:"file"`
	Type    string `json:"type" yaml:"type"`
	DataURI string `json:"dataUri" yaml:"dataUri"`
	HTML    string `json:"html" yaml:"html"`
}

var errInsertFailed = errors.New("image insert failed")

// embedFile encodes f and inserts it into engine. f must already have passed
// ingest.Check.
func embedFile(engine document.Engine, f ingest.File) (ingest.Result, error) {
	p := ingest.NewPipeline(engine, ingest.WithLogger(slog.Default()))
	fut, ok := p.Accept(f)
	if !ok {
		return ingest.Result{}, fmt.Errorf("ignored %s: %w (%s)", f.Name(), ingest.ErrNotImage, f.Type())
	}
	res := fut.Wait()
	if res.Err != nil {
		return res, fmt.Errorf("encode %s: %w", f.Name(), res.Err)
	}
	if !p.Complete(res) {
		return res, fmt.Errorf("embed %s: %w", f.Name(), errInsertFailed)
	}
	return res, nil
}

func newEmbedCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "embed <image>",
		Short: "Encode an image as a data URI the way the editor embeds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := args[0]
			if st, err := os.Stat(path); err != nil {
				return writeErr(cmd, err)
			} else if !st.Mode().IsRegular() {
				return writeErr(cmd, errUsage("not a regular file: %s", path))
			}

			f := ingest.DiskFile{Path: path}
			if err := ingest.Check(f); err != nil {
				if errors.Is(err, ingest.ErrNotImage) {
					return writeErr(cmd, fmt.Errorf("ignored %s: %w (%s)", f.Name(), err, f.Type()))
				}
				return writeErr(cmd, err)
			}

			// A headless engine gives the same insert chain the editor runs.
			doc := newDoc(cfg)
			if err := doc.Load(""); err != nil {
				return writeErr(cmd, err)
			}
			res, err := embedFile(doc, f)
			if err != nil {
				return writeErr(cmd, err)
			}

			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), res.DataURI)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": embedResult{
				File:    f.Name(),
				Type:    f.Type(),
				DataURI: res.DataURI,
				HTML:    doc.HTML(),
			}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the data URI (no envelope)")

	return cmd
}
