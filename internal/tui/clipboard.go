package tui

import (
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// copyToClipboard uses the system clipboard (pbcopy, xclip, wl-copy, ...).
// Without one, for example over SSH, it falls back to an OSC 52 escape that
// asks the terminal to set the clipboard.
func copyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(s)
		if err == nil {
			return nil
		}
		slog.Debug("clipboard: system copy failed, using OSC 52", "err", err)
	}
	return copyOSC52(s)
}

// copyOSC52 is a variable so tests don't write escapes to the terminal.
var copyOSC52 = func(s string) error {
	termenv.DefaultOutput().Copy(s)
	return nil
}
