package ingest

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ParseDrop recognises a terminal drag-and-drop. Terminals deliver a drop as
// a paste of shell-quoted absolute paths (or file:// URIs). Every word must
// name an existing regular file, otherwise the paste is ordinary text; a
// relative name is always text, even when such a file exists.
func ParseDrop(text string) (DataTransfer, bool) {
	words := splitShellWords(strings.TrimSpace(text))
	if len(words) == 0 {
		return DataTransfer{}, false
	}
	var dt DataTransfer
	for _, w := range words {
		path, ok := dropPath(w)
		if !ok {
			return DataTransfer{}, false
		}
		st, err := os.Stat(path)
		if err != nil || !st.Mode().IsRegular() {
			return DataTransfer{}, false
		}
		dt.Files = append(dt.Files, DiskFile{Path: path})
	}
	return dt, true
}

func dropPath(w string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(w), "file://") {
		return w, filepath.IsAbs(w)
	}
	u, err := url.Parse(w)
	if err != nil || (u.Host != "" && u.Host != "localhost") || u.Path == "" {
		return "", false
	}
	return u.Path, true
}

// splitShellWords splits a shell-quoted string into words. It handles single
// quotes, double quotes and backslash escapes outside single quotes.
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		if r == '\\' && !inSingle {
			escaped = true
			continue
		}
		if r == '\'' && !inDouble {
			inSingle = !inSingle
			quoted = true
			continue
		}
		if r == '"' && !inSingle {
			inDouble = !inDouble
			quoted = true
			continue
		}
		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}
		cur = append(cur, r)
	}

	flush()
	return out
}
