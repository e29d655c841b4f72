package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	URL     string `json:"url"`
	Allowed bool   `json:"allowed"`
}

func TestWrite(t *testing.T) {
	t.Parallel()

	v := map[string]any{"data": []sample{{URL: "https://example.com", Allowed: true}}}
	tests := []struct {
		format string
		pretty bool
		want   string
	}{
		{"", false, `{"data":[{"url":"https://example.com","allowed":true}]}` + "\n"},
		{"json", true, "{\n  \"data\": [\n    {\n      \"url\": \"https://example.com\",\n      \"allowed\": true\n    }\n  ]\n}\n"},
		{"yaml", false, "data:\n  - allowed: true\n    url: https://example.com\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(&buf, v, tt.format, tt.pretty); err != nil {
			t.Fatalf("Write(%q): %v", tt.format, err)
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("Write(%q)=\n%s\nwant\n%s", tt.format, got, tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
