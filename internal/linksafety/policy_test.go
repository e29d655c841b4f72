package linksafety

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestIsAllowedURI(t *testing.T) {
	t.Parallel()

	ctx := DefaultContext()
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"example.com", true},
		{"HTTPS://Example.COM", true},
		{"trusted.example", true},
		{"http:example.com", true},
		{"ftp://files.example.com", false},
		{"file:///etc/passwd", false},
		{"mailto:someone@example.com", false},
		{"javascript:alert(1)", false},
		{"data:text/html;base64,PHNjcmlwdD4=", false},
		{"tel:+15555550100", false},
		{"https://example-phishing.com", false},
		{"example-phishing.com", false},
		{"https://EXAMPLE-PHISHING.com/login", false},
		{"https://malicious-site.net", false},
		{"https://sub.malicious-site.net", true},
		{"localhost:3000", false},
		{"", false},
		{"not a url", false},
		{"https://", false},
		{"exa mple.com", false},
		{"https://example.com:99999", false},
		{"https://example.com:65536/x", false},
		{"https://example.com:65535/x", true},
		{"https://foo_bar.example.com", true},
		{"foo_bar.example.com", true},
	}
	for _, tt := range tests {
		if got := IsAllowedURI(tt.in, ctx); got != tt.want {
			t.Errorf("IsAllowedURI(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsAllowedURI_DeniedSchemesBeatAllowList(t *testing.T) {
	t.Parallel()

	ctx := NewContext("https", []Protocol{Scheme("http"), Scheme("https"), Scheme("ftp"), Scheme("file"), {Scheme: "mailto"}})
	ctx.DefaultValidate = func(string) bool { return true }
	for _, in := range []string{
		"ftp://example.com",
		"file:///tmp/x",
		"mailto:a@example.com",
		"FTP://example.com",
	} {
		if IsAllowedURI(in, ctx) {
			t.Errorf("IsAllowedURI(%q)=true, want false with scheme in allow-list", in)
		}
	}
}

func TestIsAllowedURI_DefaultValidateRunsFirst(t *testing.T) {
	t.Parallel()

	var seen []string
	ctx := DefaultContext()
	ctx.DefaultValidate = func(href string) bool {
		seen = append(seen, href)
		return false
	}
	if IsAllowedURI("https://example.com", ctx) {
		t.Fatalf("expected rejection when default validation rejects")
	}
	if len(seen) != 1 || seen[0] != "https://example.com" {
		t.Fatalf("expected default validation to see the absolute href; got %v", seen)
	}
}

func TestIsAllowedURI_CustomProtocolAndDomains(t *testing.T) {
	t.Parallel()

	ctx := NewContext("https", []Protocol{Scheme("https"), {Scheme: "gemini:"}})
	p := DefaultPolicy().WithBlockedDomains([]string{" Bad.Example. "}, nil)

	if !p.IsAllowedURI("gemini://capsule.example", ctx) {
		t.Fatalf("expected custom protocol to be allowed")
	}
	if p.IsAllowedURI("http://example.com", ctx) {
		t.Fatalf("expected http to be rejected when not in allow-list")
	}
	if p.IsAllowedURI("https://bad.example", ctx) {
		t.Fatalf("expected configured domain to be blocked")
	}
	if !p.IsAllowedURI("https://good.example", ctx) {
		t.Fatalf("expected other domains to pass")
	}
}

func TestShouldAutoLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"trusted.example", true},
		{"https://trusted.example/a", true},
		{"another-no-autolink.com", false},
		{"https://example-no-autolink.com/x", false},
		// No protocol allow-list on this gate.
		{"ftp://files.example.com", true},
		{"", false},
		{"not a url", false},
		{"https://", false},
		{"https://example.com:99999", false},
		{"https://foo_bar.example.com", true},
		{"foo_bar.example.com", true},
	}
	for _, tt := range tests {
		if got := ShouldAutoLink(tt.in); got != tt.want {
			t.Errorf("ShouldAutoLink(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"https://example.com", true},
		{"mailto:a@example.com", true},
		{"/relative/path", true},
		{"#anchor", true},
		{"example.com/page", true},
		{"javascript:alert(1)", false},
		{"java\tscript:alert(1)", false},
		{" javascript:alert(1)", false},
		{"vbscript:msgbox", false},
		{"data:text/html,hi", false},
	}
	for _, tt := range tests {
		if got := DefaultValidate(tt.in, nil); got != tt.want {
			t.Errorf("DefaultValidate(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}

	if !DefaultValidate("gemini://x", []Protocol{Scheme("gemini")}) {
		t.Fatalf("expected configured protocol to pass default validation")
	}
}

func TestNormalizeHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/a  ", "https://example.com/a"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"mailto:a@example.com", "mailto:a@example.com"},
		{"localhost:3000", "https://localhost:3000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeHref(tt.in); got != tt.want {
			t.Errorf("NormalizeHref(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProtocol_DecodesStringOrRecord(t *testing.T) {
	t.Parallel()

	var fromJSON []Protocol
	if err := json.Unmarshal([]byte(`["http", {"scheme": "HTTPS"}]`), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromYAML []Protocol
	if err := yaml.Unmarshal([]byte("- http\n- scheme: HTTPS\n"), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	for _, ps := range [][]Protocol{fromJSON, fromYAML} {
		got := Schemes(ps)
		if len(got) != 2 || got[0] != "http" || got[1] != "https" {
			t.Fatalf("Schemes()=%v, want [http https]", got)
		}
	}
}
