package linksafety

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// URL is an absolute URL after parsing and host normalization.
type URL struct {
	// Scheme is lower-case and carries no trailing colon.
	Scheme string
	// Hostname is lower-case, IDNA-mapped, and has no port or brackets.
	Hostname string
	// Href is the serialized form passed to structural validation.
	Href string
}

var (
	errEmptyHost = errors.New("missing host")
	errBadPort   = errors.New("port out of range")
)

// hostProfile maps hosts the way a browser URL parser does. Unlike
// idna.Lookup it does not apply STD3 rules, so "foo_bar.example.com" passes.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// Schemes that must carry an authority component. Mirrors the browser notion
// of "special" schemes; file is special but may have an empty host.
var hostRequired = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// Parse resolves raw as an absolute URL. When raw contains no ':' it is
// treated as scheme-relative and prefixed with defaultScheme + "://".
func Parse(raw, defaultScheme string) (URL, error) {
	s := trimControl(raw)
	if !strings.Contains(s, ":") {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return URL{}, err
	}
	if u.Scheme == "" {
		return URL{}, fmt.Errorf("parse %q: missing scheme", raw)
	}
	scheme := strings.ToLower(u.Scheme)

	// "http:example.com" is an absolute http URL for a browser; reparse the
	// opaque part as an authority so the host is not lost.
	if hostRequired[scheme] && u.Opaque != "" {
		u, err = url.Parse(scheme + "://" + strings.TrimLeft(u.Opaque, "/"))
		if err != nil {
			return URL{}, err
		}
	}

	if port := u.Port(); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return URL{}, fmt.Errorf("parse %q: %w", raw, errBadPort)
		}
	}

	host := u.Hostname()
	if hostRequired[scheme] && host == "" {
		return URL{}, fmt.Errorf("parse %q: %w", raw, errEmptyHost)
	}
	if host != "" {
		host, err = normalizeHost(host)
		if err != nil {
			return URL{}, fmt.Errorf("parse %q: %w", raw, err)
		}
	}

	return URL{Scheme: scheme, Hostname: host, Href: u.String()}, nil
}

func normalizeHost(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}
	return hostProfile.ToASCII(strings.ToLower(host))
}

// trimControl strips leading and trailing C0 controls and spaces, as a URL
// parser would before looking at the input.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= 0x20 })
}

// HasScheme reports whether s starts with "scheme:". A host followed by a
// port ("localhost:3000") is not a scheme.
func HasScheme(s string) bool {
	s = trimControl(s)
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	for j, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	rest := s[i+1:]
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return false
	}
	return true
}

// NormalizeHref prefixes https:// when input carries no scheme.
func NormalizeHref(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || HasScheme(input) {
		return input
	}
	return "https://" + input
}
