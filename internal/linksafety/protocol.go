package linksafety

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Protocol is one allow-list entry. Config files may write it as a bare
// string ("https") or as a record ({"scheme": "https"}).
type Protocol struct {
	Scheme          string `json:"scheme" yaml:"scheme"`
	OptionalSlashes bool   `json:"optionalSlashes,omitempty" yaml:"optionalSlashes,omitempty"`
}

// Scheme is shorthand for a bare-string entry.
func Scheme(s string) Protocol { return Protocol{Scheme: s} }

// Schemes normalizes entries to lower-case scheme names, skipping blanks.
func Schemes(ps []Protocol) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		s := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(p.Scheme), ":"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *Protocol) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Protocol{Scheme: s}
		return nil
	}
	type record Protocol
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return errors.New("protocol: expected a string or an object with a scheme")
	}
	*p = Protocol(r)
	return nil
}

func (p *Protocol) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*p = Protocol{Scheme: n.Value}
		return nil
	}
	type record Protocol
	var r record
	if err := n.Decode(&r); err != nil {
		return errors.New("protocol: expected a string or a mapping with a scheme")
	}
	*p = Protocol(r)
	return nil
}

// Protocols the engine always accepts structurally.
var builtinProtocols = []string{"http", "https", "ftp", "ftps", "mailto", "tel", "callto", "sms", "cid", "xmpp"}

// Characters browsers ignore inside attribute values.
var attrWhitespace = regexp.MustCompile(`[\x{0000}-\x{0020}\x{00A0}\x{1680}\x{180E}\x{2000}-\x{2029}\x{205F}\x{3000}]`)

// DefaultValidate is the engine's structural link check. Empty hrefs, known
// schemes and relative references pass; any other scheme fails.
func DefaultValidate(href string, protocols []Protocol) bool {
	if href == "" {
		return true
	}
	schemes := append(append([]string{}, builtinProtocols...), Schemes(protocols)...)
	quoted := make([]string, len(schemes))
	for i, s := range schemes {
		quoted[i] = regexp.QuoteMeta(s)
	}
	re := regexp.MustCompile(`(?i)^(?:(?:` + strings.Join(quoted, "|") + `):|[^a-z]|[a-z0-9+.\-]+(?:[^a-z+.\-:]|$))`)
	return re.MatchString(attrWhitespace.ReplaceAllString(href, ""))
}
