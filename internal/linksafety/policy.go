// Package linksafety decides whether a URL may become a link in a document.
//
// Two gates exist. IsAllowedURI guards every link that is inserted, pasted,
// or parsed out of imported HTML. ShouldAutoLink guards the convenience path
// that turns typed URLs into links; it only consults a domain denylist.
package linksafety

import (
	"slices"
	"strings"
)

// DefaultProtocol is used when a candidate URL carries no scheme.
const DefaultProtocol = "https"

// Schemes that are never linkable, whatever the allow-list says.
var deniedSchemes = []string{"ftp", "file", "mailto"}

var (
	defaultBlockedDomains         = []string{"example-phishing.com", "malicious-site.net"}
	defaultAutolinkBlockedDomains = []string{"example-no-autolink.com", "another-no-autolink.com"}
)

// Context is the resolution context of a link attempt.
type Context struct {
	DefaultProtocol string
	Protocols       []Protocol
	// DefaultValidate is the engine's own structural check. It receives the
	// serialized absolute URL.
	DefaultValidate func(href string) bool
}

// NewContext builds a Context whose DefaultValidate closes over the same
// protocol list.
func NewContext(defaultProtocol string, protocols []Protocol) Context {
	if strings.TrimSpace(defaultProtocol) == "" {
		defaultProtocol = DefaultProtocol
	}
	ps := slices.Clone(protocols)
	return Context{
		DefaultProtocol: defaultProtocol,
		Protocols:       ps,
		DefaultValidate: func(href string) bool { return DefaultValidate(href, ps) },
	}
}

// DefaultContext allows http and https.
func DefaultContext() Context {
	return NewContext(DefaultProtocol, []Protocol{Scheme("http"), Scheme("https")})
}

// Policy holds the domain denylists. The zero value blocks nothing; use
// DefaultPolicy for the built-in lists.
type Policy struct {
	BlockedDomains         []string
	AutolinkBlockedDomains []string
}

// DefaultPolicy returns the built-in denylists.
func DefaultPolicy() Policy {
	return Policy{
		BlockedDomains:         slices.Clone(defaultBlockedDomains),
		AutolinkBlockedDomains: slices.Clone(defaultAutolinkBlockedDomains),
	}
}

// WithBlockedDomains returns a copy of p with extra domains appended to each
// list. Entries are lower-cased.
func (p Policy) WithBlockedDomains(blocked, autolinkBlocked []string) Policy {
	out := Policy{
		BlockedDomains:         slices.Clone(p.BlockedDomains),
		AutolinkBlockedDomains: slices.Clone(p.AutolinkBlockedDomains),
	}
	for _, d := range blocked {
		if d = normalizeDomain(d); d != "" {
			out.BlockedDomains = append(out.BlockedDomains, d)
		}
	}
	for _, d := range autolinkBlocked {
		if d = normalizeDomain(d); d != "" {
			out.AutolinkBlockedDomains = append(out.AutolinkBlockedDomains, d)
		}
	}
	return out
}

func normalizeDomain(d string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(d), "."))
}

// IsAllowedURI applies the gate in a fixed order: structural validation,
// scheme denylist, scheme allow-list, domain denylist.
func (p Policy) IsAllowedURI(raw string, ctx Context) bool {
	defaultProtocol := ctx.DefaultProtocol
	if defaultProtocol == "" {
		defaultProtocol = DefaultProtocol
	}
	u, err := Parse(raw, defaultProtocol)
	if err != nil {
		return false
	}

	if ctx.DefaultValidate != nil && !ctx.DefaultValidate(u.Href) {
		return false
	}

	if slices.Contains(deniedSchemes, u.Scheme) {
		return false
	}

	if !slices.Contains(Schemes(ctx.Protocols), u.Scheme) {
		return false
	}

	return !slices.Contains(p.BlockedDomains, u.Hostname)
}

// ShouldAutoLink parses raw (https by default) and refuses autolinked
// hostnames. It does not consult a protocol allow-list.
func (p Policy) ShouldAutoLink(raw string) bool {
	u, err := Parse(raw, "https")
	if err != nil {
		return false
	}
	return !slices.Contains(p.AutolinkBlockedDomains, u.Hostname)
}

// IsAllowedURI checks raw against the default policy.
func IsAllowedURI(raw string, ctx Context) bool {
	return DefaultPolicy().IsAllowedURI(raw, ctx)
}

// ShouldAutoLink checks raw against the default autolink denylist.
func ShouldAutoLink(raw string) bool {
	return DefaultPolicy().ShouldAutoLink(raw)
}

// Gate binds a Policy to a Context. It is what the engine and the toolbar
// hold.
type Gate struct {
	Policy  Policy
	Context Context
}

// DefaultGate uses the default policy and context.
func DefaultGate() Gate {
	return Gate{Policy: DefaultPolicy(), Context: DefaultContext()}
}

// IsAllowedURI checks raw against g's policy and context.
func (g Gate) IsAllowedURI(raw string) bool { return g.Policy.IsAllowedURI(raw, g.Context) }

// ShouldAutoLink checks raw against g's autolink denylist.
func (g Gate) ShouldAutoLink(raw string) bool { return g.Policy.ShouldAutoLink(raw) }
