package toolbar

import (
	"log/slog"
	"strings"

	"inkwell/internal/document"
	"inkwell/internal/linksafety"
)

// Notices the link flow surfaces through the Prompter.
const (
	MsgSelectText = "Please select some text first"
	MsgInvalidURL = "Please enter a valid URL"
	MsgNotAllowed = "That link is not allowed"
)

// LinkCommand is the manual link flow: check the selection, prompt for a
// URL, then set, replace or remove the link.
type LinkCommand struct {
	Engine   document.Engine
	Gate     document.LinkGate
	Prompter Prompter
}

// NewLinkCommand wires a link flow. A nil gate falls back to the built-in
// policy.
func NewLinkCommand(engine document.Engine, gate document.LinkGate, prompter Prompter) *LinkCommand {
	if gate == nil {
		gate = linksafety.DefaultGate()
	}
	return &LinkCommand{Engine: engine, Gate: gate, Prompter: prompter}
}

// Run starts the flow. With an empty selection it only shows a notice.
func (l *LinkCommand) Run() {
	if l.Engine.Selection().Empty {
		l.Prompter.Notify(MsgSelectText)
		return
	}
	prev := l.Engine.Attributes(document.Link).String(document.AttrHref)
	l.Prompter.PromptURL(prev, func(input string, ok bool) {
		if !ok {
			return
		}
		l.Apply(input)
	})
}

// Apply handles a submitted prompt. Empty input removes an active link.
func (l *LinkCommand) Apply(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		if !l.Engine.IsActive(document.Is(document.Link)) {
			return false
		}
		return l.Engine.Chain().Focus().ExtendMarkRange(document.Link).UnsetLink().Run()
	}

	href := linksafety.NormalizeHref(input)
	if _, err := linksafety.Parse(href, linksafety.DefaultProtocol); err != nil {
		slog.Debug("link: invalid url", "input", input, "err", err)
		l.Prompter.Notify(MsgInvalidURL)
		return false
	}
	if !l.Gate.IsAllowedURI(href) {
		slog.Debug("link: rejected", "href", href)
		l.Prompter.Notify(MsgNotAllowed)
		return false
	}
	return l.Engine.Chain().Focus().ExtendMarkRange(document.Link).SetLink(href).Run()
}
