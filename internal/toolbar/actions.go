// Package toolbar is the editor's command table: a fixed list of actions,
// each pairing an affordance with one engine command and a pressed-state
// query. Pressed-state is read from the engine on every call.
package toolbar

import (
	"inkwell/internal/document"
)

// PressState is a toolbar button's toggle state.
type PressState int

const (
	// NotApplicable marks actions with no pressed concept (rule, image,
	// undo, redo).
	NotApplicable PressState = iota
	Off
	On
)

func (s PressState) String() string {
	switch s {
	case Off:
		return "off"
	case On:
		return "on"
	default:
		return "n/a"
	}
}

// Icon names an affordance. Renderers map it to a glyph.
type Icon string

const (
	IconHeading1    Icon = "heading-1"
	IconHeading2    Icon = "heading-2"
	IconHeading3    Icon = "heading-3"
	IconBold        Icon = "bold"
	IconItalic      Icon = "italic"
	IconUnderline   Icon = "underline"
	IconCode        Icon = "code"
	IconQuote       Icon = "quote"
	IconMinus       Icon = "minus"
	IconImage       Icon = "image"
	IconUndo        Icon = "undo"
	IconRedo        Icon = "redo"
	IconAlignLeft   Icon = "align-left"
	IconAlignCenter Icon = "align-center"
	IconAlignRight  Icon = "align-right"
	IconList        Icon = "list"
	IconListOrdered Icon = "list-ordered"
	IconHighlighter Icon = "highlighter"
	IconLink        Icon = "link"
)

// Action is one toolbar entry.
type Action struct {
	ID       string
	Icon     Icon
	Label    string
	Shortcut string

	engine document.Engine
	run    func(e document.Engine)
	// query is nil for actions with no pressed concept.
	query  *document.Query
}

// Invoke runs the action's command.
func (a Action) Invoke() {
	if a.run != nil {
		a.run(a.engine)
	}
}

// Pressed evaluates the action's pressed-state against the engine now.
func (a Action) Pressed() (pressed, applicable bool) {
	if a.query == nil {
		return false, false
	}
	return a.engine.IsActive(*a.query), true
}

func (a Action) State() PressState {
	pressed, ok := a.Pressed()
	switch {
	case !ok:
		return NotApplicable
	case pressed:
		return On
	default:
		return Off
	}
}

// Prompter surfaces modal interactions. done is called at most once; ok is
// false when the prompt was cancelled.
type Prompter interface {
	PromptURL(initial string, done func(input string, ok bool))
	Notify(msg string)
}

// ImageRequester opens an image picker. Whatever is picked flows through
// the ingest pipeline, not back through the toolbar.
type ImageRequester interface {
	RequestImage()
}

// Controller builds the command table over one engine.
type Controller struct {
	engine  document.Engine
	link    *LinkCommand
	images  ImageRequester
	actions []Action
}

// NewController wires the toolbar. All collaborators are explicit.
func NewController(engine document.Engine, gate document.LinkGate, prompter Prompter, images ImageRequester) *Controller {
	c := &Controller{
		engine: engine,
		link:   NewLinkCommand(engine, gate, prompter),
		images: images,
	}
	c.actions = c.build()
	return c
}

func is(m document.Mark) *document.Query {
	q := document.Is(m)
	return &q
}

func heading(level int) *document.Query {
	q := document.IsWith(document.Heading, document.Attrs{document.AttrLevel: level})
	return &q
}

func align(a document.Alignment) *document.Query {
	q := document.IsAttrs(document.Attrs{document.AttrTextAlign: string(a)})
	return &q
}

func (c *Controller) build() []Action {
	chain := func(fn func(ch document.Chain) document.Chain) func(document.Engine) {
		return func(e document.Engine) { fn(e.Chain().Focus()).Run() }
	}
	toggleHeading := func(level int) func(document.Engine) {
		return chain(func(ch document.Chain) document.Chain { return ch.ToggleHeading(level) })
	}
	setAlign := func(a document.Alignment) func(document.Engine) {
		return chain(func(ch document.Chain) document.Chain { return ch.SetTextAlign(a) })
	}

	actions := []Action{
		{ID: "heading-1", Icon: IconHeading1, Label: "Heading 1", Shortcut: "alt+1", run: toggleHeading(1), query: heading(1)},
		{ID: "heading-2", Icon: IconHeading2, Label: "Heading 2", Shortcut: "alt+2", run: toggleHeading(2), query: heading(2)},
		{ID: "heading-3", Icon: IconHeading3, Label: "Heading 3", Shortcut: "alt+3", run: toggleHeading(3), query: heading(3)},
		{ID: "bold", Icon: IconBold, Label: "Bold", Shortcut: "ctrl+b", run: chain(document.Chain.ToggleBold), query: is(document.Bold)},
		{ID: "italic", Icon: IconItalic, Label: "Italic", Shortcut: "alt+i", run: chain(document.Chain.ToggleItalic), query: is(document.Italic)},
		{ID: "underline", Icon: IconUnderline, Label: "Underline", Shortcut: "ctrl+u", run: chain(document.Chain.ToggleUnderline), query: is(document.Underline)},
		{ID: "code-block", Icon: IconCode, Label: "Code block", Shortcut: "alt+`", run: chain(document.Chain.ToggleCodeBlock), query: is(document.CodeBlock)},
		{ID: "blockquote", Icon: IconQuote, Label: "Quote", Shortcut: "alt+q", run: chain(document.Chain.ToggleBlockquote), query: is(document.Blockquote)},
		{ID: "horizontal-rule", Icon: IconMinus, Label: "Horizontal rule", Shortcut: "alt+-", run: chain(document.Chain.SetHorizontalRule)},
		{ID: "image", Icon: IconImage, Label: "Image", Shortcut: "ctrl+o", run: func(document.Engine) {
			if c.images != nil {
				c.images.RequestImage()
			}
		}},
		{ID: "undo", Icon: IconUndo, Label: "Undo", Shortcut: "ctrl+z", run: chain(document.Chain.Undo)},
		{ID: "redo", Icon: IconRedo, Label: "Redo", Shortcut: "ctrl+y", run: chain(document.Chain.Redo)},
		{ID: "align-left", Icon: IconAlignLeft, Label: "Align left", Shortcut: "alt+l", run: setAlign(document.AlignLeft), query: align(document.AlignLeft)},
		{ID: "align-center", Icon: IconAlignCenter, Label: "Align center", Shortcut: "alt+e", run: setAlign(document.AlignCenter), query: align(document.AlignCenter)},
		{ID: "align-right", Icon: IconAlignRight, Label: "Align right", Shortcut: "alt+r", run: setAlign(document.AlignRight), query: align(document.AlignRight)},
		{ID: "bullet-list", Icon: IconList, Label: "Bullet list", Shortcut: "alt+8", run: chain(document.Chain.ToggleBulletList), query: is(document.BulletList)},
		{ID: "ordered-list", Icon: IconListOrdered, Label: "Ordered list", Shortcut: "alt+7", run: chain(document.Chain.ToggleOrderedList), query: is(document.OrderedList)},
		{ID: "highlight", Icon: IconHighlighter, Label: "Highlight", Shortcut: "alt+h", run: chain(document.Chain.ToggleHighlight), query: is(document.Highlight)},
		{ID: "link", Icon: IconLink, Label: "Link", Shortcut: "ctrl+k", run: func(document.Engine) { c.link.Run() }, query: is(document.Link)},
	}
	for i := range actions {
		actions[i].engine = c.engine
	}
	return actions
}

// Actions returns the table in its fixed order. The slice is a copy.
func (c *Controller) Actions() []Action {
	out := make([]Action, len(c.actions))
	copy(out, c.actions)
	return out
}

// Action looks up an action by ID.
func (c *Controller) Action(id string) (Action, bool) {
	for _, a := range c.actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Invoke runs the action with the given ID and reports whether it exists.
func (c *Controller) Invoke(id string) bool {
	a, ok := c.Action(id)
	if !ok {
		return false
	}
	a.Invoke()
	return true
}
