// Package document is the contract between the editing surface and the
// document engine. The engine owns the schema, transactions, selection and
// undo history; everything else reaches it through these interfaces.
package document

// Mark names a formatting capability the engine supports at a selection.
// Inline marks (bold, link, ...) and block nodes (heading, lists, ...) share
// one vocabulary because IsActive answers for both.
type Mark string

const (
	Bold           Mark = "bold"
	Italic         Mark = "italic"
	Underline      Mark = "underline"
	Highlight      Mark = "highlight"
	Link           Mark = "link"
	Heading        Mark = "heading"
	CodeBlock      Mark = "codeBlock"
	Blockquote     Mark = "blockquote"
	BulletList     Mark = "bulletList"
	OrderedList    Mark = "orderedList"
	Image          Mark = "image"
	HorizontalRule Mark = "horizontalRule"
)

// Alignment is a text alignment. Only one applies to a block at a time.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Attribute keys used in queries and Attributes results.
const (
	AttrLevel     = "level"
	AttrTextAlign = "textAlign"
	AttrHref      = "href"
	AttrSrc       = "src"
)

// Attrs are node or mark attributes.
type Attrs map[string]any

// String returns the string value of key, or "".
func (a Attrs) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Query asks whether a mark (optionally with attributes) is active at the
// selection. A Query with an empty Name matches on attributes alone.
type Query struct {
	Name  Mark
	Attrs Attrs
}

func Is(m Mark) Query { return Query{Name: m} }

func IsWith(m Mark, attrs Attrs) Query { return Query{Name: m, Attrs: attrs} }

func IsAttrs(attrs Attrs) Query { return Query{Attrs: attrs} }

// Selection describes the engine's current selection.
type Selection struct {
	Empty bool
	Text  string
}

// Engine is the document handle every component shares.
type Engine interface {
	// Chain starts a command chain. Nothing changes until Run.
	Chain() Chain
	IsActive(q Query) bool
	Attributes(m Mark) Attrs
	HTML() string
	Selection() Selection
}

// Chain composes commands that are applied as one atomic unit. Run reports
// whether every step applied; when it returns false the document is
// unchanged.
type Chain interface {
	Focus() Chain
	ToggleHeading(level int) Chain
	ToggleBold() Chain
	ToggleItalic() Chain
	ToggleUnderline() Chain
	ToggleCodeBlock() Chain
	ToggleBlockquote() Chain
	SetHorizontalRule() Chain
	SetImage(src string) Chain
	Undo() Chain
	Redo() Chain
	SetTextAlign(a Alignment) Chain
	ToggleBulletList() Chain
	ToggleOrderedList() Chain
	ToggleHighlight() Chain
	ExtendMarkRange(m Mark) Chain
	SetLink(href string) Chain
	UnsetLink() Chain
	Run() bool
}

// LinkGate is the link-safety check an engine consults before any link
// reaches the document.
type LinkGate interface {
	IsAllowedURI(raw string) bool
	ShouldAutoLink(raw string) bool
}
