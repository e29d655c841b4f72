// Package memdoc is a small in-memory document engine. It implements
// document.Engine so the editing surface can run without a browser-side
// engine: a flat list of blocks, each holding a run of styled cells.
package memdoc

import (
	"strings"
	"time"

	"inkwell/internal/document"
)

// DefaultContent is what a new editor shows.
const DefaultContent = "<p>Hello World!</p>"

// objectReplacement stands in for an inline image inside a block.
const objectReplacement = '\uFFFC'

type blockKind int

const (
	kindParagraph blockKind = iota
	kindHeading
	kindCode
	kindRule
)

type listKind int

const (
	listNone listKind = iota
	listBullet
	listOrdered
)

type markSet uint8

const (
	markBold markSet = 1 << iota
	markItalic
	markUnderline
	markHighlight
)

var inlineMarks = map[document.Mark]markSet{
	document.Bold:      markBold,
	document.Italic:    markItalic,
	document.Underline: markUnderline,
	document.Highlight: markHighlight,
}

type cell struct {
	r     rune
	marks markSet
	href  string
	src   string
}

func (c cell) isImage() bool { return c.src != "" }

type block struct {
	kind  blockKind
	level int
	quote bool
	list  listKind
	align document.Alignment
	cells []cell
}

func (b block) textual() bool { return b.kind != kindRule }

func (b block) alignable() bool { return b.kind == kindParagraph || b.kind == kindHeading }

// Pos addresses a gap between cells: Offset 0 is before the first cell.
type Pos struct {
	Block  int
	Offset int
}

func (p Pos) before(q Pos) bool {
	return p.Block < q.Block || (p.Block == q.Block && p.Offset < q.Offset)
}

type state struct {
	blocks []block
	anchor Pos
	head   Pos
	// stored marks apply to the next typed text; nil means "inherit".
	stored *markSet
}

func (s state) clone() state {
	out := state{anchor: s.anchor, head: s.head}
	if s.stored != nil {
		m := *s.stored
		out.stored = &m
	}
	out.blocks = make([]block, len(s.blocks))
	for i, b := range s.blocks {
		b.cells = append([]cell(nil), b.cells...)
		out.blocks[i] = b
	}
	return out
}

func (s state) ordered() (Pos, Pos) {
	if s.head.before(s.anchor) {
		return s.head, s.anchor
	}
	return s.anchor, s.head
}

func (s state) empty() bool { return s.anchor == s.head }

func (s *state) collapse(p Pos) {
	s.anchor, s.head = p, p
	s.stored = nil
}

// eachCell visits the cells inside [from, to) with their block.
func (s *state) eachCell(fn func(b *block, c *cell)) {
	from, to := s.ordered()
	for bi := from.Block; bi <= to.Block && bi < len(s.blocks); bi++ {
		b := &s.blocks[bi]
		start, end := 0, len(b.cells)
		if bi == from.Block {
			start = from.Offset
		}
		if bi == to.Block {
			end = to.Offset
		}
		for i := start; i < end && i < len(b.cells); i++ {
			fn(b, &b.cells[i])
		}
	}
}

func (s *state) eachBlock(fn func(b *block)) {
	from, to := s.ordered()
	for bi := from.Block; bi <= to.Block && bi < len(s.blocks); bi++ {
		fn(&s.blocks[bi])
	}
}

// Options configure a Doc.
type Options struct {
	// Gate guards every link. Nil rejects all links.
	Gate          document.LinkGate
	HistoryDepth  int
	NewGroupDelay time.Duration
	Now           func() time.Time
}

// Doc is the engine. It is not safe for concurrent use; the editing surface
// drives it from a single loop.
type Doc struct {
	st      state
	gate    document.LinkGate
	hist    history
	now     func() time.Time
	focused bool
}

var _ document.Engine = (*Doc)(nil)

// New returns an empty document (one empty paragraph).
func New(opts Options) *Doc {
	if opts.HistoryDepth <= 0 {
		opts.HistoryDepth = 100
	}
	if opts.NewGroupDelay <= 0 {
		opts.NewGroupDelay = 500 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Doc{
		st:   state{blocks: []block{{}}},
		gate: opts.Gate,
		hist: history{depth: opts.HistoryDepth, delay: opts.NewGroupDelay},
		now:  opts.Now,
	}
}

// Focused reports whether a chain has focused the editor since the last
// Blur.
func (d *Doc) Focused() bool { return d.focused }

func (d *Doc) Blur() { d.focused = false }

func (d *Doc) allowLink(href string) bool {
	return d.gate != nil && d.gate.IsAllowedURI(href)
}

func (d *Doc) Selection() document.Selection {
	var sb strings.Builder
	d.st.eachCell(func(_ *block, c *cell) {
		if !c.isImage() {
			sb.WriteRune(c.r)
		}
	})
	return document.Selection{Empty: d.st.empty(), Text: sb.String()}
}

func (d *Doc) IsActive(q document.Query) bool {
	s := &d.st
	if q.Name == "" {
		return d.attrsActive(q.Attrs)
	}
	if bit, ok := inlineMarks[q.Name]; ok {
		return s.marksAt()&bit != 0
	}
	switch q.Name {
	case document.Link:
		href := s.linkAt()
		if href == "" {
			return false
		}
		want := q.Attrs.String(document.AttrHref)
		return want == "" || want == href
	case document.Image:
		from, to := s.ordered()
		if from.Block != to.Block || to.Offset-from.Offset != 1 {
			return false
		}
		return s.blocks[from.Block].cells[from.Offset].isImage()
	}
	return d.allBlocks(func(b *block) bool {
		switch q.Name {
		case document.Heading:
			if b.kind != kindHeading {
				return false
			}
			lvl, ok := q.Attrs[document.AttrLevel]
			return !ok || lvl == b.level
		case document.CodeBlock:
			return b.kind == kindCode
		case document.HorizontalRule:
			return b.kind == kindRule
		case document.Blockquote:
			return b.quote
		case document.BulletList:
			return b.list == listBullet
		case document.OrderedList:
			return b.list == listOrdered
		}
		return false
	})
}

func (d *Doc) attrsActive(attrs document.Attrs) bool {
	if len(attrs) == 0 {
		return false
	}
	v, ok := attrs[document.AttrTextAlign]
	if !ok {
		return false
	}
	want := document.Alignment(toString(v))
	seen := false
	all := d.allBlocks(func(b *block) bool {
		if !b.alignable() {
			return true
		}
		seen = true
		return alignOf(b) == want
	})
	return seen && all
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case document.Alignment:
		return string(t)
	}
	return ""
}

func alignOf(b *block) document.Alignment {
	if b.align == "" {
		return document.AlignLeft
	}
	return b.align
}

func (d *Doc) allBlocks(fn func(b *block) bool) bool {
	ok := true
	d.st.eachBlock(func(b *block) {
		if !fn(b) {
			ok = false
		}
	})
	return ok
}

// marksAt returns the inline marks in effect at the selection: stored marks,
// the marks of the cell before an empty cursor, or the marks every markable
// cell in a range shares.
func (s *state) marksAt() markSet {
	if s.empty() {
		if s.stored != nil {
			return *s.stored
		}
		c, ok := s.cellNearCursor()
		if !ok {
			return 0
		}
		return c.marks
	}
	var acc markSet
	first := true
	s.eachCell(func(b *block, c *cell) {
		if b.kind == kindCode || c.isImage() {
			return
		}
		if first {
			acc = c.marks
			first = false
			return
		}
		acc &= c.marks
	})
	return acc
}

func (s *state) linkAt() string {
	if s.empty() {
		c, ok := s.cellNearCursor()
		if !ok {
			return ""
		}
		return c.href
	}
	href := ""
	first := true
	s.eachCell(func(b *block, c *cell) {
		if b.kind == kindCode {
			return
		}
		if first {
			href = c.href
			first = false
			return
		}
		if c.href != href {
			href = ""
		}
	})
	return href
}

func (s *state) cellNearCursor() (cell, bool) {
	p := s.head
	if p.Block >= len(s.blocks) {
		return cell{}, false
	}
	b := s.blocks[p.Block]
	switch {
	case p.Offset > 0 && p.Offset <= len(b.cells):
		return b.cells[p.Offset-1], true
	case p.Offset == 0 && len(b.cells) > 0:
		return b.cells[0], true
	}
	return cell{}, false
}

func (d *Doc) Attributes(m document.Mark) document.Attrs {
	s := &d.st
	from, _ := s.ordered()
	out := document.Attrs{}
	switch m {
	case document.Link:
		if href := s.linkAt(); href != "" {
			out[document.AttrHref] = href
		}
	case document.Heading:
		if b := s.blocks[from.Block]; b.kind == kindHeading {
			out[document.AttrLevel] = b.level
		}
	case document.Image:
		if d.IsActive(document.Is(document.Image)) {
			out[document.AttrSrc] = s.blocks[from.Block].cells[from.Offset].src
		}
	default:
		if b := s.blocks[from.Block]; b.alignable() {
			out[document.AttrTextAlign] = string(alignOf(&b))
		}
	}
	return out
}
