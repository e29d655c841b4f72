package memdoc

import (
	"strings"
	"unicode"

	"inkwell/internal/document"
	"inkwell/internal/linksafety"
)

func (s *state) replaceBlock(i int, with []block) {
	out := make([]block, 0, len(s.blocks)-1+len(with))
	out = append(out, s.blocks[:i]...)
	out = append(out, with...)
	out = append(out, s.blocks[i+1:]...)
	s.blocks = out
}

func (s *state) insertCells(p Pos, cs []cell) {
	b := &s.blocks[p.Block]
	out := make([]cell, 0, len(b.cells)+len(cs))
	out = append(out, b.cells[:p.Offset]...)
	out = append(out, cs...)
	out = append(out, b.cells[p.Offset:]...)
	b.cells = out
}

// deleteSelection removes the selected range, joining the boundary blocks.
// The cursor ends at the start of the removed range.
func (s *state) deleteSelection() bool {
	if s.empty() {
		return false
	}
	from, to := s.ordered()
	first := s.blocks[from.Block]
	last := s.blocks[to.Block]
	first.cells = append(append([]cell(nil), first.cells[:from.Offset]...), last.cells[to.Offset:]...)
	if first.kind == kindRule && to.Block != from.Block {
		first = last
		first.cells = append([]cell(nil), last.cells[to.Offset:]...)
	}
	out := make([]block, 0, len(s.blocks)-(to.Block-from.Block))
	out = append(out, s.blocks[:from.Block]...)
	out = append(out, first)
	out = append(out, s.blocks[to.Block+1:]...)
	s.blocks = out
	s.collapse(from)
	return true
}

// extendLinkRange grows the selection over the link run it touches.
func (s *state) extendLinkRange() {
	from, to := s.ordered()
	b := s.blocks[from.Block]
	href := ""
	switch {
	case from.Offset < len(b.cells) && b.cells[from.Offset].href != "":
		href = b.cells[from.Offset].href
	case from.Offset > 0 && from.Offset <= len(b.cells):
		href = b.cells[from.Offset-1].href
	}
	if href == "" {
		return
	}
	start := from.Offset
	for start > 0 && b.cells[start-1].href == href {
		start--
	}
	end := to.Offset
	if to.Block != from.Block {
		end = len(b.cells)
	}
	for end < len(b.cells) && b.cells[end].href == href {
		end++
	}
	if to.Block == from.Block {
		s.anchor, s.head = Pos{from.Block, start}, Pos{from.Block, end}
		return
	}
	s.anchor = Pos{from.Block, start}
	if s.head.before(s.anchor) {
		s.anchor, s.head = s.head, s.anchor
	}
}

// edit applies fn to a working copy and records it in history. Typing edits
// within the group delay share one undo step.
func (d *Doc) edit(typing bool, fn func(s *state) bool) bool {
	prev := d.st
	work := d.st.clone()
	if !fn(&work) {
		return false
	}
	d.hist.record(prev, typing, d.now())
	d.st = work
	return true
}

// InsertText types text at the cursor, replacing any selection. Newlines
// split blocks. A word boundary after a URL-like word may autolink it.
func (d *Doc) InsertText(text string) bool {
	if text == "" {
		return false
	}
	return d.edit(true, func(s *state) bool {
		s.deleteSelection()
		for _, r := range text {
			if r == '\n' || r == '\r' {
				d.autolinkBeforeCursor(s)
				s.split()
				continue
			}
			d.typeRune(s, r)
			if unicode.IsSpace(r) {
				d.autolinkBefore(s, s.head.Offset-1)
			}
		}
		return true
	})
}

func (d *Doc) typeRune(s *state, r rune) {
	p := s.head
	b := &s.blocks[p.Block]
	if b.kind == kindRule {
		s.replaceBlock(p.Block, []block{*b, {}})
		p = Pos{Block: p.Block + 1}
		b = &s.blocks[p.Block]
	}
	c := cell{r: r}
	if b.kind != kindCode {
		if s.stored != nil {
			c.marks = *s.stored
		} else if p.Offset > 0 {
			c.marks = b.cells[p.Offset-1].marks
		}
	}
	stored := s.stored
	s.insertCells(p, []cell{c})
	s.anchor, s.head = Pos{p.Block, p.Offset + 1}, Pos{p.Block, p.Offset + 1}
	s.stored = stored
}

// split breaks the current block at the cursor. An empty list item leaves
// the list instead; code blocks take a literal newline.
func (s *state) split() {
	p := s.head
	cur := s.blocks[p.Block]
	if cur.kind == kindCode {
		s.insertCells(p, []cell{{r: '\n'}})
		s.collapse(Pos{p.Block, p.Offset + 1})
		return
	}
	if cur.list != listNone && len(cur.cells) == 0 {
		s.blocks[p.Block].list = listNone
		return
	}
	before, after := cur, cur
	before.cells = append([]cell(nil), cur.cells[:p.Offset]...)
	after.cells = append([]cell(nil), cur.cells[p.Offset:]...)
	if cur.kind == kindHeading && len(after.cells) == 0 {
		after.kind, after.level = kindParagraph, 0
	}
	if cur.kind == kindRule {
		before, after = cur, block{}
	}
	s.replaceBlock(p.Block, []block{before, after})
	s.collapse(Pos{Block: p.Block + 1})
}

// SplitBlock is the Enter key.
func (d *Doc) SplitBlock() bool {
	return d.edit(true, func(s *state) bool {
		s.deleteSelection()
		d.autolinkBeforeCursor(s)
		s.split()
		return true
	})
}

// Backspace deletes the selection or the cell before the cursor. At the
// start of a block it first lifts the block out of a list or quote, then
// joins it with the previous block.
func (d *Doc) Backspace() bool {
	return d.edit(true, func(s *state) bool {
		if s.deleteSelection() {
			return true
		}
		p := s.head
		b := &s.blocks[p.Block]
		if p.Offset > 0 {
			b.cells = append(b.cells[:p.Offset-1:p.Offset-1], b.cells[p.Offset:]...)
			s.collapse(Pos{p.Block, p.Offset - 1})
			return true
		}
		switch {
		case b.list != listNone:
			b.list = listNone
			return true
		case b.quote:
			b.quote = false
			return true
		case b.kind == kindHeading || b.kind == kindCode:
			b.kind, b.level = kindParagraph, 0
			return true
		case p.Block == 0:
			return false
		}
		prev := s.blocks[p.Block-1]
		if prev.kind == kindRule {
			s.blocks = append(s.blocks[:p.Block-1:p.Block-1], s.blocks[p.Block:]...)
			s.collapse(Pos{Block: p.Block - 1})
			return true
		}
		at := len(prev.cells)
		prev.cells = append(append([]cell(nil), prev.cells...), b.cells...)
		s.replaceBlock(p.Block-1, []block{prev})
		s.blocks = append(s.blocks[:p.Block:p.Block], s.blocks[p.Block+1:]...)
		s.collapse(Pos{p.Block - 1, at})
		return true
	})
}

// Delete removes the selection or the cell after the cursor.
func (d *Doc) Delete() bool {
	return d.edit(true, func(s *state) bool {
		if s.deleteSelection() {
			return true
		}
		p := s.head
		b := &s.blocks[p.Block]
		if p.Offset < len(b.cells) {
			b.cells = append(b.cells[:p.Offset:p.Offset], b.cells[p.Offset+1:]...)
			return true
		}
		if p.Block+1 >= len(s.blocks) {
			return false
		}
		next := s.blocks[p.Block+1]
		if next.kind == kindRule || b.kind == kindRule {
			s.blocks = append(s.blocks[:p.Block+1:p.Block+1], s.blocks[p.Block+2:]...)
			return true
		}
		b.cells = append(b.cells, next.cells...)
		s.blocks = append(s.blocks[:p.Block+1:p.Block+1], s.blocks[p.Block+2:]...)
		return true
	})
}

// Paste inserts text. A single URL pasted over a selection becomes a link
// on that selection when the gate allows it.
func (d *Doc) Paste(text string) bool {
	word := strings.TrimSpace(text)
	if !d.st.empty() && looksLikeURL(word) && !strings.ContainsFunc(word, unicode.IsSpace) {
		href := linksafety.NormalizeHref(word)
		if d.allowLink(href) {
			return d.Chain().SetLink(href).Run()
		}
	}
	return d.InsertText(text)
}

func (d *Doc) autolinkBeforeCursor(s *state) {
	d.autolinkBefore(s, s.head.Offset)
}

// autolinkBefore links the word that ends at offset end in the cursor's
// block when it looks like a URL and both gates accept it.
func (d *Doc) autolinkBefore(s *state, end int) {
	b := &s.blocks[s.head.Block]
	if b.kind == kindCode || end <= 0 || end > len(b.cells) {
		return
	}
	start := end
	for start > 0 && !unicode.IsSpace(b.cells[start-1].r) {
		start--
	}
	for end > start && strings.ContainsRune(".,;:!?)'\"", b.cells[end-1].r) {
		end--
	}
	if end <= start {
		return
	}
	var sb strings.Builder
	for _, c := range b.cells[start:end] {
		if c.href != "" || c.isImage() {
			return
		}
		sb.WriteRune(c.r)
	}
	word := sb.String()
	if !Autolinks(d.gate, word) {
		return
	}
	href := linksafety.NormalizeHref(word)
	for i := start; i < end; i++ {
		b.cells[i].href = href
	}
}

// Autolinks reports whether a typed word becomes a link: it must read as a
// URL and pass both of g's gates unchanged. A nil gate links nothing.
func Autolinks(g document.LinkGate, word string) bool {
	if g == nil || !looksLikeURL(word) {
		return false
	}
	return g.ShouldAutoLink(word) && g.IsAllowedURI(word)
}

func looksLikeURL(word string) bool {
	if word == "" {
		return false
	}
	lower := strings.ToLower(word)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return len(lower) > len("https://")
	}
	if linksafety.HasScheme(word) {
		return false
	}
	host := word
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	dot := strings.LastIndexByte(host, '.')
	if dot <= 0 || dot == len(host)-1 {
		return false
	}
	tld := host[dot+1:]
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(tld) >= 2
}

// Direction is a cursor movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
)

// Move moves the cursor. With extend set, the anchor stays put.
func (d *Doc) Move(dir Direction, extend bool) {
	s := &d.st
	p := s.head
	if !extend && !s.empty() {
		from, to := s.ordered()
		switch dir {
		case Left:
			s.collapse(from)
			return
		case Right:
			s.collapse(to)
			return
		}
	}
	n := len(s.blocks[p.Block].cells)
	switch dir {
	case Left:
		if p.Offset > 0 {
			p.Offset--
		} else if p.Block > 0 {
			p.Block--
			p.Offset = len(s.blocks[p.Block].cells)
		}
	case Right:
		if p.Offset < n {
			p.Offset++
		} else if p.Block+1 < len(s.blocks) {
			p = Pos{Block: p.Block + 1}
		}
	case Up:
		if p.Block > 0 {
			p.Block--
			p.Offset = min(p.Offset, len(s.blocks[p.Block].cells))
		} else {
			p.Offset = 0
		}
	case Down:
		if p.Block+1 < len(s.blocks) {
			p.Block++
			p.Offset = min(p.Offset, len(s.blocks[p.Block].cells))
		} else {
			p.Offset = n
		}
	case LineStart:
		p.Offset = 0
	case LineEnd:
		p.Offset = n
	}
	if extend {
		s.head = p
		s.stored = nil
		return
	}
	s.collapse(p)
}

// SelectAll selects the whole document.
func (d *Doc) SelectAll() {
	last := len(d.st.blocks) - 1
	d.st.anchor = Pos{}
	d.st.head = Pos{Block: last, Offset: len(d.st.blocks[last].cells)}
	d.st.stored = nil
}

// Select sets the selection directly. Positions are clamped to the document.
func (d *Doc) Select(anchor, head Pos) {
	d.st.anchor = d.clamp(anchor)
	d.st.head = d.clamp(head)
	d.st.stored = nil
}

func (d *Doc) clamp(p Pos) Pos {
	p.Block = max(0, min(p.Block, len(d.st.blocks)-1))
	p.Offset = max(0, min(p.Offset, len(d.st.blocks[p.Block].cells)))
	return p
}

// Cursor returns the anchor and head.
func (d *Doc) Cursor() (anchor, head Pos) { return d.st.anchor, d.st.head }
