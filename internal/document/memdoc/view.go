package memdoc

import "inkwell/internal/document"

// CellView is one rendered cell.
type CellView struct {
	Rune      rune
	Bold      bool
	Italic    bool
	Underline bool
	Highlight bool
	Href      string
	// Image is set for an inline image; Rune is then a placeholder.
	Image    bool
	Selected bool
}

// BlockView is a read-only projection of one block for a renderer.
type BlockView struct {
	// Kind is document.Heading, document.CodeBlock, document.HorizontalRule,
	// or "" for a paragraph.
	Kind  document.Mark
	Level int
	Quote bool
	// List is document.BulletList, document.OrderedList or "".
	List document.Mark
	// Number is the 1-based position within an ordered list run.
	Number int
	Align  document.Alignment
	Cells  []CellView
	// Cursor is the head offset when the head is in this block, else -1.
	Cursor int
}

// View projects the document for rendering. It is recomputed on every call.
func (d *Doc) View() []BlockView {
	s := &d.st
	from, to := s.ordered()
	out := make([]BlockView, 0, len(s.blocks))
	number := 0
	for bi, b := range s.blocks {
		v := BlockView{Level: b.level, Quote: b.quote, Align: alignOf(&b), Cursor: -1}
		switch b.kind {
		case kindHeading:
			v.Kind = document.Heading
		case kindCode:
			v.Kind = document.CodeBlock
		case kindRule:
			v.Kind = document.HorizontalRule
		}
		switch b.list {
		case listBullet:
			v.List = document.BulletList
			number = 0
		case listOrdered:
			v.List = document.OrderedList
			number++
			v.Number = number
		default:
			number = 0
		}
		if s.head.Block == bi {
			v.Cursor = s.head.Offset
		}
		v.Cells = make([]CellView, len(b.cells))
		for i, c := range b.cells {
			p := Pos{Block: bi, Offset: i}
			v.Cells[i] = CellView{
				Rune:      c.r,
				Bold:      c.marks&markBold != 0,
				Italic:    c.marks&markItalic != 0,
				Underline: c.marks&markUnderline != 0,
				Highlight: c.marks&markHighlight != 0,
				Href:      c.href,
				Image:     c.isImage(),
				Selected:  !s.empty() && !p.before(from) && p.before(to),
			}
		}
		out = append(out, v)
	}
	return out
}
