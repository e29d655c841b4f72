package memdoc

import (
	"inkwell/internal/document"
)

// tx is the working copy a chain mutates. It is committed only when every
// step succeeds.
type tx struct {
	d       *Doc
	st      state
	hist    history
	changed bool
	moved   bool // history moved (undo/redo)
	focus   bool
}

type step func(t *tx) bool

type chain struct {
	d     *Doc
	steps []step
}

func (d *Doc) Chain() document.Chain { return &chain{d: d} }

func (c *chain) add(s step) document.Chain {
	c.steps = append(c.steps, s)
	return c
}

func (c *chain) Run() bool {
	d := c.d
	t := &tx{d: d, st: d.st.clone(), hist: d.hist.clone()}
	for _, s := range c.steps {
		if !s(t) {
			return false
		}
	}
	if t.focus {
		d.focused = true
	}
	if t.changed && !t.moved {
		t.hist.record(d.st, false, d.now())
	}
	d.st = t.st
	d.hist = t.hist
	return true
}

func (c *chain) Focus() document.Chain {
	return c.add(func(t *tx) bool {
		t.focus = true
		return true
	})
}

func (c *chain) Undo() document.Chain {
	return c.add(func(t *tx) bool {
		prev, ok := t.hist.stepBack(t.st)
		if !ok {
			return false
		}
		t.st = prev.clone()
		t.moved = true
		return true
	})
}

func (c *chain) Redo() document.Chain {
	return c.add(func(t *tx) bool {
		next, ok := t.hist.stepForward(t.st)
		if !ok {
			return false
		}
		t.st = next.clone()
		t.moved = true
		return true
	})
}

// toggleBlocks sets every textual block in the selection to on(b) unless all
// of them already match, in which case off(b) is applied instead.
func (t *tx) toggleBlocks(match func(b *block) bool, on, off func(b *block)) bool {
	all, n := true, 0
	t.st.eachBlock(func(b *block) {
		if !b.textual() {
			return
		}
		n++
		if !match(b) {
			all = false
		}
	})
	if n == 0 {
		return false
	}
	t.st.eachBlock(func(b *block) {
		if !b.textual() {
			return
		}
		if all {
			off(b)
		} else {
			on(b)
		}
	})
	t.changed = true
	return true
}

func (c *chain) ToggleHeading(level int) document.Chain {
	return c.add(func(t *tx) bool {
		if level < 1 || level > 6 {
			return false
		}
		return t.toggleBlocks(
			func(b *block) bool { return b.kind == kindHeading && b.level == level },
			func(b *block) { b.kind, b.level = kindHeading, level },
			func(b *block) { b.kind, b.level = kindParagraph, 0 },
		)
	})
}

func (c *chain) ToggleCodeBlock() document.Chain {
	return c.add(func(t *tx) bool {
		return t.toggleBlocks(
			func(b *block) bool { return b.kind == kindCode },
			func(b *block) {
				b.kind, b.level, b.align = kindCode, 0, ""
				plain := b.cells[:0]
				for _, cl := range b.cells {
					if cl.isImage() {
						continue
					}
					plain = append(plain, cell{r: cl.r})
				}
				b.cells = plain
			},
			func(b *block) { b.kind = kindParagraph },
		)
	})
}

func (c *chain) ToggleBlockquote() document.Chain {
	return c.add(func(t *tx) bool {
		return t.toggleBlocks(
			func(b *block) bool { return b.quote },
			func(b *block) { b.quote = true },
			func(b *block) { b.quote = false },
		)
	})
}

func (c *chain) toggleList(kind listKind) document.Chain {
	return c.add(func(t *tx) bool {
		return t.toggleBlocks(
			func(b *block) bool { return b.list == kind },
			func(b *block) { b.list = kind },
			func(b *block) { b.list = listNone },
		)
	})
}

func (c *chain) ToggleBulletList() document.Chain { return c.toggleList(listBullet) }

func (c *chain) ToggleOrderedList() document.Chain { return c.toggleList(listOrdered) }

func (c *chain) SetTextAlign(a document.Alignment) document.Chain {
	return c.add(func(t *tx) bool {
		switch a {
		case document.AlignLeft, document.AlignCenter, document.AlignRight:
		default:
			return false
		}
		n := 0
		t.st.eachBlock(func(b *block) {
			if !b.alignable() {
				return
			}
			n++
			if a == document.AlignLeft {
				b.align = ""
			} else {
				b.align = a
			}
		})
		if n == 0 {
			return false
		}
		t.changed = true
		return true
	})
}

// toggleMark flips an inline mark across the selection, or the stored marks
// for an empty cursor.
func (t *tx) toggleMark(bit markSet) bool {
	s := &t.st
	if s.empty() {
		if b := s.blocks[s.head.Block]; b.kind == kindCode || b.kind == kindRule {
			return false
		}
		next := s.marksAt() ^ bit
		s.stored = &next
		return true
	}
	all, n := true, 0
	s.eachCell(func(b *block, c *cell) {
		if b.kind == kindCode || c.isImage() {
			return
		}
		n++
		if c.marks&bit == 0 {
			all = false
		}
	})
	if n == 0 {
		return false
	}
	s.eachCell(func(b *block, c *cell) {
		if b.kind == kindCode || c.isImage() {
			return
		}
		if all {
			c.marks &^= bit
		} else {
			c.marks |= bit
		}
	})
	t.changed = true
	return true
}

func (c *chain) ToggleBold() document.Chain { return c.mark(markBold) }

func (c *chain) ToggleItalic() document.Chain { return c.mark(markItalic) }

func (c *chain) ToggleUnderline() document.Chain { return c.mark(markUnderline) }

func (c *chain) ToggleHighlight() document.Chain { return c.mark(markHighlight) }

func (c *chain) mark(bit markSet) document.Chain {
	return c.add(func(t *tx) bool { return t.toggleMark(bit) })
}

func (c *chain) ExtendMarkRange(m document.Mark) document.Chain {
	return c.add(func(t *tx) bool {
		if m != document.Link {
			return true
		}
		t.st.extendLinkRange()
		return true
	})
}

func (c *chain) SetLink(href string) document.Chain {
	return c.add(func(t *tx) bool {
		if !t.d.allowLink(href) || t.st.empty() {
			return false
		}
		n := 0
		t.st.eachCell(func(b *block, cl *cell) {
			if b.kind == kindCode {
				return
			}
			cl.href = href
			n++
		})
		if n == 0 {
			return false
		}
		t.changed = true
		return true
	})
}

func (c *chain) UnsetLink() document.Chain {
	return c.add(func(t *tx) bool {
		t.st.eachCell(func(_ *block, cl *cell) {
			if cl.href != "" {
				cl.href = ""
				t.changed = true
			}
		})
		return true
	})
}

func (c *chain) SetHorizontalRule() document.Chain {
	return c.add(func(t *tx) bool {
		s := &t.st
		s.deleteSelection()
		p := s.head
		cur := s.blocks[p.Block]
		var next []block
		if cur.kind == kindRule {
			next = []block{cur, {kind: kindRule}, {}}
		} else {
			before, after := cur, cur
			before.cells = append([]cell(nil), cur.cells[:p.Offset]...)
			after.cells = append([]cell(nil), cur.cells[p.Offset:]...)
			if len(before.cells) > 0 {
				after.kind, after.level = kindParagraph, 0
				next = append(next, before)
			}
			next = append(next, block{kind: kindRule}, after)
		}
		s.replaceBlock(p.Block, next)
		s.collapse(Pos{Block: p.Block + len(next) - 1})
		t.changed = true
		return true
	})
}

func (c *chain) SetImage(src string) document.Chain {
	return c.add(func(t *tx) bool {
		if !allowedImageSrc(src) {
			return false
		}
		s := &t.st
		s.deleteSelection()
		p := s.head
		b := &s.blocks[p.Block]
		if b.kind != kindParagraph && b.kind != kindHeading {
			return false
		}
		s.insertCells(p, []cell{{r: objectReplacement, src: src}})
		s.collapse(Pos{Block: p.Block, Offset: p.Offset + 1})
		t.changed = true
		return true
	})
}
