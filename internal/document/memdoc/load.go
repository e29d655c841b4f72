package memdoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"inkwell/internal/document"
)

// Load replaces the document with parsed HTML and clears history. Links the
// gate rejects are kept as plain text; images keep only data:image/* and
// http(s) sources.
func (d *Doc) Load(src string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	p := &loader{d: d}
	for _, n := range nodes {
		p.node(n, blockCtx{})
	}
	blocks := p.blocks
	for i := range blocks {
		if blocks[i].kind == kindCode {
			continue
		}
		cs := blocks[i].cells
		for len(cs) > 0 && cs[len(cs)-1].r == ' ' {
			cs = cs[:len(cs)-1]
		}
		blocks[i].cells = cs
	}
	if len(blocks) == 0 {
		blocks = []block{{}}
	}
	last := len(blocks) - 1
	d.st = state{blocks: blocks}
	d.st.collapse(Pos{Block: last, Offset: len(blocks[last].cells)})
	d.hist.reset()
	return nil
}

type blockCtx struct {
	quote bool
	list  listKind
}

type inlineCtx struct {
	marks markSet
	href  string
}

type loader struct {
	d      *Doc
	blocks []block
	// open is the index of an implicit paragraph collecting stray inline
	// content while hasOpen is set.
	open    int
	hasOpen bool
}

func (p *loader) start(b block) *block {
	p.hasOpen = false
	p.blocks = append(p.blocks, b)
	return &p.blocks[len(p.blocks)-1]
}

func (p *loader) implicit(bc blockCtx) int {
	if !p.hasOpen {
		p.blocks = append(p.blocks, block{quote: bc.quote, list: bc.list})
		p.open = len(p.blocks) - 1
		p.hasOpen = true
	}
	return p.open
}

func (p *loader) node(n *html.Node, bc blockCtx) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		i := p.implicit(bc)
		p.inline(n, inlineCtx{}, i)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.P, atom.Div:
		p.start(block{quote: bc.quote, list: bc.list, align: alignAttr(n)})
		i := len(p.blocks) - 1
		p.children(n, inlineCtx{}, i)
		p.hasOpen = false
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		p.start(block{kind: kindHeading, level: level, quote: bc.quote, list: bc.list, align: alignAttr(n)})
		i := len(p.blocks) - 1
		p.children(n, inlineCtx{}, i)
		p.hasOpen = false
	case atom.Pre:
		b := p.start(block{kind: kindCode, quote: bc.quote, list: bc.list})
		text := strings.TrimSuffix(textContent(n), "\n")
		for _, r := range text {
			b.cells = append(b.cells, cell{r: r})
		}
	case atom.Hr:
		p.start(block{kind: kindRule, quote: bc.quote})
	case atom.Blockquote:
		p.hasOpen = false
		inner := bc
		inner.quote = true
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.node(c, inner)
		}
		p.hasOpen = false
	case atom.Ul, atom.Ol:
		p.hasOpen = false
		inner := bc
		inner.list = listBullet
		if n.DataAtom == atom.Ol {
			inner.list = listOrdered
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Li {
				p.listItem(c, inner)
			}
		}
		p.hasOpen = false
	case atom.Li:
		p.listItem(n, bc)
	case atom.Script, atom.Style, atom.Head, atom.Title:
	default:
		i := p.implicit(bc)
		p.inline(n, inlineCtx{}, i)
	}
}

func (p *loader) listItem(n *html.Node, bc blockCtx) {
	p.hasOpen = false
	if bc.list == listNone {
		bc.list = listBullet
	}
	before := len(p.blocks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.node(c, bc)
	}
	if len(p.blocks) == before {
		p.start(block{quote: bc.quote, list: bc.list})
	}
	p.hasOpen = false
}

func (p *loader) children(n *html.Node, ic inlineCtx, i int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.inline(c, ic, i)
	}
}

// inline appends n's content to block i. The block is addressed by index
// because p.blocks may grow while descending.
func (p *loader) inline(n *html.Node, ic inlineCtx, i int) {
	switch n.Type {
	case html.TextNode:
		b := &p.blocks[i]
		text := collapseSpace(n.Data)
		for _, r := range text {
			if r == ' ' && (len(b.cells) == 0 || b.cells[len(b.cells)-1].r == ' ') {
				continue
			}
			b.cells = append(b.cells, cell{r: r, marks: ic.marks, href: ic.href})
		}
		return
	case html.ElementNode:
	default:
		return
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		ic.marks |= markBold
	case atom.Em, atom.I:
		ic.marks |= markItalic
	case atom.U:
		ic.marks |= markUnderline
	case atom.Mark:
		ic.marks |= markHighlight
	case atom.A:
		if href := attr(n, "href"); href != "" && p.d.allowLink(href) {
			ic.href = href
		}
	case atom.Img:
		if src := attr(n, "src"); allowedImageSrc(src) {
			b := &p.blocks[i]
			b.cells = append(b.cells, cell{r: objectReplacement, src: src, marks: ic.marks, href: ic.href})
		}
		return
	case atom.Br:
		b := &p.blocks[i]
		if len(b.cells) > 0 && b.cells[len(b.cells)-1].r != ' ' {
			b.cells = append(b.cells, cell{r: ' ', marks: ic.marks, href: ic.href})
		}
		return
	case atom.Script, atom.Style:
		return
	}
	p.children(n, ic, i)
}

func collapseSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', '\f':
			return ' '
		}
		return r
	}, s)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func alignAttr(n *html.Node) document.Alignment {
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(strings.ToLower(k)) != "text-align" {
			continue
		}
		switch a := document.Alignment(strings.TrimSpace(strings.ToLower(v))); a {
		case document.AlignCenter, document.AlignRight:
			return a
		}
	}
	return ""
}

func allowedImageSrc(src string) bool {
	lower := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(lower, "data:image/") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "http://")
}
