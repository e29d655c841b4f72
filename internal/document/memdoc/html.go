package memdoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Presentation classes the editor attaches to nodes and marks.
const (
	classBulletList  = "list-disc ml-3"
	classOrderedList = "list-decimal ml-3"
	classUnderline   = "my-custom-class"
	classImage       = "w-[400px]"
	classLink        = "text-blue-600 underline hover:text-blue-700"
)

// HTML serializes the document.
func (d *Doc) HTML() string {
	var sb strings.Builder
	writeBlocks(&sb, d.st.blocks)
	return sb.String()
}

// writeBlocks groups consecutive quoted blocks into one blockquote and
// consecutive list items of the same kind into one list.
func writeBlocks(sb *strings.Builder, blocks []block) {
	for i := 0; i < len(blocks); {
		if blocks[i].quote {
			j := i
			for j < len(blocks) && blocks[j].quote {
				j++
			}
			inner := make([]block, j-i)
			copy(inner, blocks[i:j])
			for k := range inner {
				inner[k].quote = false
			}
			sb.WriteString("<blockquote>")
			writeBlocks(sb, inner)
			sb.WriteString("</blockquote>")
			i = j
			continue
		}
		if kind := blocks[i].list; kind != listNone {
			j := i
			for j < len(blocks) && !blocks[j].quote && blocks[j].list == kind {
				j++
			}
			if kind == listBullet {
				sb.WriteString(`<ul class="` + classBulletList + `">`)
			} else {
				sb.WriteString(`<ol class="` + classOrderedList + `">`)
			}
			for _, b := range blocks[i:j] {
				sb.WriteString("<li>")
				writeBlock(sb, b)
				sb.WriteString("</li>")
			}
			if kind == listBullet {
				sb.WriteString("</ul>")
			} else {
				sb.WriteString("</ol>")
			}
			i = j
			continue
		}
		writeBlock(sb, blocks[i])
		i++
	}
}

func writeBlock(sb *strings.Builder, b block) {
	style := ""
	if b.align != "" && b.alignable() && b.align != "left" {
		style = ` style="text-align: ` + string(b.align) + `"`
	}
	switch b.kind {
	case kindRule:
		sb.WriteString("<hr>")
	case kindCode:
		sb.WriteString("<pre><code>")
		for _, c := range b.cells {
			sb.WriteString(html.EscapeString(string(c.r)))
		}
		sb.WriteString("</code></pre>")
	case kindHeading:
		tag := "h" + strconv.Itoa(b.level)
		sb.WriteString("<" + tag + style + ">")
		writeInline(sb, b.cells)
		sb.WriteString("</" + tag + ">")
	default:
		sb.WriteString("<p" + style + ">")
		writeInline(sb, b.cells)
		sb.WriteString("</p>")
	}
}

type run struct {
	marks markSet
	href  string
	src   string
	text  []rune
}

// runs groups cells with identical styling. Every image is its own run.
func runs(cells []cell) []run {
	var out []run
	for _, c := range cells {
		if n := len(out); n > 0 && !c.isImage() && out[n-1].src == "" &&
			out[n-1].marks == c.marks && out[n-1].href == c.href {
			out[n-1].text = append(out[n-1].text, c.r)
			continue
		}
		out = append(out, run{marks: c.marks, href: c.href, src: c.src, text: []rune{c.r}})
	}
	return out
}

var markTags = []struct {
	bit  markSet
	open string
	tag  string
}{
	{markBold, "<strong>", "strong"},
	{markItalic, "<em>", "em"},
	{markUnderline, `<u class="` + classUnderline + `">`, "u"},
	{markHighlight, "<mark>", "mark"},
}

func writeInline(sb *strings.Builder, cells []cell) {
	for _, r := range runs(cells) {
		if r.href != "" {
			sb.WriteString(`<a target="_blank" rel="noopener noreferrer" class="` + classLink + `" href="` + html.EscapeString(r.href) + `">`)
		}
		for _, m := range markTags {
			if r.marks&m.bit != 0 {
				sb.WriteString(m.open)
			}
		}
		if r.src != "" {
			sb.WriteString(`<img class="` + classImage + `" src="` + html.EscapeString(r.src) + `">`)
		} else {
			sb.WriteString(html.EscapeString(string(r.text)))
		}
		for i := len(markTags) - 1; i >= 0; i-- {
			if r.marks&markTags[i].bit != 0 {
				sb.WriteString("</" + markTags[i].tag + ">")
			}
		}
		if r.href != "" {
			sb.WriteString("</a>")
		}
	}
}
