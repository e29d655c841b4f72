package memdoc

import (
	"strconv"
	"strings"
)

// Markdown renders a lossy markdown view of the document for previews.
// Underline and highlight have no markdown form and are dropped; embedded
// images are summarized instead of inlining their payload.
func (d *Doc) Markdown() string {
	var out []string
	number := 0
	for i, b := range d.st.blocks {
		if b.list == listOrdered {
			number++
		} else {
			number = 0
		}
		line := markdownBlock(b, number)
		if b.quote {
			line = quoteLines(line)
		}
		sep := "\n\n"
		if i > 0 && b.list != listNone && d.st.blocks[i-1].list == b.list && d.st.blocks[i-1].quote == b.quote {
			sep = "\n"
		}
		if i == 0 {
			sep = ""
		}
		out = append(out, sep+line)
	}
	return strings.Join(out, "")
}

func markdownBlock(b block, number int) string {
	var prefix string
	switch b.list {
	case listBullet:
		prefix = "- "
	case listOrdered:
		prefix = strconv.Itoa(number) + ". "
	}
	switch b.kind {
	case kindRule:
		return "---"
	case kindCode:
		var sb strings.Builder
		for _, c := range b.cells {
			sb.WriteRune(c.r)
		}
		return prefix + "```\n" + sb.String() + "\n```"
	case kindHeading:
		return prefix + strings.Repeat("#", b.level) + " " + markdownInline(b.cells)
	}
	return prefix + markdownInline(b.cells)
}

func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = "> " + ln
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
	"#", `\#`,
)

func markdownInline(cells []cell) string {
	var sb strings.Builder
	for _, r := range runs(cells) {
		var text string
		if r.src != "" {
			text = "![image](" + r.src + ")"
			if strings.HasPrefix(strings.ToLower(r.src), "data:") {
				text = "*[embedded image]*"
			}
		} else {
			text = markdownEscaper.Replace(string(r.text))
		}
		if r.marks&markItalic != 0 {
			text = "_" + text + "_"
		}
		if r.marks&markBold != 0 {
			text = "**" + text + "**"
		}
		if r.href != "" {
			text = "[" + text + "](" + r.href + ")"
		}
		sb.WriteString(text)
	}
	return sb.String()
}
