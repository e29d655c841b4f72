package memdoc

import (
	"strings"
	"testing"
	"time"

	"inkwell/internal/document"
	"inkwell/internal/linksafety"
)

func newTestDoc(t *testing.T, content string) *Doc {
	t.Helper()
	d := New(Options{Gate: linksafety.DefaultGate()})
	if err := d.Load(content); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func TestLoad_DefaultContentRoundTrips(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	if got := d.HTML(); got != DefaultContent {
		t.Fatalf("HTML()=%q, want %q", got, DefaultContent)
	}
	if d.CanUndo() {
		t.Fatalf("expected Load to leave no history")
	}
}

func TestLoad_EmptyDocumentIsOneParagraph(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, "")
	if got := d.HTML(); got != "<p></p>" {
		t.Fatalf("HTML()=%q, want <p></p>", got)
	}
}

func TestLoad_StructureRoundTrips(t *testing.T) {
	t.Parallel()

	in := `<h2>Title</h2>` +
		`<p style="text-align: center"><strong>bold</strong> and <em>it</em></p>` +
		`<blockquote><p>quoted</p></blockquote>` +
		`<ul class="list-disc ml-3"><li><p>one</p></li><li><p>two</p></li></ul>` +
		`<ol class="list-decimal ml-3"><li><p>first</p></li></ol>` +
		`<hr>` +
		`<pre><code>x &lt; y</code></pre>`
	d := newTestDoc(t, in)
	if got := d.HTML(); got != in {
		t.Fatalf("round trip mismatch\n got: %s\nwant: %s", got, in)
	}
}

func TestLoad_DropsRejectedLinksAndImages(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, `<p><a href="javascript:alert(1)">x</a> <a href="https://example-phishing.com">y</a> <img src="javascript:1"><img src="data:image/png;base64,AAAA"></p>`)
	got := d.HTML()
	if strings.Contains(got, "<a ") {
		t.Fatalf("expected rejected links to be dropped; got %s", got)
	}
	if strings.Contains(got, "javascript") {
		t.Fatalf("expected javascript image to be dropped; got %s", got)
	}
	if !strings.Contains(got, `<img class="w-[400px]" src="data:image/png;base64,AAAA">`) {
		t.Fatalf("expected data image to survive; got %s", got)
	}
}

func TestChain_ToggleBoldOverSelectionAndUndo(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.SelectAll()

	if !d.Chain().Focus().ToggleBold().Run() {
		t.Fatalf("expected bold chain to run")
	}
	if got, want := d.HTML(), "<p><strong>Hello World!</strong></p>"; got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}
	if !d.Focused() {
		t.Fatalf("expected focus step to focus the editor")
	}
	if !d.IsActive(document.Is(document.Bold)) {
		t.Fatalf("expected bold to be active over the selection")
	}

	if !d.Chain().Focus().Undo().Run() {
		t.Fatalf("expected undo to run")
	}
	if got := d.HTML(); got != DefaultContent {
		t.Fatalf("after undo HTML()=%q, want %q", got, DefaultContent)
	}
	if !d.Chain().Redo().Run() {
		t.Fatalf("expected redo to run")
	}
	if got := d.HTML(); got != "<p><strong>Hello World!</strong></p>" {
		t.Fatalf("after redo HTML()=%q", got)
	}
	if d.Chain().Redo().Run() {
		t.Fatalf("expected redo with empty stack to fail")
	}
}

func TestChain_IsAtomic(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.SelectAll()
	if d.Chain().ToggleBold().SetLink("ftp://example.com").Run() {
		t.Fatalf("expected chain with a rejected link to fail")
	}
	if got := d.HTML(); got != DefaultContent {
		t.Fatalf("expected no partial application; got %q", got)
	}
}

func TestChain_HeadingAlignmentAndLists(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.Chain().Focus().ToggleHeading(1).Run()
	if !d.IsActive(document.IsWith(document.Heading, document.Attrs{document.AttrLevel: 1})) {
		t.Fatalf("expected heading 1 to be active")
	}
	if d.IsActive(document.IsWith(document.Heading, document.Attrs{document.AttrLevel: 2})) {
		t.Fatalf("expected heading 2 to be inactive")
	}
	d.Chain().Focus().ToggleHeading(1).Run()
	if d.IsActive(document.Is(document.Heading)) {
		t.Fatalf("expected second toggle to clear the heading")
	}

	if !d.IsActive(document.IsAttrs(document.Attrs{document.AttrTextAlign: "left"})) {
		t.Fatalf("expected default alignment to be left")
	}
	d.Chain().Focus().SetTextAlign(document.AlignRight).Run()
	if !d.IsActive(document.IsAttrs(document.Attrs{document.AttrTextAlign: "right"})) {
		t.Fatalf("expected right alignment to be active")
	}
	if d.IsActive(document.IsAttrs(document.Attrs{document.AttrTextAlign: "left"})) {
		t.Fatalf("expected alignments to be mutually exclusive")
	}

	d.Chain().Focus().ToggleBulletList().Run()
	d.Chain().Focus().ToggleOrderedList().Run()
	if d.IsActive(document.Is(document.BulletList)) || !d.IsActive(document.Is(document.OrderedList)) {
		t.Fatalf("expected ordered list to replace bullet list")
	}
	want := `<ol class="list-decimal ml-3"><li><p style="text-align: right">Hello World!</p></li></ol>`
	if got := d.HTML(); got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}
}

func TestChain_SetLinkConsultsGate(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.Select(Pos{0, 0}, Pos{0, 5})

	for _, href := range []string{"https://malicious-site.net", "mailto:a@example.com", "javascript:alert(1)"} {
		if d.Chain().Focus().ExtendMarkRange(document.Link).SetLink(href).Run() {
			t.Fatalf("expected SetLink(%q) to be refused", href)
		}
	}
	if !d.Chain().Focus().ExtendMarkRange(document.Link).SetLink("https://example.com").Run() {
		t.Fatalf("expected allowed link to be set")
	}
	want := `<p><a target="_blank" rel="noopener noreferrer" class="text-blue-600 underline hover:text-blue-700" href="https://example.com">Hello</a> World!</p>`
	if got := d.HTML(); got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}

	// A collapsed cursor inside the link extends to the whole link.
	d.Select(Pos{0, 2}, Pos{0, 2})
	if got := d.Attributes(document.Link).String(document.AttrHref); got != "https://example.com" {
		t.Fatalf("Attributes(link).href=%q", got)
	}
	if !d.Chain().Focus().ExtendMarkRange(document.Link).UnsetLink().Run() {
		t.Fatalf("expected unset to run")
	}
	if got := d.HTML(); got != DefaultContent {
		t.Fatalf("after unset HTML()=%q", got)
	}
}

func TestChain_HorizontalRuleAndImage(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.Select(Pos{0, 5}, Pos{0, 5})
	if !d.Chain().Focus().SetHorizontalRule().Run() {
		t.Fatalf("expected rule insertion")
	}
	if got, want := d.HTML(), "<p>Hello</p><hr><p> World!</p>"; got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}

	if d.Chain().SetImage("javascript:alert(1)").Run() {
		t.Fatalf("expected non-image source to be refused")
	}
	if !d.Chain().Focus().SetImage("data:image/png;base64,AAAA").Run() {
		t.Fatalf("expected image insertion")
	}
	if got, want := d.HTML(), `<p>Hello</p><hr><p><img class="w-[400px]" src="data:image/png;base64,AAAA"> World!</p>`; got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}
}

func TestInsertText_AutolinkUsesBothGates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typed string
		link  bool
	}{
		{"trusted.example ", true},
		{"https://trusted.example/a ", true},
		{"another-no-autolink.com ", false},
		{"example-phishing.com ", false},
		{"ftp://files.example.com ", false},
		{"plainword ", false},
		{"localhost:3000 ", false},
		{"https://example.com:99999 ", false},
		{"foo_bar.example.com ", true},
	}
	for _, tt := range tests {
		d := newTestDoc(t, "")
		d.InsertText("see " + tt.typed)
		got := d.HTML()
		if has := strings.Contains(got, "<a "); has != tt.link {
			t.Errorf("typed %q: link=%v, want %v (html %s)", tt.typed, has, tt.link, got)
		}
		word := strings.TrimSpace(tt.typed)
		if a := Autolinks(linksafety.DefaultGate(), word); a != tt.link {
			t.Errorf("Autolinks(%q)=%v, want %v", word, a, tt.link)
		}
	}
	if Autolinks(nil, "trusted.example") {
		t.Errorf("Autolinks with nil gate should be false")
	}
}

func TestPaste_LinksSelectionWhenAllowed(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	d.Select(Pos{0, 6}, Pos{0, 11})
	d.Paste("example.com")
	if !strings.Contains(d.HTML(), `href="https://example.com">World</a>`) {
		t.Fatalf("expected pasted URL to link the selection; got %s", d.HTML())
	}

	d = newTestDoc(t, DefaultContent)
	d.Select(Pos{0, 6}, Pos{0, 11})
	d.Paste("https://malicious-site.net")
	got := d.HTML()
	if strings.Contains(got, "<a ") || !strings.Contains(got, "https://malicious-site.net") {
		t.Fatalf("expected rejected URL to be pasted as text; got %s", got)
	}
}

func TestHistory_GroupsTyping(t *testing.T) {
	t.Parallel()

	now := time.Unix(0, 0)
	d := New(Options{Gate: linksafety.DefaultGate(), Now: func() time.Time { return now }})

	d.InsertText("a")
	now = now.Add(100 * time.Millisecond)
	d.InsertText("b")
	now = now.Add(2 * time.Second)
	d.InsertText("c")

	d.Chain().Undo().Run()
	if got := d.HTML(); got != "<p>ab</p>" {
		t.Fatalf("after first undo HTML()=%q, want <p>ab</p>", got)
	}
	d.Chain().Undo().Run()
	if got := d.HTML(); got != "<p></p>" {
		t.Fatalf("after second undo HTML()=%q, want <p></p>", got)
	}
}

func TestHistory_Depth(t *testing.T) {
	t.Parallel()

	d := New(Options{Gate: linksafety.DefaultGate(), HistoryDepth: 2})
	d.InsertText("x")
	d.SelectAll()
	d.Chain().ToggleBold().Run()
	d.Chain().ToggleItalic().Run()
	d.Chain().ToggleUnderline().Run()

	n := 0
	for d.Chain().Undo().Run() {
		n++
	}
	if n != 2 {
		t.Fatalf("undo steps=%d, want 2", n)
	}
}

func TestEditing_SplitBackspaceAndStoredMarks(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, "")
	d.Chain().ToggleBold().Run()
	if !d.IsActive(document.Is(document.Bold)) {
		t.Fatalf("expected stored bold to be active at an empty cursor")
	}
	d.InsertText("hi")
	d.SplitBlock()
	d.InsertText("x")
	d.Backspace()
	d.Backspace()
	if got, want := d.HTML(), "<p><strong>hi</strong></p>"; got != want {
		t.Fatalf("HTML()=%q, want %q", got, want)
	}
}

func TestSelectionAndView(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, DefaultContent)
	if !d.Selection().Empty {
		t.Fatalf("expected empty selection after load")
	}
	d.Select(Pos{0, 0}, Pos{0, 5})
	if sel := d.Selection(); sel.Empty || sel.Text != "Hello" {
		t.Fatalf("Selection()=%+v", sel)
	}
	v := d.View()
	if len(v) != 1 || v[0].Cursor != 5 {
		t.Fatalf("View()=%+v", v)
	}
	if !v[0].Cells[0].Selected || v[0].Cells[5].Selected {
		t.Fatalf("expected only the first five cells to be selected")
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t, `<h1>T</h1><p><strong>b</strong> <a href="https://example.com">l</a></p><ul><li><p>a</p></li><li><p>b</p></li></ul><p><img src="data:image/png;base64,AA"></p>`)
	want := "# T\n\n**b** [l](https://example.com)\n\n- a\n- b\n\n*[embedded image]*"
	if got := d.Markdown(); got != want {
		t.Fatalf("Markdown()=%q, want %q", got, want)
	}
}
