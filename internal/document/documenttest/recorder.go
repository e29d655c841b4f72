// Package documenttest provides a recording document.Engine for tests.
package documenttest

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"inkwell/internal/document"
)

// Recorder records every chain that is run. Answers to IsActive, Attributes
// and Selection are scripted through its exported fields.
type Recorder struct {
	mu     sync.Mutex
	chains [][]string

	// Active maps a query key (see Key) to its answer.
	Active    map[string]bool
	Attrs     map[document.Mark]document.Attrs
	Sel       document.Selection
	HTMLValue string
	// Fail makes every Run report false and record nothing.
	Fail bool
}

// New returns a Recorder with a non-empty selection.
func New() *Recorder {
	return &Recorder{
		Active: map[string]bool{},
		Attrs:  map[document.Mark]document.Attrs{},
		Sel:    document.Selection{Text: "text"},
	}
}

// Key renders a query as "name" or "name{k=v,...}" with keys sorted.
func Key(q document.Query) string {
	if len(q.Attrs) == 0 {
		return string(q.Name)
	}
	parts := make([]string, 0, len(q.Attrs))
	for k, v := range q.Attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return string(q.Name) + "{" + strings.Join(parts, ",") + "}"
}

func (r *Recorder) Chain() document.Chain { return &chain{r: r} }

func (r *Recorder) IsActive(q document.Query) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Active[Key(q)]
}

func (r *Recorder) Attributes(m document.Mark) document.Attrs {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.Attrs[m]; ok {
		return a
	}
	return document.Attrs{}
}

func (r *Recorder) HTML() string { return r.HTMLValue }

func (r *Recorder) Selection() document.Selection { return r.Sel }

// Chains returns the recorded chains in run order.
func (r *Recorder) Chains() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.chains))
	copy(out, r.chains)
	return out
}

// Calls returns every recorded chain joined with ".".
func (r *Recorder) Calls() []string {
	var out []string
	for _, c := range r.Chains() {
		out = append(out, strings.Join(c, "."))
	}
	return out
}

type chain struct {
	r     *Recorder
	steps []string
}

func (c *chain) add(step string) document.Chain {
	c.steps = append(c.steps, step)
	return c
}

func (c *chain) Focus() document.Chain              { return c.add("focus") }
func (c *chain) ToggleHeading(level int) document.Chain {
	return c.add(fmt.Sprintf("toggleHeading(%d)", level))
}
func (c *chain) ToggleBold() document.Chain        { return c.add("toggleBold") }
func (c *chain) ToggleItalic() document.Chain      { return c.add("toggleItalic") }
func (c *chain) ToggleUnderline() document.Chain   { return c.add("toggleUnderline") }
func (c *chain) ToggleCodeBlock() document.Chain   { return c.add("toggleCodeBlock") }
func (c *chain) ToggleBlockquote() document.Chain  { return c.add("toggleBlockquote") }
func (c *chain) SetHorizontalRule() document.Chain { return c.add("setHorizontalRule") }
func (c *chain) SetImage(src string) document.Chain {
	return c.add("setImage(" + src + ")")
}
func (c *chain) Undo() document.Chain { return c.add("undo") }
func (c *chain) Redo() document.Chain { return c.add("redo") }
func (c *chain) SetTextAlign(a document.Alignment) document.Chain {
	return c.add("setTextAlign(" + string(a) + ")")
}
func (c *chain) ToggleBulletList() document.Chain  { return c.add("toggleBulletList") }
func (c *chain) ToggleOrderedList() document.Chain { return c.add("toggleOrderedList") }
func (c *chain) ToggleHighlight() document.Chain   { return c.add("toggleHighlight") }
func (c *chain) ExtendMarkRange(m document.Mark) document.Chain {
	return c.add("extendMarkRange(" + string(m) + ")")
}
func (c *chain) SetLink(href string) document.Chain { return c.add("setLink(" + href + ")") }
func (c *chain) UnsetLink() document.Chain          { return c.add("unsetLink") }

func (c *chain) Run() bool {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	if c.r.Fail {
		return false
	}
	c.r.chains = append(c.r.chains, append([]string(nil), c.steps...))
	return true
}
