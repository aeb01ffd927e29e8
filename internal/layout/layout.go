// Package layout assigns coordinate windows on the shared circular axis and
// remembers which categories bound each block of the ring.
package layout

import "fmt"

// ArticlesBlock is the reserved block name of the article axis.
const ArticlesBlock = "articles"

// Window is an inclusive coordinate range on every article segment.
type Window struct {
	Start int
	End   int
}

func (w Window) String() string {
	return fmt.Sprintf("%d-%d", w.Start, w.End)
}

// Span names the first and last segment of a block that ended up with a
// nonzero size. The zero value is an empty span.
type Span struct {
	First string
	Last  string
}

// Empty reports whether the block produced no visible segment.
func (s Span) Empty() bool {
	return s.First == "" || s.Last == ""
}

func (s Span) String() string {
	if s.Empty() {
		return "-"
	}
	return s.First + ".." + s.Last
}

// Block is one entry in the ring of spacing rules.
type Block struct {
	Name string
	Span Span
}

// Extent returns the coordinate length consumed by the article window plus
// one window per track.
func Extent(width, tracks int) int {
	return width * (tracks + 1)
}

// Tracker hands out sequential, non-overlapping windows of a fixed width and
// records the spans of the blocks built inside them. The article window is
// reserved when the tracker is created.
type Tracker struct {
	width    int
	cursor   int
	articles Window
	spans    map[string]Span
	placed   map[string]struct{}
	order    []string
}

// NewTracker creates a tracker and reserves the article window.
func NewTracker(width int) (*Tracker, error) {
	if width <= 0 {
		return nil, fmt.Errorf("window width must be positive, got %d", width)
	}
	t := &Tracker{width: width, spans: make(map[string]Span), placed: make(map[string]struct{})}
	t.articles = t.next()
	return t, nil
}

func (t *Tracker) next() Window {
	w := Window{Start: t.cursor, End: t.cursor + t.width - 1}
	t.cursor += t.width
	return w
}

// ArticleWindow returns the window reserved for the article axis.
func (t *Tracker) ArticleWindow() Window { return t.articles }

// Cursor returns the first unassigned coordinate.
func (t *Tracker) Cursor() int { return t.cursor }

// SetArticleSpan records the span of the article axis. An empty span leaves
// the article block out of the ring.
func (t *Tracker) SetArticleSpan(span Span) {
	if span.Empty() {
		delete(t.spans, ArticlesBlock)
		return
	}
	t.spans[ArticlesBlock] = span
}

// Place assigns the next window to the named block, runs build inside it and
// records the returned span when it is not empty. Every call consumes a
// window, so positions follow call order and not the data.
func (t *Tracker) Place(name string, build func(Window) (Span, error)) (Window, Span, error) {
	if name == "" || name == ArticlesBlock {
		return Window{}, Span{}, fmt.Errorf("invalid block name %q", name)
	}
	if _, dup := t.placed[name]; dup {
		return Window{}, Span{}, fmt.Errorf("block %q already placed", name)
	}
	t.placed[name] = struct{}{}
	w := t.next()
	span, err := build(w)
	if err != nil {
		return w, Span{}, err
	}
	if !span.Empty() {
		t.spans[name] = span
		t.order = append(t.order, name)
	}
	return w, span, nil
}

// Span returns the recorded span for a block.
func (t *Tracker) Span(name string) (Span, bool) {
	s, ok := t.spans[name]
	return s, ok
}

// Blocks returns the non-empty blocks in ring order: the article axis first,
// then tracks in placement order.
func (t *Tracker) Blocks() []Block {
	blocks := make([]Block, 0, len(t.order)+1)
	if s, ok := t.spans[ArticlesBlock]; ok {
		blocks = append(blocks, Block{Name: ArticlesBlock, Span: s})
	}
	for _, name := range t.order {
		blocks = append(blocks, Block{Name: name, Span: t.spans[name]})
	}
	return blocks
}

// Active returns the names of placed tracks with a non-empty span.
func (t *Tracker) Active() []string {
	return append([]string(nil), t.order...)
}
