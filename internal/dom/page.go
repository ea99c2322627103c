package dom

import "fmt"

// Mutation is one journal entry recorded by Page. Tests use the journal to
// assert ordering properties, e.g. that a live region is cleared before it is
// set even when the final text is unchanged.
type Mutation struct {
	Op     string // "set-text", "set-attr", "toggle-class", "font-scale", "mount", "unmount", "focus"
	Target string
	Value  string
}

// Page is the in-memory Document implementation. It backs the demo UI and
// the package tests; a browser embedding would satisfy Document directly.
type Page struct {
	root      *Node
	body      *Node
	fontScale float64
	focusedID string

	listeners  map[EventKind]map[int]Listener
	nextHandle int

	journal []Mutation
}

var _ Document = (*Page)(nil)

// NewPage creates an empty page with an html root and a body.
func NewPage() *Page {
	root := Element("html")
	body := Element("body")
	root.AppendChild(body)
	return &Page{
		root:      root,
		body:      body,
		fontScale: 1.0,
		listeners: make(map[EventKind]map[int]Listener),
	}
}

// Root returns the document root element.
func (p *Page) Root() *Node { return p.root }

// Body returns the document body.
func (p *Page) Body() *Node { return p.body }

// SetRootFontScale sets the root font scale factor (1.0 = 100%).
func (p *Page) SetRootFontScale(scale float64) {
	p.fontScale = scale
	p.record("font-scale", "", fmt.Sprintf("%.2f", scale))
}

// RootFontScale returns the current root font scale factor.
func (p *Page) RootFontScale() float64 { return p.fontScale }

// SetRootAttribute sets an attribute on the document root. An empty value
// removes the attribute.
func (p *Page) SetRootAttribute(name, value string) {
	if value == "" {
		p.root.RemoveAttr(name)
	} else {
		p.root.SetAttr(name, value)
	}
	p.record("set-attr", name, value)
}

// RootAttribute returns a root attribute value, or "".
func (p *Page) RootAttribute(name string) string {
	return p.root.Attr(name)
}

// ToggleRootClass adds or removes a class on the document root.
func (p *Page) ToggleRootClass(class string, on bool) {
	p.root.ToggleClass(class, on)
	p.record("toggle-class", class, fmt.Sprintf("%t", on))
}

// HasRootClass reports whether the root carries the class.
func (p *Page) HasRootClass(class string) bool {
	return p.root.HasClass(class)
}

// ElementByID returns the element with the given id, or nil.
func (p *Page) ElementByID(id string) *Node {
	return p.root.ByID(id)
}

// SetText replaces the text of the element with the given id. Missing
// targets are skipped silently.
func (p *Page) SetText(id, text string) {
	n := p.ElementByID(id)
	if n == nil {
		return
	}
	n.Text = text
	n.Children = nil
	p.record("set-text", id, text)
}

// Mount attaches a fragment to the body.
func (p *Page) Mount(n *Node) {
	p.body.AppendChild(n)
	p.record("mount", n.ID, "")
}

// Unmount removes the element with the given id from the tree. Clears focus
// if the focused element was inside the removed fragment.
func (p *Page) Unmount(id string) {
	n := p.ElementByID(id)
	if n == nil || n.parent == nil {
		return
	}
	if p.focusedID != "" && n.ByID(p.focusedID) != nil {
		p.focusedID = ""
	}
	n.parent.RemoveChild(n)
	p.record("unmount", id, "")
}

// Focus moves focus to the element with the given id and dispatches a focus
// event to registered listeners. Hidden, disabled or missing targets are
// skipped.
func (p *Page) Focus(id string) {
	n := p.ElementByID(id)
	if n == nil || n.Hidden || n.Disabled {
		return
	}
	p.focusedID = id
	p.record("focus", id, "")
	p.dispatch(EventFocus, n)
}

// FocusedID returns the id of the focused element, or "".
func (p *Page) FocusedID() string { return p.focusedID }

// Hover dispatches a hover event for the element with the given id.
func (p *Page) Hover(id string) {
	n := p.ElementByID(id)
	if n == nil || n.Hidden {
		return
	}
	p.dispatch(EventHover, n)
}

// LabelFor returns the first label element whose "for" attribute names the
// control id, or nil.
func (p *Page) LabelFor(controlID string) *Node {
	if controlID == "" {
		return nil
	}
	return p.root.Find(func(n *Node) bool {
		return n.Tag == "label" && n.Attr("for") == controlID
	})
}

// AddListener registers an event listener and returns its remover. The
// remover is idempotent.
func (p *Page) AddListener(kind EventKind, fn Listener) func() {
	if p.listeners[kind] == nil {
		p.listeners[kind] = make(map[int]Listener)
	}
	handle := p.nextHandle
	p.nextHandle++
	p.listeners[kind][handle] = fn
	return func() {
		delete(p.listeners[kind], handle)
	}
}

// ListenerCount returns the number of registered listeners for a kind.
func (p *Page) ListenerCount(kind EventKind) int {
	return len(p.listeners[kind])
}

// Mutations returns the recorded journal.
func (p *Page) Mutations() []Mutation {
	return p.journal
}

// ResetMutations clears the journal.
func (p *Page) ResetMutations() {
	p.journal = nil
}

func (p *Page) dispatch(kind EventKind, target *Node) {
	for _, fn := range p.listeners[kind] {
		fn(target)
	}
}

func (p *Page) record(op, target, value string) {
	p.journal = append(p.journal, Mutation{Op: op, Target: target, Value: value})
}
