// Package dom provides the document contract consumed by the accessibility
// panel core: a typed node tree, a Document interface covering the handful of
// operations the panel, effect applier, narrator and announcer need, and an
// in-memory Page implementation used by the demo UI and by tests.
//
// The package deliberately models only what the core requires. Zero-or-one
// elements may match any id; absence is never an error.
package dom

import "strings"

// Node is a single element in the document tree.
type Node struct {
	Tag      string
	ID       string
	Level    int // heading level, only meaningful for h1..h6
	Text     string
	Attrs    map[string]string
	Classes  []string
	Children []*Node
	Hidden   bool
	Disabled bool

	parent *Node
}

// Mod mutates a node during construction.
type Mod func(*Node)

// Element builds a node with the given tag and modifiers.
func Element(tag string, mods ...Mod) *Node {
	n := &Node{Tag: tag}
	for _, mod := range mods {
		mod(n)
	}
	return n
}

// WithID sets the node id.
func WithID(id string) Mod {
	return func(n *Node) { n.ID = id }
}

// WithText sets the node's own text content.
func WithText(text string) Mod {
	return func(n *Node) { n.Text = text }
}

// WithLevel sets the heading level.
func WithLevel(level int) Mod {
	return func(n *Node) { n.Level = level }
}

// WithAttr sets a single attribute.
func WithAttr(name, value string) Mod {
	return func(n *Node) { n.SetAttr(name, value) }
}

// WithClass adds classes to the node.
func WithClass(classes ...string) Mod {
	return func(n *Node) {
		for _, c := range classes {
			n.ToggleClass(c, true)
		}
	}
}

// WithChildren appends child nodes.
func WithChildren(children ...*Node) Mod {
	return func(n *Node) {
		for _, c := range children {
			n.AppendChild(c)
		}
	}
}

// WithHidden sets the hidden flag.
func WithHidden(hidden bool) Mod {
	return func(n *Node) { n.Hidden = hidden }
}

// WithDisabled sets the disabled flag.
func WithDisabled(disabled bool) Mod {
	return func(n *Node) { n.Disabled = disabled }
}

// Attr returns the value of an attribute, or "" if unset.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// SetAttr sets an attribute value.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.Attrs, name)
}

// HasClass reports whether the node carries the given class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ToggleClass adds or removes a class. Adding an existing class or removing
// an absent one is a no-op, so repeated application is idempotent.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		if !n.HasClass(class) {
			n.Classes = append(n.Classes, class)
		}
		return
	}
	for i, c := range n.Classes {
		if c == class {
			n.Classes = append(n.Classes[:i], n.Classes[i+1:]...)
			return
		}
	}
}

// AppendChild attaches a child node.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches a direct child by identity. Returns true if removed.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the node's parent, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// TextContent returns the node's own text plus all descendant text,
// whitespace-trimmed and joined with single spaces.
func (n *Node) TextContent() string {
	var parts []string
	n.walk(func(d *Node) bool {
		if t := strings.TrimSpace(d.Text); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Find returns the first node in the subtree (including n itself, in document
// order) matching the predicate, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.walk(func(d *Node) bool {
		if found == nil && pred(d) {
			found = d
		}
		return found == nil
	})
	return found
}

// ByID returns the descendant (or n itself) with the given id, or nil.
func (n *Node) ByID(id string) *Node {
	if id == "" {
		return nil
	}
	return n.Find(func(d *Node) bool { return d.ID == id })
}

// Focusable reports whether a node can receive focus.
func (n *Node) Focusable() bool {
	if n.Hidden || n.Disabled {
		return false
	}
	switch n.Tag {
	case "a", "button", "input", "select", "textarea":
		return true
	}
	return n.Attr("tabindex") != ""
}

// walk visits the subtree in document order. The visitor returns false to
// stop the traversal.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}
