package dom

import "testing"

// TestElementBuilder tests node construction with modifiers.
func TestElementBuilder(t *testing.T) {
	n := Element("button",
		WithID("close"),
		WithText("Close"),
		WithAttr("aria-pressed", "false"),
		WithClass("panel-control", "panel-close"),
	)

	if n.Tag != "button" {
		t.Errorf("Tag = %q, want %q", n.Tag, "button")
	}
	if n.ID != "close" {
		t.Errorf("ID = %q, want %q", n.ID, "close")
	}
	if n.Attr("aria-pressed") != "false" {
		t.Errorf("Attr(aria-pressed) = %q, want %q", n.Attr("aria-pressed"), "false")
	}
	if !n.HasClass("panel-control") || !n.HasClass("panel-close") {
		t.Errorf("classes = %v, want both panel-control and panel-close", n.Classes)
	}
}

// TestToggleClassIdempotent tests that repeated toggles do not duplicate or
// over-remove classes.
func TestToggleClassIdempotent(t *testing.T) {
	n := Element("div")

	n.ToggleClass("a11y-spacing", true)
	n.ToggleClass("a11y-spacing", true)
	if len(n.Classes) != 1 {
		t.Errorf("classes after double add = %v, want exactly one", n.Classes)
	}

	n.ToggleClass("a11y-spacing", false)
	n.ToggleClass("a11y-spacing", false)
	if len(n.Classes) != 0 {
		t.Errorf("classes after double remove = %v, want none", n.Classes)
	}
}

// TestTextContent tests recursive text extraction.
func TestTextContent(t *testing.T) {
	n := Element("p",
		WithChildren(
			Element("span", WithText("  Free shipping ")),
			Element("a", WithText("on all orders")),
		),
	)
	want := "Free shipping on all orders"
	if got := n.TextContent(); got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
}

// TestByID tests subtree id lookup.
func TestByID(t *testing.T) {
	inner := Element("input", WithID("qty"))
	tree := Element("form", WithChildren(Element("div", WithChildren(inner))))

	if got := tree.ByID("qty"); got != inner {
		t.Error("ByID(qty) did not return the nested node")
	}
	if got := tree.ByID("missing"); got != nil {
		t.Errorf("ByID(missing) = %v, want nil", got)
	}
	if got := tree.ByID(""); got != nil {
		t.Errorf("ByID(\"\") = %v, want nil", got)
	}
}

// TestFocusable tests focusability rules.
func TestFocusable(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"link", Element("a"), true},
		{"button", Element("button"), true},
		{"input", Element("input"), true},
		{"select", Element("select"), true},
		{"plain div", Element("div"), false},
		{"div with tabindex", Element("div", WithAttr("tabindex", "0")), true},
		{"hidden button", Element("button", WithHidden(true)), false},
		{"disabled button", Element("button", WithDisabled(true)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Focusable(); got != tt.want {
				t.Errorf("Focusable() = %v, want %v", got, tt.want)
			}
		})
	}
}
