package dom

import "testing"

// TestSetTextMissingTarget tests that writes to absent ids are silent no-ops.
func TestSetTextMissingTarget(t *testing.T) {
	p := NewPage()
	p.SetText("no-such-region", "hello")
	if len(p.Mutations()) != 0 {
		t.Errorf("mutations = %v, want none for a missing target", p.Mutations())
	}
}

// TestSetTextJournal tests that every applied text write is journaled,
// including a clear followed by identical text.
func TestSetTextJournal(t *testing.T) {
	p := NewPage()
	p.Body().AppendChild(Element("div", WithID("live")))
	p.ResetMutations()

	p.SetText("live", "")
	p.SetText("live", "Cart updated")

	muts := p.Mutations()
	if len(muts) != 2 {
		t.Fatalf("journal length = %d, want 2", len(muts))
	}
	if muts[0].Value != "" || muts[1].Value != "Cart updated" {
		t.Errorf("journal = %v, want clear then set", muts)
	}
}

// TestFocusRules tests focus movement and its guard conditions.
func TestFocusRules(t *testing.T) {
	p := NewPage()
	p.Body().AppendChild(Element("button", WithID("ok")))
	p.Body().AppendChild(Element("button", WithID("off"), WithDisabled(true)))

	p.Focus("ok")
	if p.FocusedID() != "ok" {
		t.Errorf("FocusedID() = %q, want %q", p.FocusedID(), "ok")
	}

	p.Focus("off")
	if p.FocusedID() != "ok" {
		t.Error("focus moved to a disabled element")
	}

	p.Focus("gone")
	if p.FocusedID() != "ok" {
		t.Error("focus moved to a missing element")
	}
}

// TestUnmountClearsNestedFocus tests that removing a fragment drops focus
// held inside it.
func TestUnmountClearsNestedFocus(t *testing.T) {
	p := NewPage()
	panel := Element("div", WithID("panel"), WithChildren(Element("button", WithID("inner"))))
	p.Mount(panel)

	p.Focus("inner")
	p.Unmount("panel")

	if p.FocusedID() != "" {
		t.Errorf("FocusedID() = %q after unmount, want empty", p.FocusedID())
	}
	if p.ElementByID("inner") != nil {
		t.Error("unmounted subtree still reachable by id")
	}
}

// TestListeners tests registration, dispatch and removal.
func TestListeners(t *testing.T) {
	p := NewPage()
	p.Body().AppendChild(Element("a", WithID("lnk"), WithText("Deals")))

	var got []string
	remove := p.AddListener(EventFocus, func(n *Node) {
		got = append(got, n.ID)
	})

	p.Focus("lnk")
	if len(got) != 1 || got[0] != "lnk" {
		t.Fatalf("focus dispatch got %v, want [lnk]", got)
	}

	remove()
	remove() // removing twice must be safe
	if p.ListenerCount(EventFocus) != 0 {
		t.Errorf("ListenerCount = %d after removal, want 0", p.ListenerCount(EventFocus))
	}

	p.Focus("lnk")
	if len(got) != 1 {
		t.Error("listener fired after removal")
	}
}

// TestHoverDispatch tests hover events reach hover listeners only.
func TestHoverDispatch(t *testing.T) {
	p := NewPage()
	p.Body().AppendChild(Element("img", WithID("pic"), WithAttr("alt", "Red shoe")))

	var focus, hover int
	p.AddListener(EventFocus, func(*Node) { focus++ })
	p.AddListener(EventHover, func(*Node) { hover++ })

	p.Hover("pic")
	if hover != 1 || focus != 0 {
		t.Errorf("hover/focus counts = %d/%d, want 1/0", hover, focus)
	}
}

// TestLabelFor tests associated label lookup.
func TestLabelFor(t *testing.T) {
	p := NewPage()
	p.Body().AppendChild(Element("label", WithAttr("for", "email"), WithText("Email address")))
	p.Body().AppendChild(Element("input", WithID("email")))

	lbl := p.LabelFor("email")
	if lbl == nil || lbl.Text != "Email address" {
		t.Errorf("LabelFor(email) = %v, want the email label", lbl)
	}
	if p.LabelFor("phone") != nil {
		t.Error("LabelFor(phone) returned a label for an unlabelled control")
	}
}
