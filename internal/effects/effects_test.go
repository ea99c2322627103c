package effects

import (
	"testing"

	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

// TestApplyFontScale verifies the step-to-multiplier mapping.
func TestApplyFontScale(t *testing.T) {
	tests := []struct {
		scale int
		want  float64
	}{
		{-2, 0.8},
		{-1, 0.9},
		{0, 1.0},
		{1, 1.1},
		{2, 1.2},
	}

	for _, tt := range tests {
		page := dom.NewPage()
		NewApplier(page).ApplyFontScale(tt.scale)

		got := page.RootFontScale()
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("scale %d: got multiplier %v, want %v", tt.scale, got, tt.want)
		}
	}
}

// TestApplyContrast verifies the root attribute carries the mode name for
// every mode, normal included.
func TestApplyContrast(t *testing.T) {
	for _, c := range prefs.Contrasts() {
		page := dom.NewPage()
		NewApplier(page).ApplyContrast(c)

		if got := page.RootAttribute(AttrContrast); got != c.String() {
			t.Errorf("contrast %v: root attribute = %q, want %q", c, got, c.String())
		}
	}
}

// TestContrastExclusive verifies switching modes replaces the attribute
// rather than accumulating.
func TestContrastExclusive(t *testing.T) {
	page := dom.NewPage()
	applier := NewApplier(page)

	applier.ApplyContrast(prefs.ContrastDark)
	applier.ApplyContrast(prefs.ContrastHigh)

	if got := page.RootAttribute(AttrContrast); got != "high" {
		t.Errorf("root attribute = %q, want %q", got, "high")
	}
}

// TestBooleanEffects verifies each boolean effect controls exactly its own
// class, idempotently.
func TestBooleanEffects(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Applier, bool)
		class string
	}{
		{"spacing", (*Applier).ApplySpacing, ClassSpacing},
		{"dyslexia font", (*Applier).ApplyDyslexiaFont, ClassDyslexiaFont},
		{"highlight links", (*Applier).ApplyHighlightLinks, ClassHighlightLinks},
		{"big cursor", (*Applier).ApplyBigCursor, ClassBigCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := dom.NewPage()
			applier := NewApplier(page)

			tt.apply(applier, true)
			tt.apply(applier, true)
			if !page.HasRootClass(tt.class) {
				t.Fatalf("class %q missing after double apply", tt.class)
			}

			tt.apply(applier, false)
			tt.apply(applier, false)
			if page.HasRootClass(tt.class) {
				t.Fatalf("class %q present after double clear", tt.class)
			}
		})
	}
}

// TestEffectsOrthogonal verifies one effect never disturbs another's
// document state.
func TestEffectsOrthogonal(t *testing.T) {
	page := dom.NewPage()
	applier := NewApplier(page)

	applier.ApplyAll(prefs.Record{
		FontScale:    2,
		Contrast:     prefs.ContrastInvert,
		Spacing:      true,
		DyslexiaFont: true,
	})

	applier.ApplySpacing(false)

	if !page.HasRootClass(ClassDyslexiaFont) {
		t.Error("dyslexia font class lost after spacing change")
	}
	if got := page.RootAttribute(AttrContrast); got != "invert" {
		t.Errorf("contrast attribute = %q after spacing change", got)
	}
	if got := page.RootFontScale(); got != 1.2 {
		t.Errorf("font multiplier = %v after spacing change", got)
	}
}

// TestApplyAllDefaults verifies replaying the default record leaves a
// neutral document.
func TestApplyAllDefaults(t *testing.T) {
	page := dom.NewPage()
	NewApplier(page).ApplyAll(prefs.Default())

	if got := page.RootFontScale(); got != 1.0 {
		t.Errorf("font multiplier = %v, want 1.0", got)
	}
	if got := page.RootAttribute(AttrContrast); got != "normal" {
		t.Errorf("contrast attribute = %q, want %q", got, "normal")
	}
	for _, class := range []string{ClassSpacing, ClassDyslexiaFont, ClassHighlightLinks, ClassBigCursor} {
		if page.HasRootClass(class) {
			t.Errorf("class %q set for default record", class)
		}
	}
}
