// Package effects maps a preference record onto the document. Every apply
// function is idempotent: it sets the document to the state the record
// describes rather than toggling, so replaying the same record is safe.
package effects

import (
	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

// Root class names toggled by the boolean effects.
const (
	ClassSpacing        = "a11y-spacing"
	ClassDyslexiaFont   = "a11y-dyslexia-font"
	ClassHighlightLinks = "a11y-highlight-links"
	ClassBigCursor      = "a11y-big-cursor"
)

// AttrContrast is the root attribute carrying the active contrast mode.
const AttrContrast = "data-contrast"

// Applier writes preference effects onto one document.
type Applier struct {
	doc dom.Document
}

// NewApplier creates an applier bound to doc.
func NewApplier(doc dom.Document) *Applier {
	return &Applier{doc: doc}
}

// ApplyFontScale sets the root font multiplier: each step is 10%, so
// scale -2..2 maps to 0.8..1.2.
func (a *Applier) ApplyFontScale(scale int) {
	a.doc.SetRootFontScale(1.0 + 0.1*float64(scale))
}

// ApplyContrast stamps the mode name on the root element. The attribute is
// always present, ContrastNormal included, so stylesheets select on a single
// attribute rather than on its absence.
func (a *Applier) ApplyContrast(c prefs.Contrast) {
	a.doc.SetRootAttribute(AttrContrast, c.String())
}

// ApplySpacing sets the wide text spacing class.
func (a *Applier) ApplySpacing(on bool) {
	a.doc.ToggleRootClass(ClassSpacing, on)
}

// ApplyDyslexiaFont sets the dyslexia-friendly font class.
func (a *Applier) ApplyDyslexiaFont(on bool) {
	a.doc.ToggleRootClass(ClassDyslexiaFont, on)
}

// ApplyHighlightLinks sets the link highlighting class.
func (a *Applier) ApplyHighlightLinks(on bool) {
	a.doc.ToggleRootClass(ClassHighlightLinks, on)
}

// ApplyBigCursor sets the enlarged cursor class.
func (a *Applier) ApplyBigCursor(on bool) {
	a.doc.ToggleRootClass(ClassBigCursor, on)
}

// ApplyAll replays the whole record onto the document. Used on startup and
// after a reset; the per-field appliers cover single-action dispatches.
func (a *Applier) ApplyAll(r prefs.Record) {
	a.ApplyFontScale(r.FontScale)
	a.ApplyContrast(r.Contrast)
	a.ApplySpacing(r.Spacing)
	a.ApplyDyslexiaFont(r.DyslexiaFont)
	a.ApplyHighlightLinks(r.HighlightLinks)
	a.ApplyBigCursor(r.BigCursor)
}
