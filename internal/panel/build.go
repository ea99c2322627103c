package panel

import (
	"fmt"

	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

// Element ids of the two mounted fragments and their controls.
const (
	ToggleID = "a11y-toggle"
	PanelID  = "a11y-panel"

	FontDecID     = "a11y-font-dec"
	FontIncID     = "a11y-font-inc"
	FontReadoutID = "a11y-font-readout"

	SpacingCtlID        = "a11y-ctl-spacing"
	DyslexiaFontCtlID   = "a11y-ctl-dyslexia-font"
	HighlightLinksCtlID = "a11y-ctl-highlight-links"
	BigCursorCtlID      = "a11y-ctl-big-cursor"
	ReaderCtlID         = "a11y-ctl-reader"

	ResetID = "a11y-reset"
	CloseID = "a11y-close"
)

// Display names for the boolean preference toggles.
const (
	spacingName        = "Text spacing"
	dyslexiaFontName   = "Dyslexia-friendly font"
	highlightLinksName = "Highlight links"
	bigCursorName      = "Large cursor"
	readerName         = "Read aloud"
)

// contrastCtlID returns the id of one contrast mode button.
func contrastCtlID(c prefs.Contrast) string {
	return "a11y-contrast-" + c.String()
}

// contrastLabel returns the visible label of one contrast mode button.
func contrastLabel(c prefs.Contrast) string {
	switch c {
	case prefs.ContrastHigh:
		return "High contrast"
	case prefs.ContrastDark:
		return "Dark"
	case prefs.ContrastInvert:
		return "Inverted"
	default:
		return "Normal"
	}
}

// BuildToggle builds the floating affordance that opens and closes the
// panel. It starts collapsed.
func BuildToggle() *dom.Node {
	n := dom.Element("button", dom.WithID(ToggleID), dom.WithText("Accessibility"))
	n.SetAttr("aria-label", "Accessibility settings")
	n.SetAttr("aria-expanded", "false")
	n.SetAttr("aria-controls", PanelID)
	return n
}

// BuildPanel builds the settings panel for the given record. It is a pure
// function of the record, which is what makes the reset path a full rebuild
// instead of a patch. The panel starts hidden.
func BuildPanel(r prefs.Record) *dom.Node {
	r = r.Clamped()
	return dom.Element("div",
		dom.WithID(PanelID),
		dom.WithAttr("role", "dialog"),
		dom.WithAttr("aria-label", "Accessibility settings"),
		dom.WithHidden(true),
		dom.WithChildren(
			buildFontStepper(r.FontScale),
			buildContrastGroup(r.Contrast),
			buildToggleControl(SpacingCtlID, spacingName, r.Spacing),
			buildToggleControl(DyslexiaFontCtlID, dyslexiaFontName, r.DyslexiaFont),
			buildToggleControl(HighlightLinksCtlID, highlightLinksName, r.HighlightLinks),
			buildToggleControl(BigCursorCtlID, bigCursorName, r.BigCursor),
			buildToggleControl(ReaderCtlID, readerName, r.ReaderEnabled),
			dom.Element("button", dom.WithID(ResetID), dom.WithText("Reset all settings")),
			dom.Element("button", dom.WithID(CloseID), dom.WithText("Close"),
				dom.WithAttr("aria-label", "Close accessibility settings")),
		),
	)
}

func buildFontStepper(scale int) *dom.Node {
	dec := dom.Element("button", dom.WithID(FontDecID), dom.WithText("A−"),
		dom.WithAttr("aria-label", "Decrease text size"))
	inc := dom.Element("button", dom.WithID(FontIncID), dom.WithText("A+"),
		dom.WithAttr("aria-label", "Increase text size"))
	dec.Disabled = scale <= prefs.FontScaleMin
	inc.Disabled = scale >= prefs.FontScaleMax

	readout := dom.Element("span", dom.WithID(FontReadoutID),
		dom.WithText(readoutText(scale)), dom.WithAttr("aria-live", "polite"))

	return dom.Element("div", dom.WithID("a11y-font-stepper"),
		dom.WithAttr("role", "group"),
		dom.WithAttr("aria-label", "Text size"),
		dom.WithChildren(dec, readout, inc))
}

func buildContrastGroup(active prefs.Contrast) *dom.Node {
	group := dom.Element("div", dom.WithID("a11y-contrast-group"),
		dom.WithAttr("role", "group"),
		dom.WithAttr("aria-label", "Contrast"))
	for _, c := range prefs.Contrasts() {
		btn := dom.Element("button",
			dom.WithID(contrastCtlID(c)),
			dom.WithText(contrastLabel(c)),
			dom.WithAttr("aria-pressed", pressed(c == active)))
		group.AppendChild(btn)
	}
	return group
}

func buildToggleControl(id, name string, on bool) *dom.Node {
	return dom.Element("button",
		dom.WithID(id),
		dom.WithText(toggleLabel(name, on)),
		dom.WithAttr("aria-pressed", pressed(on)))
}

// readoutText formats the stepper readout: the relative step and the
// resulting percentage, e.g. "+10% (110%)".
func readoutText(scale int) string {
	if scale == 0 {
		return "100%"
	}
	return fmt.Sprintf("%+d%% (%d%%)", scale*10, 100+scale*10)
}

func toggleLabel(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

func pressed(on bool) string {
	if on {
		return "true"
	}
	return "false"
}
