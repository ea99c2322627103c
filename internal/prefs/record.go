// Package prefs holds the accessibility preference record and its
// persistence layer. The record is the single mutable entity of the panel:
// it is loaded once at startup by merging whatever partial state storage
// recovers with the defaults, mutated only by the panel dispatcher, and
// written back whole on every change.
package prefs

import "encoding/json"

// Font scale bounds. Each step changes the root font size by 10%.
const (
	FontScaleMin = -2
	FontScaleMax = 2
)

// Contrast is the discrete contrast mode. Exactly one mode is ever active.
type Contrast int

const (
	// ContrastNormal is the page's own palette.
	ContrastNormal Contrast = iota
	// ContrastHigh boosts foreground/background separation.
	ContrastHigh
	// ContrastDark switches to a dark palette.
	ContrastDark
	// ContrastInvert inverts the page colors.
	ContrastInvert
)

// String returns the wire name of the contrast mode.
func (c Contrast) String() string {
	switch c {
	case ContrastHigh:
		return "high"
	case ContrastDark:
		return "dark"
	case ContrastInvert:
		return "invert"
	default:
		return "normal"
	}
}

// ParseContrast maps a wire name to a contrast mode. Unknown names resolve
// to ContrastNormal; persisted garbage must never poison the record.
func ParseContrast(s string) Contrast {
	switch s {
	case "high":
		return ContrastHigh
	case "dark":
		return ContrastDark
	case "invert":
		return ContrastInvert
	default:
		return ContrastNormal
	}
}

// Contrasts lists all modes in display order.
func Contrasts() []Contrast {
	return []Contrast{ContrastNormal, ContrastHigh, ContrastDark, ContrastInvert}
}

// MarshalJSON encodes the mode as its wire name.
func (c Contrast) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a wire name, tolerating unknown values.
func (c *Contrast) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = ContrastNormal
		return nil
	}
	*c = ParseContrast(s)
	return nil
}

// Record is the full set of user-configurable accessibility settings,
// persisted as one unit.
type Record struct {
	FontScale      int      `json:"fontScale"`
	Contrast       Contrast `json:"contrast"`
	Spacing        bool     `json:"spacing"`
	DyslexiaFont   bool     `json:"dyslexiaFont"`
	HighlightLinks bool     `json:"highlightLinks"`
	BigCursor      bool     `json:"bigCursor"`
	ReaderEnabled  bool     `json:"readerEnabled"`
}

// Default returns the default record: everything off, normal contrast,
// 100% font size.
func Default() Record {
	return Record{}
}

// Clamped returns a copy with FontScale forced into [FontScaleMin,
// FontScaleMax].
func (r Record) Clamped() Record {
	if r.FontScale < FontScaleMin {
		r.FontScale = FontScaleMin
	}
	if r.FontScale > FontScaleMax {
		r.FontScale = FontScaleMax
	}
	return r
}

// FontPercent returns the effective root font size as a percentage.
func (r Record) FontPercent() int {
	return 100 + r.FontScale*10
}

// partialRecord mirrors Record with pointer fields so a stored record that
// predates newly-added fields merges cleanly: absent fields stay nil and
// resolve to their defaults. Unknown extra fields are ignored by
// encoding/json, which keeps the slot forward-compatible.
type partialRecord struct {
	FontScale      *int      `json:"fontScale"`
	Contrast       *Contrast `json:"contrast"`
	Spacing        *bool     `json:"spacing"`
	DyslexiaFont   *bool     `json:"dyslexiaFont"`
	HighlightLinks *bool     `json:"highlightLinks"`
	BigCursor      *bool     `json:"bigCursor"`
	ReaderEnabled  *bool     `json:"readerEnabled"`
}

func (p partialRecord) merge(base Record) Record {
	if p.FontScale != nil {
		base.FontScale = *p.FontScale
	}
	if p.Contrast != nil {
		base.Contrast = *p.Contrast
	}
	if p.Spacing != nil {
		base.Spacing = *p.Spacing
	}
	if p.DyslexiaFont != nil {
		base.DyslexiaFont = *p.DyslexiaFont
	}
	if p.HighlightLinks != nil {
		base.HighlightLinks = *p.HighlightLinks
	}
	if p.BigCursor != nil {
		base.BigCursor = *p.BigCursor
	}
	if p.ReaderEnabled != nil {
		base.ReaderEnabled = *p.ReaderEnabled
	}
	return base.Clamped()
}
