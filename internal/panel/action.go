package panel

import "github.com/webshoplabs/accesspanel/internal/prefs"

// ActionKind identifies a panel action.
type ActionKind int

const (
	// ActionNone is the zero action; dispatching it does nothing.
	ActionNone ActionKind = iota
	// ActionToggleSpacing flips the text spacing preference.
	ActionToggleSpacing
	// ActionToggleDyslexiaFont flips the dyslexia-friendly font preference.
	ActionToggleDyslexiaFont
	// ActionToggleHighlightLinks flips the link highlighting preference.
	ActionToggleHighlightLinks
	// ActionToggleBigCursor flips the large cursor preference.
	ActionToggleBigCursor
	// ActionSetContrast selects a contrast mode.
	ActionSetContrast
	// ActionFontIncrease steps the font scale up one notch.
	ActionFontIncrease
	// ActionFontDecrease steps the font scale down one notch.
	ActionFontDecrease
	// ActionToggleReader flips the read-aloud preference.
	ActionToggleReader
	// ActionReset restores every preference to its default.
	ActionReset
	// ActionOpenPanel opens the settings panel.
	ActionOpenPanel
	// ActionClosePanel closes the settings panel.
	ActionClosePanel
	// ActionTogglePanel opens a closed panel and closes an open one.
	ActionTogglePanel
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionToggleSpacing:
		return "toggle-spacing"
	case ActionToggleDyslexiaFont:
		return "toggle-dyslexia-font"
	case ActionToggleHighlightLinks:
		return "toggle-highlight-links"
	case ActionToggleBigCursor:
		return "toggle-big-cursor"
	case ActionSetContrast:
		return "set-contrast"
	case ActionFontIncrease:
		return "font-increase"
	case ActionFontDecrease:
		return "font-decrease"
	case ActionToggleReader:
		return "toggle-reader"
	case ActionReset:
		return "reset"
	case ActionOpenPanel:
		return "open-panel"
	case ActionClosePanel:
		return "close-panel"
	case ActionTogglePanel:
		return "toggle-panel"
	default:
		return "none"
	}
}

// Action is one dispatchable panel action. Only ActionSetContrast carries a
// value.
type Action struct {
	Kind     ActionKind
	Contrast prefs.Contrast
}

// ToggleSpacing returns the spacing toggle action.
func ToggleSpacing() Action { return Action{Kind: ActionToggleSpacing} }

// ToggleDyslexiaFont returns the dyslexia font toggle action.
func ToggleDyslexiaFont() Action { return Action{Kind: ActionToggleDyslexiaFont} }

// ToggleHighlightLinks returns the link highlighting toggle action.
func ToggleHighlightLinks() Action { return Action{Kind: ActionToggleHighlightLinks} }

// ToggleBigCursor returns the large cursor toggle action.
func ToggleBigCursor() Action { return Action{Kind: ActionToggleBigCursor} }

// SetContrast returns a contrast selection action.
func SetContrast(c prefs.Contrast) Action {
	return Action{Kind: ActionSetContrast, Contrast: c}
}

// FontIncrease returns the font step-up action.
func FontIncrease() Action { return Action{Kind: ActionFontIncrease} }

// FontDecrease returns the font step-down action.
func FontDecrease() Action { return Action{Kind: ActionFontDecrease} }

// ToggleReader returns the read-aloud toggle action.
func ToggleReader() Action { return Action{Kind: ActionToggleReader} }

// Reset returns the reset action.
func Reset() Action { return Action{Kind: ActionReset} }

// OpenPanel returns the open action.
func OpenPanel() Action { return Action{Kind: ActionOpenPanel} }

// ClosePanel returns the close action.
func ClosePanel() Action { return Action{Kind: ActionClosePanel} }

// TogglePanel returns the open/close toggle action.
func TogglePanel() Action { return Action{Kind: ActionTogglePanel} }
