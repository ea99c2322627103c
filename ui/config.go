package ui

// Config contains TUI-specific configuration.
type Config struct {
	GlamourMaxWidth uint
	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	EnableMouse     bool

	// Path of the markdown storefront page to present.
	Path string

	// Speech engine selection: "espeak", "mock" or "off".
	Speech string

	// Language is the BCP-47 tag handed to the synthesizer.
	Language string

	// SpeechRate is the speech rate multiplier.
	SpeechRate float64

	// For debugging the UI
	GlamourEnabled bool `env:"ACCESSPANEL_ENABLE_GLAMOUR" envDefault:"true"`
}
