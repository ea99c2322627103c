// Package narrate implements the screen reader: it watches focus and hover
// on the document and speaks a description of the current element through a
// speech synthesizer. At most one utterance is in flight; newer events
// replace older ones rather than queueing behind them.
package narrate

import (
	"context"
	"errors"

	"golang.org/x/text/language"
)

// Narration errors.
var (
	// ErrSynthUnavailable indicates the synthesizer backend cannot speak,
	// e.g. its binary is missing from PATH.
	ErrSynthUnavailable = errors.New("speech synthesizer unavailable")
	// ErrReaderClosed indicates the reader has been shut down.
	ErrReaderClosed = errors.New("reader closed")
)

// Utterance is one piece of text to speak.
type Utterance struct {
	Text     string
	Language language.Tag
	// Rate is the speech rate multiplier; 1.0 is the engine default.
	Rate float64
}

// Synthesizer converts utterances to audible speech. Speak blocks until the
// utterance finishes, fails, or ctx is cancelled. Cancel interrupts the
// in-flight Speak, if any.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
	Cancel()
	Available() bool
	Close() error
}
