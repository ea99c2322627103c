package engines

import (
	"context"
	"sync"

	"github.com/webshoplabs/accesspanel/internal/narrate"
)

// Mock is a silent synthesizer that records what it was asked to speak.
// The demo uses it when no speech binary is installed; tests use it to
// assert on narration.
type Mock struct {
	mu        sync.Mutex
	spoken    []narrate.Utterance
	cancels   int
	closed    bool
	available bool
}

var _ narrate.Synthesizer = (*Mock)(nil)

// NewMock creates an available mock engine.
func NewMock() *Mock {
	return &Mock{available: true}
}

// Speak records the utterance and returns immediately.
func (m *Mock) Speak(_ context.Context, u narrate.Utterance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return narrate.ErrReaderClosed
	}
	m.spoken = append(m.spoken, u)
	return nil
}

// Cancel counts the interruption.
func (m *Mock) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancels++
}

// Available reports the configured availability.
func (m *Mock) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// SetAvailable flips availability, for testing fallbacks.
func (m *Mock) SetAvailable(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = ok
}

// Close marks the engine closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Spoken returns a copy of every recorded utterance.
func (m *Mock) Spoken() []narrate.Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]narrate.Utterance, len(m.spoken))
	copy(out, m.spoken)
	return out
}

// Cancels returns how many times speech was interrupted.
func (m *Mock) Cancels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancels
}

// LastSpoken returns the most recent utterance text, or "".
func (m *Mock) LastSpoken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.spoken) == 0 {
		return ""
	}
	return m.spoken[len(m.spoken)-1].Text
}
