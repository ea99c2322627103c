package narrate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/webshoplabs/accesspanel/internal/dom"
)

// onboardingText is spoken every time the reader turns on, so users who
// enabled it by accident learn how to turn it back off.
const onboardingText = "Screen reader on. Press the reader toggle again to turn it off."

// defaultHoverInterval throttles hover narration. Focus is never throttled;
// a keyboard user must hear every stop on the focus ring.
const defaultHoverInterval = 300 * time.Millisecond

// Reader narrates focus and hover events through a Synthesizer.
//
// Delivery is latest-wins: an utterance arriving while another is speaking
// cancels it. The reader never builds a backlog.
type Reader struct {
	doc   dom.Document
	synth Synthesizer

	lang       language.Tag
	speechRate float64
	hoverLimit *rate.Limiter

	mailbox chan Utterance
	done    chan struct{}
	wg      sync.WaitGroup

	mu          sync.Mutex
	machine     *stateMachine
	removeFocus func()
	removeHover func()
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLanguage sets the utterance language.
func WithLanguage(tag language.Tag) ReaderOption {
	return func(r *Reader) { r.lang = tag }
}

// WithSpeechRate sets the speech rate multiplier.
func WithSpeechRate(speechRate float64) ReaderOption {
	return func(r *Reader) { r.speechRate = speechRate }
}

// WithHoverInterval sets the minimum gap between hover narrations.
func WithHoverInterval(d time.Duration) ReaderOption {
	return func(r *Reader) { r.hoverLimit = rate.NewLimiter(rate.Every(d), 1) }
}

// NewReader creates an inactive reader over doc. Call Activate to start
// narrating and Close when done with it for good.
func NewReader(doc dom.Document, synth Synthesizer, opts ...ReaderOption) *Reader {
	r := &Reader{
		doc:        doc,
		synth:      synth,
		lang:       language.English,
		speechRate: 1.0,
		hoverLimit: rate.NewLimiter(rate.Every(defaultHoverInterval), 1),
		mailbox:    make(chan Utterance, 1),
		done:       make(chan struct{}),
		machine:    newStateMachine(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.machine.onEnter[StateActive] = r.attach
	r.machine.onExit[StateActive] = r.detach

	r.wg.Add(1)
	go r.speakLoop()
	return r
}

// State returns the reader's current state.
func (r *Reader) State() StateType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.state()
}

// Active reports whether the reader is narrating.
func (r *Reader) Active() bool {
	return r.State() == StateActive
}

// Activate turns the reader on. Already-active and closed readers are a
// no-op and an error respectively. On success the onboarding utterance is
// spoken immediately.
func (r *Reader) Activate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.machine.state() {
	case StateActive:
		return nil
	case StateClosed:
		return ErrReaderClosed
	}
	if !r.synth.Available() {
		return ErrSynthUnavailable
	}
	r.machine.transition(StateActive)
	r.enqueue(r.utterance(onboardingText))
	return nil
}

// Deactivate turns the reader off: listeners are detached and in-flight
// speech is cancelled. Idempotent.
func (r *Reader) Deactivate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.machine.state() != StateActive {
		return
	}
	r.machine.transition(StateInactive)
}

// Close shuts the reader down permanently and releases the synthesizer.
func (r *Reader) Close() error {
	r.mu.Lock()
	if r.machine.state() == StateClosed {
		r.mu.Unlock()
		return nil
	}
	if r.machine.state() == StateActive {
		r.machine.transition(StateInactive)
	}
	r.machine.transition(StateClosed)
	close(r.done)
	r.mu.Unlock()

	r.wg.Wait()
	return r.synth.Close()
}

// attach wires the document listeners. Runs under mu via the state machine.
func (r *Reader) attach() {
	r.removeFocus = r.doc.AddListener(dom.EventFocus, func(n *dom.Node) {
		r.narrate(n, false)
	})
	r.removeHover = r.doc.AddListener(dom.EventHover, func(n *dom.Node) {
		r.narrate(n, true)
	})
}

// detach unwires the listeners, drains pending speech and silences the
// synthesizer. Runs under mu via the state machine.
func (r *Reader) detach() {
	if r.removeFocus != nil {
		r.removeFocus()
		r.removeFocus = nil
	}
	if r.removeHover != nil {
		r.removeHover()
		r.removeHover = nil
	}
	select {
	case <-r.mailbox:
	default:
	}
	r.synth.Cancel()
}

// narrate describes the element and hands it to the speak loop. Hover
// events are rate limited; focus events always go through.
func (r *Reader) narrate(n *dom.Node, hover bool) {
	if hover && !r.hoverLimit.Allow() {
		return
	}
	text := Describe(r.doc, n)
	if text == "" {
		return
	}
	r.enqueue(r.utterance(text))
}

func (r *Reader) utterance(text string) Utterance {
	return Utterance{Text: text, Language: r.lang, Rate: r.speechRate}
}

// enqueue puts the utterance in the single-slot mailbox, evicting whatever
// was waiting there.
func (r *Reader) enqueue(u Utterance) {
	for {
		select {
		case r.mailbox <- u:
			return
		default:
		}
		select {
		case <-r.mailbox:
		default:
		}
	}
}

// speakLoop runs for the lifetime of the reader. Each utterance cancels its
// predecessor before speaking.
func (r *Reader) speakLoop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case u := <-r.mailbox:
			r.synth.Cancel()
			err := r.synth.Speak(context.Background(), u)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("speech failed", "text", u.Text, "error", err)
			}
		}
	}
}
