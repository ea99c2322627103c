// Package announce feeds status text to the page's live regions. Screen
// readers only re-read a region when its content mutates, so announcing the
// same string twice requires a clear-then-set cycle across two ticks.
package announce

import (
	"github.com/charmbracelet/log"

	"github.com/webshoplabs/accesspanel/internal/dom"
)

// Default live region element ids.
const (
	PoliteRegionID    = "a11y-live-polite"
	AssertiveRegionID = "a11y-live-assertive"
)

// Announcer writes announcements into two live regions, one polite and one
// assertive. The schedule hook defers the second half of the clear-then-set
// cycle to the next tick.
type Announcer struct {
	doc         dom.Document
	politeID    string
	assertiveID string
	schedule    func(func())
}

// Option configures an Announcer.
type Option func(*Announcer)

// WithRegionIDs overrides the live region element ids.
func WithRegionIDs(polite, assertive string) Option {
	return func(a *Announcer) {
		a.politeID = polite
		a.assertiveID = assertive
	}
}

// WithScheduler overrides how the deferred set is scheduled. The default
// runs it immediately, which still produces two distinct mutations.
func WithScheduler(schedule func(func())) Option {
	return func(a *Announcer) { a.schedule = schedule }
}

// New creates an announcer over doc.
func New(doc dom.Document, opts ...Option) *Announcer {
	a := &Announcer{
		doc:         doc,
		politeID:    PoliteRegionID,
		assertiveID: AssertiveRegionID,
		schedule:    func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Announce queues text on the polite region.
func (a *Announcer) Announce(text string) {
	a.post(a.politeID, text)
}

// AnnounceUrgent queues text on the assertive region, interrupting whatever
// the screen reader is currently speaking.
func (a *Announcer) AnnounceUrgent(text string) {
	a.post(a.assertiveID, text)
}

func (a *Announcer) post(regionID, text string) {
	if a.doc.ElementByID(regionID) == nil {
		log.Debug("live region missing, dropping announcement", "region", regionID, "text", text)
		return
	}
	a.doc.SetText(regionID, "")
	a.schedule(func() {
		a.doc.SetText(regionID, text)
	})
}

// Mount attaches both live regions to parent if they are not already in the
// document. Safe to call more than once.
func (a *Announcer) Mount(parent *dom.Node) {
	for _, id := range []string{a.politeID, a.assertiveID} {
		if a.doc.ElementByID(id) != nil {
			continue
		}
		region := dom.Element("div", dom.WithID(id), dom.WithClass("visually-hidden"))
		if id == a.assertiveID {
			region.SetAttr("aria-live", "assertive")
			region.SetAttr("role", "alert")
		} else {
			region.SetAttr("aria-live", "polite")
			region.SetAttr("role", "status")
		}
		parent.AppendChild(region)
	}
}
