// Package panel owns the preference record and the settings panel built
// from it. Every user interaction funnels through Controller.Dispatch,
// which mutates the record, applies the presentation effect, patches the
// affected controls and persists, in that order.
package panel

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/webshoplabs/accesspanel/internal/announce"
	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/effects"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

// resetAnnouncement is spoken through the polite live region after a reset.
const resetAnnouncement = "Accessibility settings restored to defaults"

// Narrator is the slice of the screen reader the controller drives.
// Satisfied by *narrate.Reader.
type Narrator interface {
	Activate() error
	Deactivate()
	Active() bool
}

// Controller exclusively owns the preference record. Components that need
// the current preferences read them through Record; nothing else mutates
// them.
type Controller struct {
	doc       dom.Document
	store     *prefs.Store
	applier   *effects.Applier
	announcer *announce.Announcer
	narrator  Narrator

	record prefs.Record
	open   bool
}

// NewController wires a controller over the document. Call Start to load
// preferences and mount the panel fragments.
func NewController(doc dom.Document, store *prefs.Store, announcer *announce.Announcer, narrator Narrator) *Controller {
	return &Controller{
		doc:       doc,
		store:     store,
		applier:   effects.NewApplier(doc),
		announcer: announcer,
		narrator:  narrator,
		record:    prefs.Default(),
	}
}

// Record returns a copy of the current preference record.
func (c *Controller) Record() prefs.Record { return c.record }

// Open reports whether the panel is open. The panel always constructs
// closed; openness is never persisted.
func (c *Controller) Open() bool { return c.open }

// Start loads the persisted record, applies every effect, mounts the
// affordance and the panel, and resumes narration if it was left on.
func (c *Controller) Start(ctx context.Context) {
	c.record = c.store.Load(ctx)
	c.applier.ApplyAll(c.record)
	c.mount()

	if c.record.ReaderEnabled {
		if err := c.narrator.Activate(); err != nil {
			log.Warn("narration unavailable at startup", "error", err)
			c.record.ReaderEnabled = false
			c.patchToggle(ReaderCtlID, readerName, false)
		}
	}
}

func (c *Controller) mount() {
	c.doc.Mount(BuildToggle())
	c.doc.Mount(BuildPanel(c.record))
	c.open = false
}

// Dispatch is the single entry point for panel actions.
func (c *Controller) Dispatch(ctx context.Context, a Action) {
	switch a.Kind {
	case ActionToggleSpacing:
		c.record.Spacing = !c.record.Spacing
		c.applier.ApplySpacing(c.record.Spacing)
		c.patchToggle(SpacingCtlID, spacingName, c.record.Spacing)
		c.store.Save(ctx, c.record)

	case ActionToggleDyslexiaFont:
		c.record.DyslexiaFont = !c.record.DyslexiaFont
		c.applier.ApplyDyslexiaFont(c.record.DyslexiaFont)
		c.patchToggle(DyslexiaFontCtlID, dyslexiaFontName, c.record.DyslexiaFont)
		c.store.Save(ctx, c.record)

	case ActionToggleHighlightLinks:
		c.record.HighlightLinks = !c.record.HighlightLinks
		c.applier.ApplyHighlightLinks(c.record.HighlightLinks)
		c.patchToggle(HighlightLinksCtlID, highlightLinksName, c.record.HighlightLinks)
		c.store.Save(ctx, c.record)

	case ActionToggleBigCursor:
		c.record.BigCursor = !c.record.BigCursor
		c.applier.ApplyBigCursor(c.record.BigCursor)
		c.patchToggle(BigCursorCtlID, bigCursorName, c.record.BigCursor)
		c.store.Save(ctx, c.record)

	case ActionSetContrast:
		// Round-tripping through the parser pins unknown values to normal.
		c.record.Contrast = prefs.ParseContrast(a.Contrast.String())
		c.applier.ApplyContrast(c.record.Contrast)
		c.patchContrastGroup()
		c.store.Save(ctx, c.record)

	case ActionFontIncrease:
		if c.record.FontScale >= prefs.FontScaleMax {
			return
		}
		c.record.FontScale++
		c.applier.ApplyFontScale(c.record.FontScale)
		c.patchStepper()
		c.store.Save(ctx, c.record)

	case ActionFontDecrease:
		if c.record.FontScale <= prefs.FontScaleMin {
			return
		}
		c.record.FontScale--
		c.applier.ApplyFontScale(c.record.FontScale)
		c.patchStepper()
		c.store.Save(ctx, c.record)

	case ActionToggleReader:
		c.record.ReaderEnabled = !c.record.ReaderEnabled
		if c.record.ReaderEnabled {
			if err := c.narrator.Activate(); err != nil {
				log.Warn("narration unavailable", "error", err)
				c.record.ReaderEnabled = false
				return
			}
		} else {
			c.narrator.Deactivate()
		}
		c.patchToggle(ReaderCtlID, readerName, c.record.ReaderEnabled)
		c.store.Save(ctx, c.record)

	case ActionReset:
		c.reset(ctx)

	case ActionOpenPanel:
		c.openPanel()

	case ActionClosePanel:
		c.closePanel()

	case ActionTogglePanel:
		if c.open {
			c.closePanel()
		} else {
			c.openPanel()
		}
	}
}

// Reload re-reads the persisted record and reconciles everything to it,
// for when another session rewrites the storage slot. The panel's open
// state survives; narration follows the reloaded preference.
func (c *Controller) Reload(ctx context.Context) {
	wasOpen := c.open
	c.record = c.store.Load(ctx)
	c.applier.ApplyAll(c.record)

	c.doc.Unmount(PanelID)
	c.doc.Unmount(ToggleID)
	c.mount()
	if wasOpen {
		c.openPanel()
	}

	switch {
	case c.record.ReaderEnabled && !c.narrator.Active():
		if err := c.narrator.Activate(); err != nil {
			log.Warn("narration unavailable on reload", "error", err)
			c.record.ReaderEnabled = false
			c.patchToggle(ReaderCtlID, readerName, false)
		}
	case !c.record.ReaderEnabled && c.narrator.Active():
		c.narrator.Deactivate()
	}
}

// reset replaces the record with defaults, silences narration, reapplies
// everything and rebuilds both fragments from scratch. The panel ends
// closed no matter how it started.
func (c *Controller) reset(ctx context.Context) {
	c.record = prefs.Default()
	c.narrator.Deactivate()
	c.applier.ApplyAll(c.record)
	c.store.Save(ctx, c.record)

	c.doc.Unmount(PanelID)
	c.doc.Unmount(ToggleID)
	c.mount()

	c.announcer.Announce(resetAnnouncement)
}

func (c *Controller) openPanel() {
	if c.open {
		return
	}
	p := c.doc.ElementByID(PanelID)
	if p == nil {
		return
	}
	p.Hidden = false
	if affordance := c.doc.ElementByID(ToggleID); affordance != nil {
		affordance.SetAttr("aria-expanded", "true")
	}
	c.open = true

	if first := p.Find((*dom.Node).Focusable); first != nil {
		c.doc.Focus(first.ID)
	}
}

func (c *Controller) closePanel() {
	if !c.open {
		return
	}
	if p := c.doc.ElementByID(PanelID); p != nil {
		p.Hidden = true
	}
	if affordance := c.doc.ElementByID(ToggleID); affordance != nil {
		affordance.SetAttr("aria-expanded", "false")
	}
	c.open = false
	c.doc.Focus(ToggleID)
}

// patchToggle updates one toggle control's pressed state and label.
func (c *Controller) patchToggle(id, name string, on bool) {
	n := c.doc.ElementByID(id)
	if n == nil {
		return
	}
	n.SetAttr("aria-pressed", pressed(on))
	c.doc.SetText(id, toggleLabel(name, on))
}

// patchStepper refreshes the stepper's disabled flags and readout.
func (c *Controller) patchStepper() {
	scale := c.record.FontScale
	if dec := c.doc.ElementByID(FontDecID); dec != nil {
		dec.Disabled = scale <= prefs.FontScaleMin
	}
	if inc := c.doc.ElementByID(FontIncID); inc != nil {
		inc.Disabled = scale >= prefs.FontScaleMax
	}
	c.doc.SetText(FontReadoutID, readoutText(scale))
}

// patchContrastGroup re-marks the exclusive selection.
func (c *Controller) patchContrastGroup() {
	for _, mode := range prefs.Contrasts() {
		if btn := c.doc.ElementByID(contrastCtlID(mode)); btn != nil {
			btn.SetAttr("aria-pressed", pressed(mode == c.record.Contrast))
		}
	}
}
