package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/webshoplabs/accesspanel/internal/announce"
	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

type fakeNarrator struct {
	active        bool
	activations   int
	deactivations int
	fail          error
}

func (f *fakeNarrator) Activate() error {
	if f.fail != nil {
		return f.fail
	}
	if !f.active {
		f.activations++
	}
	f.active = true
	return nil
}

func (f *fakeNarrator) Deactivate() {
	if f.active {
		f.deactivations++
	}
	f.active = false
}

func (f *fakeNarrator) Active() bool { return f.active }

type fixture struct {
	page       *dom.Page
	store      *prefs.Store
	narrator   *fakeNarrator
	controller *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	page := dom.NewPage()
	store := prefs.NewStore(prefs.NewMemoryBackend())
	announcer := announce.New(page)
	announcer.Mount(page.Body())
	narrator := &fakeNarrator{}

	controller := NewController(page, store, announcer, narrator)
	controller.Start(context.Background())
	return &fixture{page: page, store: store, narrator: narrator, controller: controller}
}

func (f *fixture) pressedState(t *testing.T, id string) string {
	t.Helper()
	n := f.page.ElementByID(id)
	if n == nil {
		t.Fatalf("control %q not in document", id)
	}
	return n.Attr("aria-pressed")
}

// TestToggleConsistency runs an arbitrary sequence of boolean toggles and
// checks after every dispatch that each control's pressed state and label
// match the record.
func TestToggleConsistency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sequence := []Action{
		ToggleSpacing(),
		ToggleDyslexiaFont(),
		ToggleSpacing(),
		ToggleBigCursor(),
		ToggleHighlightLinks(),
		ToggleSpacing(),
		ToggleBigCursor(),
	}

	check := func(step int) {
		r := f.controller.Record()
		wants := []struct {
			id   string
			name string
			on   bool
		}{
			{SpacingCtlID, spacingName, r.Spacing},
			{DyslexiaFontCtlID, dyslexiaFontName, r.DyslexiaFont},
			{HighlightLinksCtlID, highlightLinksName, r.HighlightLinks},
			{BigCursorCtlID, bigCursorName, r.BigCursor},
		}
		for _, w := range wants {
			if got := f.pressedState(t, w.id); got != pressed(w.on) {
				t.Errorf("step %d: %s pressed = %q, record = %t", step, w.id, got, w.on)
			}
			if got := f.page.ElementByID(w.id).Text; got != toggleLabel(w.name, w.on) {
				t.Errorf("step %d: %s label = %q", step, w.id, got)
			}
		}
	}

	check(0)
	for i, a := range sequence {
		f.controller.Dispatch(ctx, a)
		check(i + 1)
	}
}

// TestFontStepperScenario walks the scripted scenario: two increments show
// "+10% (110%)" then "+20% (120%)", a third is a no-op with the increment
// control disabled.
func TestFontStepperScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.Dispatch(ctx, FontIncrease())
	if got := f.page.ElementByID(FontReadoutID).Text; got != "+10% (110%)" {
		t.Errorf("readout after first increment = %q", got)
	}

	f.controller.Dispatch(ctx, FontIncrease())
	if got := f.page.ElementByID(FontReadoutID).Text; got != "+20% (120%)" {
		t.Errorf("readout after second increment = %q", got)
	}
	if !f.page.ElementByID(FontIncID).Disabled {
		t.Error("increment control not disabled at upper clamp")
	}

	f.controller.Dispatch(ctx, FontIncrease())
	if got := f.controller.Record().FontScale; got != prefs.FontScaleMax {
		t.Errorf("third increment moved scale to %d", got)
	}
}

// TestFontStepperLowerClamp verifies decrementing at the minimum is a
// silent no-op with the control disabled.
func TestFontStepperLowerClamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.controller.Dispatch(ctx, FontDecrease())
	}
	if got := f.controller.Record().FontScale; got != prefs.FontScaleMin {
		t.Errorf("scale = %d, want %d", got, prefs.FontScaleMin)
	}
	if !f.page.ElementByID(FontDecID).Disabled {
		t.Error("decrement control not disabled at lower clamp")
	}
	if f.page.ElementByID(FontIncID).Disabled {
		t.Error("increment control disabled away from upper clamp")
	}
	if got := f.page.ElementByID(FontReadoutID).Text; got != "-20% (80%)" {
		t.Errorf("readout = %q", got)
	}
}

// TestContrastGroupExclusive verifies exactly one contrast button is marked
// active after every selection, matching the record.
func TestContrastGroupExclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, mode := range []prefs.Contrast{
		prefs.ContrastDark, prefs.ContrastHigh, prefs.ContrastHigh,
		prefs.ContrastInvert, prefs.ContrastNormal,
	} {
		f.controller.Dispatch(ctx, SetContrast(mode))

		if got := f.controller.Record().Contrast; got != mode {
			t.Fatalf("record contrast = %v, want %v", got, mode)
		}
		active := 0
		for _, c := range prefs.Contrasts() {
			if f.pressedState(t, contrastCtlID(c)) == "true" {
				active++
				if c != mode {
					t.Errorf("button %v active, want %v", c, mode)
				}
			}
		}
		if active != 1 {
			t.Errorf("%d contrast buttons active, want 1", active)
		}
	}
}

// TestContrastUnknownValue verifies an out-of-range contrast is pinned to
// normal instead of stored.
func TestContrastUnknownValue(t *testing.T) {
	f := newFixture(t)
	f.controller.Dispatch(context.Background(), SetContrast(prefs.Contrast(42)))
	if got := f.controller.Record().Contrast; got != prefs.ContrastNormal {
		t.Errorf("contrast = %v, want normal", got)
	}
}

// TestDispatchPersists verifies every dispatch leaves the stored record
// equal to the in-memory one.
func TestDispatchPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	actions := []Action{
		ToggleSpacing(), FontIncrease(), SetContrast(prefs.ContrastDark), ToggleBigCursor(),
	}
	for _, a := range actions {
		f.controller.Dispatch(ctx, a)
		if got := f.store.Load(ctx); got != f.controller.Record() {
			t.Fatalf("after %v: stored %+v, in-memory %+v", a.Kind, got, f.controller.Record())
		}
	}
}

// TestReaderToggleDrivesNarrator verifies the reader toggle activates and
// deactivates narration and tracks pressed state.
func TestReaderToggleDrivesNarrator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.Dispatch(ctx, ToggleReader())
	if !f.narrator.active {
		t.Fatal("narrator not activated")
	}
	if got := f.pressedState(t, ReaderCtlID); got != "true" {
		t.Errorf("reader control pressed = %q", got)
	}

	f.controller.Dispatch(ctx, ToggleReader())
	if f.narrator.active {
		t.Fatal("narrator still active")
	}
	if f.narrator.deactivations != 1 {
		t.Errorf("deactivations = %d", f.narrator.deactivations)
	}
	if got := f.pressedState(t, ReaderCtlID); got != "false" {
		t.Errorf("reader control pressed = %q", got)
	}
}

// TestReaderToggleDegrades verifies a missing speech capability turns the
// toggle into a no-op: record, control and storage all stay off.
func TestReaderToggleDegrades(t *testing.T) {
	f := newFixture(t)
	f.narrator.fail = errors.New("no speech binary")
	ctx := context.Background()

	f.controller.Dispatch(ctx, ToggleReader())

	if f.controller.Record().ReaderEnabled {
		t.Error("record enabled despite unavailable narration")
	}
	if got := f.pressedState(t, ReaderCtlID); got != "false" {
		t.Errorf("reader control pressed = %q", got)
	}
	if f.store.Load(ctx).ReaderEnabled {
		t.Error("unavailable narration persisted as enabled")
	}
}

// TestOpenClose verifies the open/close machine: visibility, affordance
// expanded state and focus handoff.
func TestOpenClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.Dispatch(ctx, OpenPanel())
	if !f.controller.Open() {
		t.Fatal("panel not open")
	}
	if f.page.ElementByID(PanelID).Hidden {
		t.Error("panel hidden while open")
	}
	if got := f.page.ElementByID(ToggleID).Attr("aria-expanded"); got != "true" {
		t.Errorf("affordance aria-expanded = %q", got)
	}
	if got := f.page.FocusedID(); got != FontDecID {
		t.Errorf("focus on %q, want first control %q", got, FontDecID)
	}

	f.controller.Dispatch(ctx, ClosePanel())
	if f.controller.Open() {
		t.Fatal("panel still open")
	}
	if !f.page.ElementByID(PanelID).Hidden {
		t.Error("panel visible while closed")
	}
	if got := f.page.ElementByID(ToggleID).Attr("aria-expanded"); got != "false" {
		t.Errorf("affordance aria-expanded = %q", got)
	}
	if got := f.page.FocusedID(); got != ToggleID {
		t.Errorf("focus on %q, want affordance", got)
	}
}

// TestTogglePanel verifies the affordance flips between the two states and
// redundant opens and closes are no-ops.
func TestTogglePanel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.Dispatch(ctx, TogglePanel())
	if !f.controller.Open() {
		t.Fatal("toggle did not open")
	}
	f.controller.Dispatch(ctx, OpenPanel())
	if !f.controller.Open() {
		t.Fatal("redundant open broke state")
	}
	f.controller.Dispatch(ctx, TogglePanel())
	if f.controller.Open() {
		t.Fatal("toggle did not close")
	}
	f.controller.Dispatch(ctx, ClosePanel())
	if f.controller.Open() {
		t.Fatal("redundant close broke state")
	}
}

// TestReset verifies reset restores defaults, closes the panel, silences
// narration, rebuilds both fragments and announces, even from a fully
// scrambled state.
func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.Dispatch(ctx, ToggleSpacing())
	f.controller.Dispatch(ctx, FontIncrease())
	f.controller.Dispatch(ctx, SetContrast(prefs.ContrastInvert))
	f.controller.Dispatch(ctx, ToggleReader())
	f.controller.Dispatch(ctx, OpenPanel())

	f.controller.Dispatch(ctx, Reset())

	if got := f.controller.Record(); got != prefs.Default() {
		t.Errorf("record after reset = %+v", got)
	}
	if f.controller.Open() {
		t.Error("panel open after reset")
	}
	if f.narrator.active {
		t.Error("narration active after reset")
	}
	if got := f.store.Load(ctx); got != prefs.Default() {
		t.Errorf("stored record after reset = %+v", got)
	}

	// Rebuilt fragments reflect the defaults.
	p := f.page.ElementByID(PanelID)
	if p == nil || !p.Hidden {
		t.Fatal("panel missing or visible after rebuild")
	}
	if got := f.pressedState(t, SpacingCtlID); got != "false" {
		t.Errorf("spacing pressed = %q after reset", got)
	}
	if got := f.page.ElementByID(FontReadoutID).Text; got != "100%" {
		t.Errorf("readout = %q after reset", got)
	}
	if got := f.pressedState(t, contrastCtlID(prefs.ContrastNormal)); got != "true" {
		t.Errorf("normal contrast pressed = %q after reset", got)
	}

	// Effects back to neutral.
	if got := f.page.RootFontScale(); got != 1.0 {
		t.Errorf("font scale = %v after reset", got)
	}
	if got := f.page.RootAttribute("data-contrast"); got != "normal" {
		t.Errorf("contrast attribute = %q after reset", got)
	}

	// Confirmation announcement landed in the polite region.
	if got := f.page.ElementByID(announce.PoliteRegionID).Text; got != resetAnnouncement {
		t.Errorf("live region = %q", got)
	}
}

// TestReloadFollowsExternalChange verifies an externally rewritten record
// is picked up wholesale: effects, controls and narration all reconcile.
func TestReloadFollowsExternalChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.controller.Dispatch(ctx, OpenPanel())

	// Another session rewrites the slot behind our back.
	f.store.Save(ctx, prefs.Record{FontScale: -1, Contrast: prefs.ContrastHigh, ReaderEnabled: true})
	f.controller.Reload(ctx)

	if got := f.controller.Record().FontScale; got != -1 {
		t.Errorf("font scale = %d after reload", got)
	}
	if got := f.page.RootAttribute("data-contrast"); got != "high" {
		t.Errorf("contrast attribute = %q after reload", got)
	}
	if !f.narrator.active {
		t.Error("reloaded reader preference did not activate narration")
	}
	if !f.controller.Open() {
		t.Error("open panel did not survive reload")
	}
	if got := f.page.ElementByID(FontReadoutID).Text; got != "-10% (90%)" {
		t.Errorf("readout = %q after reload", got)
	}
}

// TestStartLoadsAndApplies verifies construction merges the stored record
// and applies every effect before the first interaction.
func TestStartLoadsAndApplies(t *testing.T) {
	ctx := context.Background()
	page := dom.NewPage()
	backend := prefs.NewMemoryBackend()
	store := prefs.NewStore(backend)
	store.Save(ctx, prefs.Record{FontScale: 2, Contrast: prefs.ContrastDark, Spacing: true, ReaderEnabled: true})

	announcer := announce.New(page)
	announcer.Mount(page.Body())
	narrator := &fakeNarrator{}
	controller := NewController(page, store, announcer, narrator)
	controller.Start(ctx)

	if got := page.RootFontScale(); got != 1.2 {
		t.Errorf("font scale = %v", got)
	}
	if got := page.RootAttribute("data-contrast"); got != "dark" {
		t.Errorf("contrast = %q", got)
	}
	if !narrator.active {
		t.Error("persisted reader preference did not resume narration")
	}
	if controller.Open() {
		t.Error("panel open at construction; openness must not persist")
	}
	if got := page.ElementByID(FontReadoutID).Text; got != "+20% (120%)" {
		t.Errorf("readout = %q", got)
	}
}

// TestStartReaderUnavailable verifies a persisted reader preference
// degrades cleanly when speech is missing at startup.
func TestStartReaderUnavailable(t *testing.T) {
	ctx := context.Background()
	page := dom.NewPage()
	store := prefs.NewStore(prefs.NewMemoryBackend())
	store.Save(ctx, prefs.Record{ReaderEnabled: true})

	announcer := announce.New(page)
	announcer.Mount(page.Body())
	narrator := &fakeNarrator{fail: errors.New("no speech binary")}
	controller := NewController(page, store, announcer, narrator)
	controller.Start(ctx)

	if controller.Record().ReaderEnabled {
		t.Error("reader enabled without a working synthesizer")
	}
	if got := page.ElementByID(ReaderCtlID).Attr("aria-pressed"); got != "false" {
		t.Errorf("reader control pressed = %q", got)
	}
}
