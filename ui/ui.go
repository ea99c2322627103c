// Package ui provides the terminal demo for the accessibility panel: a
// storefront page rendered through glamour with the panel, focus ring and
// live regions laid over it.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/indent"
	te "github.com/muesli/termenv"

	"github.com/webshoplabs/accesspanel/internal/announce"
	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/narrate"
	"github.com/webshoplabs/accesspanel/internal/panel"
	"github.com/webshoplabs/accesspanel/internal/prefs"
)

const flushInterval = 100 * time.Millisecond

// Session is the wired application core handed to the UI.
type Session struct {
	Page       *dom.Page
	Controller *panel.Controller
	Flush      *FlushQueue

	// Content is the raw markdown of the storefront page.
	Content string
}

// NewProgram returns a new Tea program presenting the session.
func NewProgram(cfg Config, session Session) *tea.Program {
	log.Debug("starting accesspanel", "glamour", cfg.GlamourEnabled, "speech", cfg.Speech)

	if cfg.GlamourStyle == "" || cfg.GlamourStyle == styles.AutoStyle {
		if te.HasDarkBackground() {
			cfg.GlamourStyle = styles.DarkStyle
		} else {
			cfg.GlamourStyle = styles.LightStyle
		}
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, session), opts...)
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type (
	tickMsg            time.Time
	contentRenderedMsg string
)

type model struct {
	cfg     Config
	session Session

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	fatalErr error
}

func newModel(cfg Config, session Session) tea.Model {
	return model{cfg: cfg, session: session}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), m.renderContent())
}

func tick() tea.Cmd {
	return tea.Tick(flushInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// renderContent re-renders the page body with the current preferences. It
// runs again after every dispatch that changes presentation.
func (m model) renderContent() tea.Cmd {
	cfg := m.cfg
	record := m.session.Controller.Record()
	width := m.contentWidth()
	content := m.session.Content

	return func() tea.Msg {
		if !cfg.GlamourEnabled {
			return contentRenderedMsg(content)
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyleFor(cfg, record.Contrast)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return errMsg{err}
		}
		out, err := r.Render(content)
		if err != nil {
			return errMsg{err}
		}
		if record.Spacing {
			out = indent.String(strings.ReplaceAll(out, "\n", "\n\n"), 2)
		}
		return contentRenderedMsg(out)
	}
}

// glamourStyleFor picks the glamour style implied by the contrast mode.
func glamourStyleFor(cfg Config, c prefs.Contrast) string {
	switch c {
	case prefs.ContrastHigh, prefs.ContrastDark:
		return styles.DarkStyle
	case prefs.ContrastInvert:
		return styles.LightStyle
	default:
		return cfg.GlamourStyle
	}
}

// contentWidth narrows the column as the font scale grows, which is the
// closest a character terminal comes to larger type.
func (m model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if max := int(m.cfg.GlamourMaxWidth); max > 0 && width > max {
		width = max
	}
	scale := 1.0 + 0.1*float64(m.session.Controller.Record().FontScale)
	width = int(float64(width) / scale)
	if width < 20 {
		width = 20
	}
	return width
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		return m, m.renderContent()

	case tickMsg:
		m.session.Flush.Flush()
		return m, tick()

	case contentRenderedMsg:
		if m.ready {
			m.viewport.SetContent(string(msg))
		}
		return m, nil

	case errMsg:
		m.fatalErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	dispatch := func(a panel.Action) (tea.Model, tea.Cmd) {
		m.session.Controller.Dispatch(ctx, a)
		return m, m.renderContent()
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.moveFocus(-1)
		return m, nil

	case "p":
		m.session.Controller.Dispatch(ctx, panel.TogglePanel())
		return m, nil
	case "esc":
		m.session.Controller.Dispatch(ctx, panel.ClosePanel())
		return m, nil

	case "+", "=":
		return dispatch(panel.FontIncrease())
	case "-":
		return dispatch(panel.FontDecrease())

	case "1":
		return dispatch(panel.SetContrast(prefs.ContrastNormal))
	case "2":
		return dispatch(panel.SetContrast(prefs.ContrastHigh))
	case "3":
		return dispatch(panel.SetContrast(prefs.ContrastDark))
	case "4":
		return dispatch(panel.SetContrast(prefs.ContrastInvert))

	case "s":
		return dispatch(panel.ToggleSpacing())
	case "d":
		return dispatch(panel.ToggleDyslexiaFont())
	case "l":
		return dispatch(panel.ToggleHighlightLinks())
	case "b":
		return dispatch(panel.ToggleBigCursor())

	case "r":
		m.session.Controller.Dispatch(ctx, panel.ToggleReader())
		return m, nil
	case "x":
		return dispatch(panel.Reset())

	case "enter", " ":
		return m.activateFocused(ctx)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// activateFocused dispatches the action behind the focused control, so the
// panel is fully operable from the focus ring alone.
func (m model) activateFocused(ctx context.Context) (tea.Model, tea.Cmd) {
	action := actionFor(m.session.Page.FocusedID())
	if action.Kind == panel.ActionNone {
		return m, nil
	}
	m.session.Controller.Dispatch(ctx, action)
	return m, m.renderContent()
}

// actionFor maps a control id to its action.
func actionFor(id string) panel.Action {
	switch id {
	case panel.ToggleID:
		return panel.TogglePanel()
	case panel.CloseID:
		return panel.ClosePanel()
	case panel.ResetID:
		return panel.Reset()
	case panel.FontIncID:
		return panel.FontIncrease()
	case panel.FontDecID:
		return panel.FontDecrease()
	case panel.SpacingCtlID:
		return panel.ToggleSpacing()
	case panel.DyslexiaFontCtlID:
		return panel.ToggleDyslexiaFont()
	case panel.HighlightLinksCtlID:
		return panel.ToggleHighlightLinks()
	case panel.BigCursorCtlID:
		return panel.ToggleBigCursor()
	case panel.ReaderCtlID:
		return panel.ToggleReader()
	}
	for _, c := range prefs.Contrasts() {
		if id == "a11y-contrast-"+c.String() {
			return panel.SetContrast(c)
		}
	}
	return panel.Action{}
}

// moveFocus walks the ring of visible focusable elements. Focusing drives
// narration when the reader is on.
func (m model) moveFocus(delta int) {
	ring := visibleFocusables(m.session.Page.Root())
	if len(ring) == 0 {
		return
	}
	current := m.session.Page.FocusedID()
	idx := -1
	for i, id := range ring {
		if id == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(ring)) % len(ring)
	m.session.Page.Focus(ring[idx])
}

// visibleFocusables lists focusable ids in document order, skipping hidden
// subtrees (a closed panel keeps its controls out of the ring).
func visibleFocusables(root *dom.Node) []string {
	var ids []string
	var rec func(*dom.Node)
	rec = func(n *dom.Node) {
		if n.Hidden {
			return
		}
		if n.Focusable() && n.ID != "" {
			ids = append(ids, n.ID)
		}
		for _, c := range n.Children {
			rec(c)
		}
	}
	rec(root)
	return ids
}

func (m model) View() string {
	if m.fatalErr != nil {
		return fmt.Sprintf("error: %v\n", m.fatalErr)
	}
	if !m.ready {
		return "loading…"
	}

	record := m.session.Controller.Record()
	pal := paletteFor(record.Contrast)
	focused := m.session.Page.FocusedID()

	header := renderToggle(m.session.Page.ElementByID(panel.ToggleID), focused, pal)

	body := m.viewport.View()
	if p := renderPanel(m.session.Page.ElementByID(panel.PanelID), focused, pal); p != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, p)
	}

	return strings.Join([]string{header, body, m.statusBar(record, pal)}, "\n")
}

// statusBar surfaces the live regions, the record summary and the focused
// element's description.
func (m model) statusBar(record prefs.Record, pal palette) string {
	var parts []string

	if t := m.liveText(announce.AssertiveRegionID); t != "" {
		parts = append(parts, liveRegionStyle.Foreground(pal.accent).Render("⚠ "+t))
	} else if t := m.liveText(announce.PoliteRegionID); t != "" {
		parts = append(parts, liveRegionStyle.Render("♪ "+t))
	}

	summary := fmt.Sprintf("%d%% · %s", record.FontPercent(), record.Contrast)
	for _, f := range []struct {
		on   bool
		name string
	}{
		{record.Spacing, "spacing"},
		{record.DyslexiaFont, "dyslexia"},
		{record.HighlightLinks, "links"},
		{record.BigCursor, "cursor"},
		{record.ReaderEnabled, "reader"},
	} {
		if f.on {
			summary += " · " + f.name
		}
	}
	parts = append(parts, statusBarStyle.Render(summary))

	if focused := m.session.Page.ElementByID(m.session.Page.FocusedID()); focused != nil {
		parts = append(parts, statusBarStyle.Render(narrate.Describe(m.session.Page, focused)))
	}

	parts = append(parts, helpStyle.Render("tab focus · p panel · enter activate · q quit"))
	return strings.Join(parts, "  ")
}

// liveText reads a live region's current text.
func (m model) liveText(id string) string {
	n := m.session.Page.ElementByID(id)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}
