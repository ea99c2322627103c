package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/webshoplabs/accesspanel/internal/dom"
)

// renderPanel draws the settings panel fragment. Returns "" while the panel
// is hidden.
func renderPanel(p *dom.Node, focusedID string, pal palette) string {
	if p == nil || p.Hidden {
		return ""
	}

	rows := []string{panelTitleStyle.Foreground(pal.accent).Render(p.Attr("aria-label"))}
	for _, child := range p.Children {
		rows = append(rows, renderControl(child, focusedID, pal))
	}
	return panelStyle.BorderForeground(pal.accent).Render(strings.Join(rows, "\n"))
}

// renderToggle draws the floating affordance.
func renderToggle(n *dom.Node, focusedID string, pal palette) string {
	if n == nil {
		return ""
	}
	marker := "▸"
	if n.Attr("aria-expanded") == "true" {
		marker = "▾"
	}
	style := controlStyle
	if n.ID == focusedID {
		style = focusedStyle
	}
	return style.Render(marker + " " + n.Text)
}

func renderControl(n *dom.Node, focusedID string, pal palette) string {
	switch n.Tag {
	case "button":
		return renderButton(n, focusedID, pal)
	case "span":
		return controlStyle.Render(n.Text)
	case "div":
		// role=group rows render horizontally.
		cells := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			cells = append(cells, renderControl(c, focusedID, pal))
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
	default:
		return controlStyle.Render(n.TextContent())
	}
}

func renderButton(n *dom.Node, focusedID string, pal palette) string {
	style := controlStyle
	switch {
	case n.Disabled:
		style = disabledStyle
	case n.ID == focusedID:
		style = focusedStyle
	case n.Attr("aria-pressed") == "true":
		style = pressedStyle.Foreground(pal.accent)
	}
	return style.Render("[" + n.Text + "]")
}
