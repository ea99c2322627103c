package narrate

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/webshoplabs/accesspanel/internal/dom"
)

// maxNameWidth caps the spoken accessible name so a hovered paragraph does
// not read out the whole page.
const maxNameWidth = 80

var titleCaser = cases.Title(language.English)

// Describe builds the spoken description of an element: a role prefix
// followed by the element's accessible name.
func Describe(doc dom.Document, n *dom.Node) string {
	if n == nil {
		return ""
	}
	name := accessibleName(doc, n)
	prefix := rolePrefix(n)
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + ": " + name
	}
}

// accessibleName resolves the element's name: explicit aria labelling first,
// then tag-specific sources, then the visible text.
func accessibleName(doc dom.Document, n *dom.Node) string {
	if label := strings.TrimSpace(n.Attr("aria-label")); label != "" {
		return label
	}
	if ref := n.Attr("aria-labelledby"); ref != "" {
		if target := doc.ElementByID(ref); target != nil {
			if text := strings.TrimSpace(target.TextContent()); text != "" {
				return text
			}
		}
	}

	switch n.Tag {
	case "img":
		return strings.TrimSpace(n.Attr("alt"))
	case "input", "select", "textarea":
		return fieldName(doc, n)
	}

	return truncate(n.TextContent())
}

// fieldName names a form control from its label element, falling back to
// its placeholder and then a generic description.
func fieldName(doc dom.Document, n *dom.Node) string {
	if label := doc.LabelFor(n.ID); label != nil {
		if text := strings.TrimSpace(label.TextContent()); text != "" {
			return text
		}
	}
	if placeholder := strings.TrimSpace(n.Attr("placeholder")); placeholder != "" {
		return placeholder
	}
	return ""
}

// rolePrefix returns the spoken role of the element, or "" for plain text
// content.
func rolePrefix(n *dom.Node) string {
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := n.Level
		if level == 0 {
			level = int(n.Tag[1] - '0')
		}
		return fmt.Sprintf("Heading level %d", level)
	case "a":
		return "Link"
	case "button":
		return "Button"
	case "select":
		return "Selector"
	case "textarea":
		return "Text field"
	case "input":
		kind := n.Attr("type")
		if kind == "" {
			return "Form field"
		}
		return titleCaser.String(kind) + " field"
	case "img":
		return "Image"
	}
	return ""
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, maxNameWidth, "…")
}
