package dom

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromMarkdown imports a markdown document into a node tree. The demo UI
// uses this to turn a storefront page fixture into something the narrator
// and the focus ring can address: headings, links and images receive
// generated ids so they can be focused and narrated.
//
// Only the block and inline kinds the panel cares about are mapped; anything
// else contributes its text content to the enclosing block.
func FromMarkdown(source []byte) *Node {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	imp := &importer{source: source}
	main := Element("main", WithID("main-content"))
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if n := imp.block(child); n != nil {
			main.AppendChild(n)
		}
	}
	return main
}

type importer struct {
	source []byte
	serial int
}

func (imp *importer) nextID(tag string) string {
	imp.serial++
	return fmt.Sprintf("%s-%d", tag, imp.serial)
}

func (imp *importer) block(n ast.Node) *Node {
	switch b := n.(type) {
	case *ast.Heading:
		tag := fmt.Sprintf("h%d", b.Level)
		return Element(tag,
			WithID(imp.nextID(tag)),
			WithLevel(b.Level),
			WithText(imp.inlineText(b)),
		)
	case *ast.Paragraph:
		p := Element("p")
		imp.inlines(p, b)
		return p
	case *ast.List:
		tag := "ul"
		if b.IsOrdered() {
			tag = "ol"
		}
		list := Element(tag)
		for item := b.FirstChild(); item != nil; item = item.NextSibling() {
			li := Element("li")
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if child := imp.block(c); child != nil {
					li.AppendChild(child)
				}
			}
			list.AppendChild(li)
		}
		return list
	case *ast.Blockquote:
		quote := Element("blockquote")
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			if child := imp.block(c); child != nil {
				quote.AppendChild(child)
			}
		}
		return quote
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return Element("pre", WithText(imp.literalLines(n)))
	case *ast.ThematicBreak:
		return Element("hr")
	default:
		if txt := imp.inlineText(n); txt != "" {
			return Element("p", WithText(txt))
		}
		return nil
	}
}

// inlines converts the inline children of a block, keeping links and images
// as addressable child nodes and collecting surrounding text into spans.
func (imp *importer) inlines(parent *Node, block ast.Node) {
	var buf strings.Builder
	flush := func() {
		if t := strings.TrimSpace(buf.String()); t != "" {
			parent.AppendChild(Element("span", WithText(t)))
		}
		buf.Reset()
	}

	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		switch inline := c.(type) {
		case *ast.Link:
			flush()
			parent.AppendChild(Element("a",
				WithID(imp.nextID("a")),
				WithAttr("href", string(inline.Destination)),
				WithText(imp.inlineText(inline)),
			))
		case *ast.Image:
			flush()
			parent.AppendChild(Element("img",
				WithID(imp.nextID("img")),
				WithAttr("src", string(inline.Destination)),
				WithAttr("alt", imp.inlineText(inline)),
			))
		default:
			buf.WriteString(imp.inlineText(c))
		}
	}
	flush()
}

// inlineText collects the raw text of a node and its inline descendants.
func (imp *importer) inlineText(n ast.Node) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(imp.source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func (imp *importer) literalLines(n ast.Node) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(imp.source))
	}
	return strings.TrimRight(buf.String(), "\n")
}
