package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements whose content is never rendered.
var unrenderedTags = map[string]bool{
	"head":     true,
	"link":     true,
	"meta":     true,
	"noscript": true,
	"script":   true,
	"style":    true,
	"template": true,
	"title":    true,
}

// Elements that are laid out as blocks by the default style sheet.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"caption": true, "dd": true, "details": true, "dialog": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hgroup": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "summary": true, "table": true, "tbody": true,
	"tfoot": true, "thead": true, "tr": true, "ul": true,
}

// hidden reports whether n itself is excluded from rendering.
func (d *Document) hidden(n *html.Node) bool {
	if unrenderedTags[n.Data] {
		return true
	}
	if _, ok := attr(n, "hidden"); ok {
		return true
	}
	return d.specified(n, "display") == "none"
}

// rendered reports whether n and all of its ancestors are rendered.
func (d *Document) rendered(n *html.Node) bool {
	for p := n; p != nil && p.Type == html.ElementNode; p = p.Parent {
		if d.hidden(p) {
			return false
		}
	}
	return true
}

func (d *Document) isBlock(n *html.Node) bool {
	if display := d.specified(n, "display"); display != "" {
		return !strings.HasPrefix(display, "inline") && display != "contents"
	}
	return blockTags[n.Data]
}

func (d *Document) visibleText(n *html.Node) string {
	var b strings.Builder
	d.writeText(&b, n)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = collapseSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func (d *Document) writeText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			writeCollapsed(b, c.Data)
		case html.ElementNode:
			if d.hidden(c) {
				continue
			}
			switch {
			case c.Data == "br":
				b.WriteByte('\n')
			case c.Data == "td" || c.Data == "th":
				b.WriteByte(' ')
				d.writeText(b, c)
				b.WriteByte(' ')
			case d.isBlock(c):
				b.WriteByte('\n')
				d.writeText(b, c)
				b.WriteByte('\n')
			default:
				d.writeText(b, c)
			}
		}
	}
}

// writeCollapsed writes s with every whitespace run replaced by one space.
// Line breaks in the source are whitespace, not breaks.
func writeCollapsed(b *strings.Builder, s string) {
	inSpace := false
	for _, r := range s {
		if isHTMLSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
}

// collapseSpace collapses runs of HTML whitespace into single spaces and
// trims the result. Non-breaking spaces are kept.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isHTMLSpace), " ")
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
