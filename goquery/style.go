package goquery

import (
	"math"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// Initial values used when nothing in the cascade sets a property.
const (
	initialColor           = "rgb(0, 0, 0)"
	initialBackgroundColor = "rgba(0, 0, 0, 0)"
	initialFontSize        = 16.0
	linkColor              = "rgb(0, 0, 238)"
)

// Font size factors applied by the default style sheet.
var uaFontScale = map[string]float64{
	"h1": 2,
	"h2": 1.5,
	"h3": 1.17,
	"h4": 1,
	"h5": 0.83,
	"h6": 0.67,
}

// sectioningTags shrink a nested h1 one heading level per ancestor.
var sectioningTags = map[string]bool{
	"article": true,
	"aside":   true,
	"nav":     true,
	"section": true,
}

// h1Scale returns the default font size factor of an h1, which depends on
// how many sectioning elements enclose it.
func h1Scale(n *html.Node) float64 {
	levels := []float64{2, 1.5, 1.17, 1, 0.83, 0.67}
	depth := 0
	for p := parentElement(n); p != nil; p = parentElement(p) {
		if sectioningTags[p.Data] {
			depth++
		}
	}
	return levels[min(depth, len(levels)-1)]
}

var fontSizeKeywords = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// declaration is one property value. parts holds the top-level components
// of the value, used to pick the color out of the background shorthand.
type declaration struct {
	value     string
	parts     []string
	important bool
	pos       int
}

type rule struct {
	sel   cascadia.Sel
	decls map[string]declaration
	order int
}

// stylesheet holds the style rules of a document in source order.
type stylesheet struct {
	rules []rule
}

// add appends the top-level rules of one style element. Rules nested in
// at-rules are skipped, as are selectors the matcher does not support.
func (sheet *stylesheet) add(text string) {
	p := css.NewParser(parse.NewInputString(text), false)

	var group cascadia.SelectorGroup
	var decls map[string]declaration
	depth, pos := 0, 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if _, ok := p.Err().(*parse.Error); !ok {
				return
			}
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		case css.BeginRulesetGrammar:
			if depth > 0 {
				continue
			}
			g, err := cascadia.ParseGroup(tokensString(p.Values()))
			if err != nil {
				continue
			}
			group, decls = g, make(map[string]declaration)
		case css.DeclarationGrammar:
			if decls != nil {
				addDeclaration(decls, string(data), p.Values(), pos)
				pos++
			}
		case css.EndRulesetGrammar:
			for _, sel := range group {
				if sel.PseudoElement() != "" || len(decls) == 0 {
					continue
				}
				sheet.rules = append(sheet.rules, rule{sel: sel, decls: decls, order: len(sheet.rules)})
			}
			group, decls = nil, nil
		}
	}
}

// parseDeclarations reads the declaration list of a style attribute.
func parseDeclarations(style string) map[string]declaration {
	decls := make(map[string]declaration)
	p := css.NewParser(parse.NewInputString(style), true)
	for pos := 0; ; pos++ {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if _, ok := p.Err().(*parse.Error); !ok {
				return decls
			}
		case css.DeclarationGrammar:
			addDeclaration(decls, string(data), p.Values(), pos)
		}
	}
}

// addDeclaration records a declaration unless an important one for the
// same property is already present. pos orders declarations of one block.
func addDeclaration(decls map[string]declaration, prop string, values []css.Token, pos int) {
	d, ok := newDeclaration(values)
	if !ok {
		return
	}
	d.pos = pos
	prop = strings.ToLower(strings.TrimSpace(prop))
	if prev, ok := decls[prop]; ok && prev.important && !d.important {
		return
	}
	decls[prop] = d
}

func newDeclaration(values []css.Token) (declaration, bool) {
	var d declaration

	end := trimWhitespace(values, len(values))
	if end > 0 && values[end-1].TokenType == css.IdentToken && strings.EqualFold(string(values[end-1].Data), "important") {
		bang := trimWhitespace(values, end-1)
		if bang > 0 && values[bang-1].TokenType == css.DelimToken && string(values[bang-1].Data) == "!" {
			d.important = true
			end = trimWhitespace(values, bang-1)
		}
	}

	// Values are rebuilt from tokens: top-level components become parts,
	// tokens inside functions are joined with single spaces.
	var part strings.Builder
	flush := func() {
		if part.Len() > 0 {
			d.parts = append(d.parts, part.String())
			part.Reset()
		}
	}
	var prev css.TokenType
	level := 0
	for _, t := range values[:end] {
		switch t.TokenType {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.CommaToken:
			if level == 0 {
				flush()
				continue
			}
		}

		if level == 0 {
			flush()
		} else if prev != css.FunctionToken && prev != css.LeftParenthesisToken &&
			t.TokenType != css.CommaToken && t.TokenType != css.RightParenthesisToken {
			part.WriteByte(' ')
		}
		part.WriteString(strings.ToLower(string(t.Data)))

		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			level++
		case css.RightParenthesisToken:
			if level > 0 {
				level--
			}
		}
		prev = t.TokenType
	}
	flush()

	d.value = strings.Join(d.parts, " ")
	return d, d.value != ""
}

// trimWhitespace returns end moved back past trailing whitespace tokens.
func trimWhitespace(values []css.Token, end int) int {
	for end > 0 && values[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	return end
}

func tokensString(values []css.Token) string {
	var b strings.Builder
	for _, t := range values {
		b.Write(t.Data)
	}
	return b.String()
}

// cascaded is a declaration competing in the cascade for one element.
type cascaded struct {
	declaration
	inline      bool
	specificity cascadia.Specificity
	order       int
}

func (c cascaded) beats(other cascaded) bool {
	if c.important != other.important {
		return c.important
	}
	if c.inline != other.inline {
		return c.inline
	}
	if c.specificity != other.specificity {
		return other.specificity.Less(c.specificity)
	}
	if c.order != other.order {
		return c.order > other.order
	}
	return c.pos > other.pos
}

// cascade returns the declaration that wins the cascade for prop on n.
func (d *Document) cascade(n *html.Node, prop string) (cascaded, bool) {
	var best cascaded
	found := false
	for _, r := range d.sheet.rules {
		decl, ok := r.decls[prop]
		if !ok || !r.sel.Match(n) {
			continue
		}
		c := cascaded{declaration: decl, specificity: r.sel.Specificity(), order: r.order}
		if !found || c.beats(best) {
			best, found = c, true
		}
	}
	if style, ok := attr(n, "style"); ok {
		if decl, ok := parseDeclarations(style)[prop]; ok {
			c := cascaded{declaration: decl, inline: true}
			if !found || c.beats(best) {
				best, found = c, true
			}
		}
	}
	return best, found
}

// specified returns the value the cascade assigns to prop on n, or "" when
// no rule or inline style sets it.
func (d *Document) specified(n *html.Node, prop string) string {
	c, _ := d.cascade(n, prop)
	return c.value
}

func (d *Document) computedStyle(n *html.Node, prop string) string {
	switch prop {
	case "color":
		return d.color(n)
	case "background-color":
		return d.backgroundColor(n)
	case "font-size":
		return formatPx(d.fontSize(n))
	default:
		return d.specified(n, prop)
	}
}

func parentElement(n *html.Node) *html.Node {
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		return p
	}
	return nil
}

func (d *Document) color(n *html.Node) string {
	v := d.specified(n, "color")
	switch v {
	case "", "inherit", "currentcolor", "unset":
		if v == "" && n.Data == "a" {
			if _, ok := attr(n, "href"); ok {
				return linkColor
			}
		}
		if p := parentElement(n); p != nil {
			return d.color(p)
		}
		return initialColor
	case "initial":
		return initialColor
	}
	return normalizeColor(v)
}

func (d *Document) backgroundColor(n *html.Node) string {
	var v string
	long, hasLong := d.cascade(n, "background-color")
	short, hasShort := d.cascade(n, "background")
	switch {
	case hasShort && (!hasLong || short.beats(long)):
		v = shorthandColor(short.declaration)
	case hasLong:
		v = long.value
	}

	switch v {
	case "", "initial", "unset":
		return initialBackgroundColor
	case "inherit":
		if p := parentElement(n); p != nil {
			return d.backgroundColor(p)
		}
		return initialBackgroundColor
	case "currentcolor":
		return d.color(n)
	}
	return normalizeColor(v)
}

// shorthandColor returns the color set by a background shorthand. A
// shorthand without a color resets it to the initial value.
func shorthandColor(decl declaration) string {
	switch decl.value {
	case "inherit", "initial", "unset":
		return decl.value
	}
	for i := len(decl.parts) - 1; i >= 0; i-- {
		if part := decl.parts[i]; part == "currentcolor" || isColor(part) {
			return part
		}
	}
	return "initial"
}

// fontSize returns the computed font size of n in pixels.
func (d *Document) fontSize(n *html.Node) float64 {
	parent := initialFontSize
	if p := parentElement(n); p != nil {
		parent = d.fontSize(p)
	}

	v := d.specified(n, "font-size")
	if v == "" {
		if n.Data == "h1" {
			return parent * h1Scale(n)
		}
		if scale, ok := uaFontScale[n.Data]; ok {
			return parent * scale
		}
		return parent
	}

	switch v {
	case "inherit":
		return parent
	case "initial":
		return initialFontSize
	case "larger":
		return parent * 1.2
	case "smaller":
		return parent / 1.2
	}
	if px, ok := fontSizeKeywords[v]; ok {
		return px
	}

	for _, unit := range []struct {
		suffix string
		scale  func(float64) float64
	}{
		{"rem", func(x float64) float64 { return x * d.rootFontSize(n) }},
		{"px", func(x float64) float64 { return x }},
		{"em", func(x float64) float64 { return x * parent }},
		{"pt", func(x float64) float64 { return x * 4 / 3 }},
		{"%", func(x float64) float64 { return x / 100 * parent }},
	} {
		if num, ok := strings.CutSuffix(v, unit.suffix); ok {
			if x, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil && x >= 0 {
				return unit.scale(x)
			}
			break
		}
	}
	return parent
}

func (d *Document) rootFontSize(n *html.Node) float64 {
	root := n
	for p := parentElement(root); p != nil; p = parentElement(p) {
		root = p
	}
	if root == n {
		return initialFontSize
	}
	return d.fontSize(root)
}

func formatPx(px float64) string {
	return strconv.FormatFloat(math.Round(px*10000)/10000, 'f', -1, 64) + "px"
}
