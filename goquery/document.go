// Package goquery implements tagexport.Document over static HTML.
//
// No rendering engine is involved: visible text and styles are derived
// from the markup, the document's <style> sheets and inline style
// attributes. External stylesheets and scripts are ignored.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tagexport"
	"golang.org/x/net/html"
)

// Ensure Document implements tagexport.Document at compile time.
var _ tagexport.Document = (*Document)(nil)

// Document is a parsed static HTML page.
type Document struct {
	doc   *goquery.Document
	base  *url.URL
	sheet *stylesheet
}

// NewDocument parses html. Relative URLs resolve against the document's
// <base href> or, when absent, against baseURL.
func NewDocument(htmlStr string, baseURL string) (*Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, tagexport.Errorf(tagexport.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, tagexport.Errorf(tagexport.EINVALID, "failed to parse HTML: %v", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = u
		}
	}

	sheet := &stylesheet{}
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sheet.add(s.Text())
	})

	return &Document{
		doc:   doc,
		base:  base,
		sheet: sheet,
	}, nil
}

// Elements returns every element in document order.
func (d *Document) Elements() ([]tagexport.Node, error) {
	sel := d.doc.Find("*")
	nodes := make([]tagexport.Node, 0, sel.Length())
	for _, n := range sel.Nodes {
		nodes = append(nodes, &Node{n: n, doc: d})
	}
	return nodes, nil
}

// Ensure Node implements tagexport.Node at compile time.
var _ tagexport.Node = (*Node)(nil)

// Node is an element of a static Document.
type Node struct {
	n   *html.Node
	doc *Document
}

func (n *Node) TagName() string {
	return strings.ToLower(n.n.Data)
}

// VisibleText approximates innerText: hidden subtrees are left out, block
// boundaries become line breaks and whitespace runs collapse.
func (n *Node) VisibleText() (string, error) {
	if !n.doc.rendered(n.n) {
		return goquery.NewDocumentFromNode(n.n).Text(), nil
	}
	return n.doc.visibleText(n.n), nil
}

func (n *Node) Attribute(name string) (string, bool, error) {
	v, ok := attr(n.n, name)
	return v, ok, nil
}

// ResolvedURL resolves the attribute value against the document base URL.
// Values that cannot be parsed are returned unchanged.
func (n *Node) ResolvedURL(name string) (string, error) {
	v, ok := attr(n.n, name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", nil
	}
	u, err := n.doc.base.Parse(v)
	if err != nil {
		return v, nil
	}
	return u.String(), nil
}

func (n *Node) ComputedStyle(property string) (string, error) {
	return n.doc.computedStyle(n.n, property), nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
