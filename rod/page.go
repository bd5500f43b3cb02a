package rod

import (
	"sync"

	"github.com/fwojciec/tagexport"
	"github.com/go-rod/rod"
)

const (
	tagNamesJS      = `() => Array.from(document.querySelectorAll('*'), e => e.tagName.toLowerCase())`
	computedStyleJS = `(p) => getComputedStyle(this).getPropertyValue(p)`
)

// Ensure Page implements tagexport.Document at compile time.
var _ tagexport.Document = (*Page)(nil)

// Page is a loaded browser tab.
type Page struct {
	page    *rod.Page // bound to the Load context
	tab     *rod.Page
	release func()
	once    sync.Once
}

// Elements returns every element of the live DOM in document order.
func (p *Page) Elements() ([]tagexport.Node, error) {
	res, err := p.page.Eval(tagNamesJS)
	if err != nil {
		return nil, err
	}
	names := res.Value.Arr()

	elements, err := p.page.Elements("*")
	if err != nil {
		return nil, err
	}
	if len(elements) != len(names) {
		return nil, tagexport.Errorf(tagexport.ECONFLICT, "document changed during traversal")
	}

	nodes := make([]tagexport.Node, len(elements))
	for i, el := range elements {
		nodes[i] = &Node{el: el, tag: names[i].Str()}
	}
	return nodes, nil
}

// Close closes the tab. Close is safe to call multiple times.
func (p *Page) Close() error {
	var err error
	p.once.Do(func() {
		err = p.tab.Close()
		if p.release != nil {
			p.release()
		}
	})
	return err
}

// Ensure Node implements tagexport.Node at compile time.
var _ tagexport.Node = (*Node)(nil)

// Node is an element handle of a live page.
type Node struct {
	el  *rod.Element
	tag string
}

func (n *Node) TagName() string {
	return n.tag
}

// VisibleText returns the element's innerText.
func (n *Node) VisibleText() (string, error) {
	return n.el.Text()
}

func (n *Node) Attribute(name string) (string, bool, error) {
	v, err := n.el.Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

// ResolvedURL reads the DOM property backing attr, which the browser
// resolves against the document base URL.
func (n *Node) ResolvedURL(attr string) (string, error) {
	v, err := n.el.Property(attr)
	if err != nil {
		return "", err
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

func (n *Node) ComputedStyle(property string) (string, error) {
	res, err := n.el.Eval(computedStyleJS, property)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}
