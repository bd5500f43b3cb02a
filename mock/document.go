package mock

import "github.com/fwojciec/tagexport"

var _ tagexport.Document = (*Document)(nil)

// Document is a mock implementation of tagexport.Document.
type Document struct {
	ElementsFn func() ([]tagexport.Node, error)
	CloseFn    func() error
}

func (d *Document) Elements() ([]tagexport.Node, error) {
	return d.ElementsFn()
}

// Close calls CloseFn when set, which lets tests observe document release.
func (d *Document) Close() error {
	if d.CloseFn == nil {
		return nil
	}
	return d.CloseFn()
}

var _ tagexport.Node = (*Node)(nil)

// Node is a mock implementation of tagexport.Node.
type Node struct {
	TagNameFn       func() string
	VisibleTextFn   func() (string, error)
	AttributeFn     func(name string) (string, bool, error)
	ResolvedURLFn   func(attr string) (string, error)
	ComputedStyleFn func(property string) (string, error)
}

func (n *Node) TagName() string {
	return n.TagNameFn()
}

func (n *Node) VisibleText() (string, error) {
	return n.VisibleTextFn()
}

func (n *Node) Attribute(name string) (string, bool, error) {
	return n.AttributeFn(name)
}

func (n *Node) ResolvedURL(attr string) (string, error) {
	return n.ResolvedURLFn(attr)
}

func (n *Node) ComputedStyle(property string) (string, error) {
	return n.ComputedStyleFn(property)
}
