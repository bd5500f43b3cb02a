package goquery

import (
	"context"

	"github.com/fwojciec/tagexport"
)

// Ensure Loader implements tagexport.Loader at compile time.
var _ tagexport.Loader = (*Loader)(nil)

// Loader fetches raw HTML and parses it into a static Document.
// Pages that build their content with JavaScript need the rod loader.
type Loader struct {
	fetcher tagexport.Fetcher
}

// NewLoader creates a Loader that retrieves pages with fetcher.
func NewLoader(fetcher tagexport.Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load fetches url and parses the response, resolving relative URLs
// against url.
func (l *Loader) Load(ctx context.Context, url string) (tagexport.Document, error) {
	html, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(html, url)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Close closes the underlying fetcher.
func (l *Loader) Close() error {
	return l.fetcher.Close()
}
