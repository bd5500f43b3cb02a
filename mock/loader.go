package mock

import (
	"context"

	"github.com/fwojciec/tagexport"
)

var _ tagexport.Loader = (*Loader)(nil)

// Loader is a mock implementation of tagexport.Loader.
type Loader struct {
	LoadFn  func(ctx context.Context, url string) (tagexport.Document, error)
	CloseFn func() error
}

func (l *Loader) Load(ctx context.Context, url string) (tagexport.Document, error) {
	return l.LoadFn(ctx, url)
}

func (l *Loader) Close() error {
	return l.CloseFn()
}
