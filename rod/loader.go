// Package rod loads live pages in headless Chrome so elements can be
// extracted with their computed styles.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tagexport"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds navigation and load of a single page.
const DefaultTimeout = 10 * time.Second

// Ensure Loader implements tagexport.Loader at compile time.
var _ tagexport.Loader = (*Loader)(nil)

// Loader opens pages in a managed headless Chrome browser.
// Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the navigation timeout per page.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithRecycleAfter sets how many pages are opened before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(l *Loader) {
		l.maxPages = n
	}
}

// NewLoader creates a Loader backed by a freshly launched browser.
// Close must be called when the Loader is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{
		timeout:  DefaultTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(l)
	}

	manager, err := NewBrowserManager(WithMaxPages(l.maxPages))
	if err != nil {
		return nil, err
	}
	l.manager = manager
	return l, nil
}

// Load navigates a new tab to url and waits for the page to load.
// The returned Document keeps the tab open until it is closed.
func (l *Loader) Load(ctx context.Context, url string) (tagexport.Document, error) {
	if l.closed.Load() {
		return nil, tagexport.Errorf(tagexport.EINVALID, "loader closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := l.manager.Acquire().Page(proto.TargetCreateTarget{})
	if err != nil {
		l.manager.Release()
		return nil, err
	}
	p := &Page{tab: page, release: l.manager.Release}

	loading := page.Context(ctx).Timeout(l.timeout)
	if err := loading.Navigate(url); err != nil {
		_ = p.Close()
		return nil, err
	}
	if err := loading.WaitLoad(); err != nil {
		_ = p.Close()
		return nil, err
	}

	p.page = loading.CancelTimeout()
	return p, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (l *Loader) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (l *Loader) LauncherPID() int {
	return l.manager.LauncherPID()
}
