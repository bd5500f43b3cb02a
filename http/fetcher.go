// Package http fetches raw HTML over HTTP for the static page loader.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/tagexport"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultTimeout.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched page.
const DefaultMaxBytes = 10 << 20

// UserAgent identifies requests made by the fetcher.
const UserAgent = "tagexport/1.0"

// Ensure Fetcher implements tagexport.Fetcher at compile time.
var _ tagexport.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with plain HTTP requests. It does not execute
// JavaScript, so it only suits pages rendered on the server.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest response body accepted.
// Defaults to DefaultMaxBytes if not specified.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML served at url.
// Responses other than 200 OK and non-HTML content types are errors.
// Client errors carry ENOTFOUND or EINVALID; server errors are internal.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", tagexport.Errorf(tagexport.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", tagexport.Errorf(tagexport.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", tagexport.Errorf(tagexport.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil && mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return "", tagexport.Errorf(tagexport.EINVALID, "%s is %s, not HTML", url, mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", tagexport.Errorf(tagexport.EINVALID, "%s exceeds %d bytes", url, f.maxBytes)
	}

	return string(body), nil
}

// Close is a no-op; http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
