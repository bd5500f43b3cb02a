// Package slog provides logging decorators for tagexport services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagexport"
)

// Ensure LoggingLoader implements tagexport.Loader.
var _ tagexport.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging of page loads.
type LoggingLoader struct {
	next   tagexport.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next tagexport.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load logs the URL being loaded and delegates to the wrapped loader.
func (l *LoggingLoader) Load(ctx context.Context, url string) (doc tagexport.Document, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}

// Close delegates to the wrapped loader.
func (l *LoggingLoader) Close() error {
	return l.next.Close()
}

// Ensure LoggingFetcher implements tagexport.Fetcher.
var _ tagexport.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of HTTP fetches.
type LoggingFetcher struct {
	next   tagexport.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tagexport.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
