// Package export ties page loading, extraction and persistence together.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/tagexport"
	"github.com/google/uuid"
)

// Ensure Service implements tagexport.ExportService at compile time.
var _ tagexport.ExportService = (*Service)(nil)

// Service extracts a page and hands the CSV to a writer.
// Service holds no per-call state and is safe for concurrent use.
type Service struct {
	Loader tagexport.Loader
	Writer tagexport.ExportWriter

	// Now returns the export time. Defaults to time.Now.
	Now func() time.Time
}

// Export loads the page at url, extracts the selected tags and writes the
// result. Returns ENOTFOUND when no element matched.
func (s *Service) Export(ctx context.Context, url string, tags tagexport.Selection) (*tagexport.Export, error) {
	if tags.Len() == 0 {
		return nil, tagexport.Errorf(tagexport.EINVALID, "select at least one tag")
	}

	elements, err := s.extract(ctx, url, tags)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, tagexport.Errorf(tagexport.ENOTFOUND, "no matching elements found")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	createdAt := now()

	export := &tagexport.Export{
		ID:        uuid.NewString(),
		URL:       url,
		Filename:  tagexport.Filename(url, createdAt),
		Count:     len(elements),
		CSV:       tagexport.ToCSV(elements),
		CreatedAt: createdAt,
	}
	if err := s.Writer.WriteExport(ctx, export); err != nil {
		return nil, fmt.Errorf("writing export: %w", err)
	}
	return export, nil
}

func (s *Service) extract(ctx context.Context, url string, tags tagexport.Selection) ([]*tagexport.ExtractedElement, error) {
	doc, err := s.Loader.Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}
	if c, ok := doc.(io.Closer); ok {
		defer c.Close()
	}

	return tagexport.Extract(doc, tags)
}
