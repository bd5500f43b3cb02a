package mock

import (
	"context"

	"github.com/fwojciec/tagexport"
)

var _ tagexport.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of tagexport.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(ctx context.Context, export *tagexport.Export) error
}

func (w *ExportWriter) WriteExport(ctx context.Context, export *tagexport.Export) error {
	return w.WriteExportFn(ctx, export)
}

var _ tagexport.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of tagexport.ExportService.
type ExportService struct {
	ExportFn func(ctx context.Context, url string, tags tagexport.Selection) (*tagexport.Export, error)
}

func (s *ExportService) Export(ctx context.Context, url string, tags tagexport.Selection) (*tagexport.Export, error) {
	return s.ExportFn(ctx, url, tags)
}
