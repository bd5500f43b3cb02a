package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagexport"
)

// Ensure LoggingExportService implements tagexport.ExportService.
var _ tagexport.ExportService = (*LoggingExportService)(nil)

// LoggingExportService wraps an ExportService with logging of every export.
type LoggingExportService struct {
	next   tagexport.ExportService
	logger *slog.Logger
}

// NewLoggingExportService creates a new LoggingExportService.
func NewLoggingExportService(next tagexport.ExportService, logger *slog.Logger) *LoggingExportService {
	return &LoggingExportService{next: next, logger: logger}
}

// Export logs the outcome of the export and delegates to the wrapped service.
func (s *LoggingExportService) Export(ctx context.Context, url string, tags tagexport.Selection) (export *tagexport.Export, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"tags", tags.String(),
			"duration", time.Since(begin),
		}
		if export != nil {
			attrs = append(attrs, "id", export.ID, "count", export.Count, "file", export.Filename)
		}
		if err != nil {
			attrs = append(attrs, "code", tagexport.ErrorCode(err), "err", err)
		}
		s.logger.Info("export", attrs...)
	}(time.Now())
	return s.next.Export(ctx, url, tags)
}
