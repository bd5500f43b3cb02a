package tagexport

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// MaxFilenameStem is the maximum length of the page-derived part of a filename.
const MaxFilenameStem = 50

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// Export is the result of extracting one page.
type Export struct {
	ID        string
	URL       string
	Filename  string
	Count     int
	CSV       string
	CreatedAt time.Time
}

// Validate returns an error if the export contains invalid fields.
func (e *Export) Validate() error {
	if e.Filename == "" {
		return Errorf(EINVALID, "export filename required")
	}
	if strings.ContainsAny(e.Filename, `/\`) {
		return Errorf(EINVALID, "export filename %q must not contain path separators", e.Filename)
	}
	return nil
}

// Filename builds the export filename for a page: host and path with
// slashes turned into underscores, stripped to [A-Za-z0-9_-] and cut to
// MaxFilenameStem characters, followed by "_tags_" and a UTC timestamp.
func Filename(pageURL string, now time.Time) string {
	var stem string
	if u, err := url.Parse(pageURL); err == nil {
		stem = u.Hostname() + strings.ReplaceAll(u.EscapedPath(), "/", "_")
	}
	stem = unsafeFilenameRe.ReplaceAllString(stem, "")
	if len(stem) > MaxFilenameStem {
		stem = stem[:MaxFilenameStem]
	}
	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return stem + "_tags_" + ts + ".csv"
}

// Loader opens pages as Documents.
// A Document returned by Load may implement io.Closer, in which case the
// caller must close it once extraction is done.
type Loader interface {
	Load(ctx context.Context, url string) (Document, error)

	// Close releases resources held by the loader.
	Close() error
}

// ExportWriter persists exports.
type ExportWriter interface {
	WriteExport(ctx context.Context, export *Export) error
}

// ExportService extracts pages and persists the results.
type ExportService interface {
	// Export extracts the selected tags from the page at url.
	// Returns ENOTFOUND when no element matched.
	Export(ctx context.Context, url string, tags Selection) (*Export, error)
}
