// Package fs provides file-based storage for exports.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tagexport"
)

// Ensure Writer implements tagexport.ExportWriter at compile time.
var _ tagexport.ExportWriter = (*Writer)(nil)

// Writer saves exports as CSV files in a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the file an export is written to.
func (w *Writer) Path(export *tagexport.Export) string {
	return filepath.Join(w.baseDir, export.Filename)
}

// maxCollisions bounds the alternative names tried for one export.
const maxCollisions = 100

// WriteExport writes the export's CSV to baseDir/<filename>. The file is
// written under a temporary name and linked into place once complete, so
// readers never see a partial export. An existing file is never replaced:
// on a name collision the export gets a suffix taken from its ID and
// export.Filename is updated to the name actually written.
func (w *Writer) WriteExport(ctx context.Context, export *tagexport.Export) error {
	if err := export.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(w.baseDir, "."+export.Filename+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(export.CSV); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	for i := 0; i < maxCollisions; i++ {
		name := collisionName(export, i)
		err := os.Link(tmp.Name(), filepath.Join(w.baseDir, name))
		if err == nil {
			export.Filename = name
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return err
		}
	}
	return tagexport.Errorf(tagexport.ECONFLICT, "too many exports named %q", export.Filename)
}

// collisionName returns the i-th candidate name for an export: the
// filename itself, then the filename with the first eight characters of
// the export ID, then that name with a counter.
func collisionName(export *tagexport.Export, i int) string {
	if i == 0 {
		return export.Filename
	}
	ext := filepath.Ext(export.Filename)
	stem := strings.TrimSuffix(export.Filename, ext)

	id := export.ID
	if len(id) > 8 {
		id = id[:8]
	}
	switch {
	case id == "":
		return fmt.Sprintf("%s-%d%s", stem, i+1, ext)
	case i == 1:
		return stem + "-" + id + ext
	default:
		return fmt.Sprintf("%s-%s-%d%s", stem, id, i, ext)
	}
}
