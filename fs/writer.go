package fs

import (
	"context"
	"path/filepath"
	"strings"
)

// ReportPath maps a source page to its report file in dir.
// Example: ("out", "pages/bids.html", "json") → out/bids.json
func ReportPath(dir, source, ext string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "bids"
	}
	return filepath.Join(dir, base+"."+ext)
}

// Writer writes reports into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport atomically writes the report for source and returns its path.
func (w *Writer) WriteReport(ctx context.Context, source, ext string, data []byte) (string, error) {
	path := ReportPath(w.baseDir, source, ext)
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
