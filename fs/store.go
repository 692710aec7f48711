// Package fs provides file-based storage for listing pages and reports.
package fs

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure Store implements bidfilter.DocumentStore at compile time.
var _ bidfilter.DocumentStore = (*Store)(nil)

// Store loads listing pages from disk and saves them back atomically.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load parses the HTML file at path.
func (s *Store) Load(ctx context.Context, path string) (*html.Node, error) {
	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, bidfilter.Errorf(bidfilter.ENOTFOUND, "page not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return html.Parse(f)
}

// Save renders doc and replaces path with it atomically.
func (s *Store) Save(ctx context.Context, path string, doc *html.Node) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile writes data to a temporary file next to path and renames it
// over path, so readers never observe a partial write. An existing file's
// permissions are kept.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	perm := iofs.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
