// Package fs implements the filesystem reader adapter.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileReader = (*Reader)(nil)

// Reader implements ports.FileReader on the local filesystem.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadText returns the file's content. A missing file is reported with
// present=false and a nil error.
func (r *Reader) ReadText(path string) (string, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the user's manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return string(data), true, nil
}

// SiblingPath derives the path of a file living next to base.
func (r *Reader) SiblingPath(base, name string) string {
	return filepath.Join(filepath.Dir(base), name)
}
