// Package ingest turns a dropped or picked local file into an embedded
// data: URI and inserts it into the document.
package ingest

import (
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoFile is returned when a drop or pick carries no file.
	ErrNoFile = errors.New("no file")
	// ErrNotImage is returned for a file whose declared type is not image/*.
	ErrNotImage = errors.New("not an image")
)

// File is a candidate for embedding. Type is the declared MIME type, which
// is trusted as-is; content is never sniffed.
type File interface {
	Name() string
	Type() string
	Open() (io.ReadCloser, error)
}

// DataTransfer is what a drop delivers.
type DataTransfer struct {
	Files []File
}

// DiskFile is a File backed by a path. Its type comes from the extension.
type DiskFile struct {
	Path string
}

func (f DiskFile) Name() string { return filepath.Base(f.Path) }

func (f DiskFile) Type() string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Path)))
	if t == "" {
		return "application/octet-stream"
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mt
}

func (f DiskFile) Open() (io.ReadCloser, error) { return os.Open(f.Path) }

// IsImageType reports whether a MIME type names an image.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}

// Check returns ErrNoFile or ErrNotImage when f may not be embedded.
func Check(f File) error {
	if f == nil {
		return ErrNoFile
	}
	if !IsImageType(f.Type()) {
		return ErrNotImage
	}
	return nil
}
