// Package storage exports and imports raw buffer content.
//
// A FileStore abstracts where the bytes go: the local filesystem or any
// S3-compatible object store. Save writes the logical content of a
// FlexBuffer to a path and Load reads a path back into a new FlexBuffer,
// honouring the buffer's size ceiling.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading. The caller must close it.
	// A missing file yields an error wrapping os.ErrNotExist.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating any existing file.
	// Data is committed when the returned writer is closed.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// Save writes b.Bytes() to path and returns the number of bytes written.
// The buffer's cursor is not moved.
func Save(ctx context.Context, fs FileStore, path string, b *buffer.FlexBuffer) (int, error) {
	w, err := fs.Write(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("storage: save %s: %w", path, err)
	}
	n, err := w.Write(b.Bytes())
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("storage: save %s: %w", path, err)
	}
	return n, nil
}

// Load reads path into a new FlexBuffer configured by cfg and rewinds it.
// Content larger than the configured maximum fails with an error wrapping
// buffer.ErrLimitExceeded.
func Load(ctx context.Context, fs FileStore, path string, cfg *buffer.Config) (*buffer.FlexBuffer, error) {
	r, err := fs.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("storage: load %s: %w", path, err)
	}
	defer r.Close()

	b := buffer.NewFlex(cfg)
	if _, err := b.ReadFrom(r); err != nil {
		b.Close()
		return nil, fmt.Errorf("storage: load %s: %w", path, err)
	}
	b.MoveTo(0)
	return b, nil
}
