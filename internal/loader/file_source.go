package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSource reads resources from a directory tree
type FileSource struct {
	fsys fs.FS
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return NewFSSource(os.DirFS(dir))
}

// NewFSSource creates a source over an arbitrary file system
func NewFSSource(fsys fs.FS) *FileSource {
	return &FileSource{fsys: fsys}
}

// Method returns the source type
func (s *FileSource) Method() string {
	return "file"
}

// Fetch implements the Source interface
func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Cleanup implements the Source interface
func (s *FileSource) Cleanup() error {
	return nil
}
