package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const tmpSuffix = ".tmp"

// FileBackend keeps the snapshot in a single JSON file.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Name() string {
	return "file:" + b.path
}

func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	info, err := os.Stat(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: data path is a directory: %s", ErrStorageUnavailable, b.path)
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return data, nil
}

// Write saves data to a temp file next to the target and renames it into
// place, so readers see either the old or the new snapshot.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ensureDir(filepath.Dir(b.path)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	tmpFile := b.path + tmpSuffix
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpFile, b.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
