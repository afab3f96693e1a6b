package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const filePermission = 0o600

type fileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend stores the document as a JSON file, replaced atomically through a rename.
func NewFileBackend(path string) (Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &fileBackend{path: path}, nil
}

func (f *fileBackend) ReadDocument(_ context.Context) (*Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read()
}

func (f *fileBackend) read() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	return Decode(data)
}

func (f *fileBackend) WriteDocument(_ context.Context, doc *Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}

	if current.Version != doc.Version {
		return ErrVersionConflict
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Chmod(tmp.Name(), filePermission); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	doc.Version++

	return nil
}

func (f *fileBackend) Close() error {
	return nil
}
