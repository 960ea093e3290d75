package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/eventpage/guestbook/internal/guestbook"
)

// FileStore keeps the Document in a single JSON file.
// There is no partial-write protocol: Save truncates and rewrites the file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a store for path on the OS filesystem.
func NewFileStore(path string) *FileStore {
	return NewFileStoreFs(afero.NewOsFs(), path)
}

// NewFileStoreFs returns a store for path on the given filesystem.
func NewFileStoreFs(fsys afero.Fs, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Key() string { return "file:" + s.path }

func (s *FileStore) Load(ctx context.Context) guestbook.Document {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// nobody has signed yet
			return guestbook.Empty()
		}
		return degrade(s.Name(), err)
	}
	doc, err := guestbook.Decode(b)
	if err != nil {
		return degrade(s.Name(), fmt.Errorf("decode %s: %w", s.path, err))
	}
	return doc
}

func (s *FileStore) Save(ctx context.Context, doc guestbook.Document) error {
	b, err := guestbook.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", ErrPersistence, dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, b, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}
