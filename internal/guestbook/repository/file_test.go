package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/eventpage/guestbook/internal/guestbook"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStoreFs(afero.NewMemMapFs(), "data/messages.json")
	doc := s.Load(context.Background())
	require.NotNil(t, doc.Entries)
	require.Empty(t, doc.Entries)
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "messages.json", []byte("{not json"), 0o644))
	s := NewFileStoreFs(fsys, "messages.json")
	require.Empty(t, s.Load(context.Background()).Entries)
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := NewFileStoreFs(fsys, "data/nested/messages.json")
	doc := guestbook.Document{Entries: []guestbook.Entry{
		{ID: "1", Name: "Ann", Text: "hi", CreatedAt: "2026-10-17T10:00:00Z"},
		{ID: "2", Name: "Bob", Text: "hey", CreatedAt: "2026-10-17T10:01:00Z"},
	}}
	require.NoError(t, s.Save(ctx, doc))
	require.Equal(t, doc, s.Load(ctx))

	raw, err := afero.ReadFile(fsys, "data/nested/messages.json")
	require.NoError(t, err)
	require.Contains(t, string(raw), `"entries"`)
	require.Contains(t, string(raw), "\n  ")
}

func TestFileStoreRewritesLegacyFile(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	legacy := `{"messages":[{"_id":"1","name":"Ann","message":"hi","createdAt":"October 1, 2026 at 10:00 AM"}]}`
	require.NoError(t, afero.WriteFile(fsys, "messages.json", []byte(legacy), 0o644))
	s := NewFileStoreFs(fsys, "messages.json")

	doc := s.Load(ctx)
	require.Len(t, doc.Entries, 1)
	require.NoError(t, s.Save(ctx, doc))

	raw, err := afero.ReadFile(fsys, "messages.json")
	require.NoError(t, err)
	require.NotContains(t, string(raw), "messages")
	require.Contains(t, string(raw), `"text": "hi"`)
}

func TestFileStoreSaveFailure(t *testing.T) {
	s := NewFileStoreFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), "messages.json")
	err := s.Save(context.Background(), guestbook.Empty())
	require.ErrorIs(t, err, ErrPersistence)
}

func TestFileStoreOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "messages.json")
	s := NewFileStore(path)
	require.Empty(t, s.Load(ctx).Entries)

	doc := guestbook.Document{Entries: []guestbook.Entry{{ID: "1", Name: "Ann", Text: "hi"}}}
	require.NoError(t, s.Save(ctx, doc))
	_, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, doc, s.Load(ctx))
	require.Equal(t, "file:"+path, s.Key())
}
