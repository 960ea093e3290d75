package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventpage/guestbook/internal/guestbook"
	"github.com/eventpage/guestbook/internal/guestbook/repository"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAppendAndList(t *testing.T) {
	t.Setenv("GUESTBOOK_ENV_FILE", "does-not-exist.env")
	file := filepath.Join(t.TempDir(), "messages.json")

	out, err := run(t, "--backend", "file", "--file", file, "append", "--name", "Ann", "--text", "Happy to join!")
	require.NoError(t, err)
	require.Contains(t, out, "(1 entries)")

	out, err = run(t, "--backend", "file", "--file", file, "ls", "-o", "json")
	require.NoError(t, err)
	var doc guestbook.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Entries, 1)
	require.Equal(t, "Ann", doc.Entries[0].Name)

	out, err = run(t, "--backend", "file", "--file", file, "ls")
	require.NoError(t, err)
	require.Contains(t, out, "Happy to join!")

	out, err = run(t, "--backend", "file", "--file", file, "ls", "-o", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "createdAt:")
}

func TestAppendRejectsEmptyName(t *testing.T) {
	t.Setenv("GUESTBOOK_ENV_FILE", "does-not-exist.env")
	file := filepath.Join(t.TempDir(), "messages.json")
	_, err := run(t, "--backend", "file", "--file", file, "append", "--text", "hello")
	require.Error(t, err)
}

func TestCopyFileToBolt(t *testing.T) {
	t.Setenv("GUESTBOOK_ENV_FILE", "does-not-exist.env")
	dir := t.TempDir()
	file := filepath.Join(dir, "messages.json")
	boltPath := filepath.Join(dir, "guestbook.bolt")
	t.Setenv("GUESTBOOK_BOLT_PATH", boltPath)

	_, err := run(t, "--file", file, "copy", "--from", "file", "--to", "bolt")
	require.Error(t, err, "empty source must be refused")

	_, err = run(t, "--backend", "file", "--file", file, "append", "--name", "Ann", "--text", "hi")
	require.NoError(t, err)

	out, err := run(t, "--file", file, "copy", "--from", "file", "--to", "bolt")
	require.NoError(t, err)
	require.Contains(t, out, "copied 1 entries")

	doc := repository.NewBoltStore(boltPath).Load(context.Background())
	require.Len(t, doc.Entries, 1)
	require.Equal(t, "Ann", doc.Entries[0].Name)
}

func TestCopyRequiresDistinctBackends(t *testing.T) {
	_, err := run(t, "copy", "--from", "file", "--to", "file")
	require.Error(t, err)
}
