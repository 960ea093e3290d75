package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/eventpage/guestbook/internal/guestbook"
)

var (
	boltBucket = []byte("guestbook")
	boltKey    = []byte("document")
)

// BoltStore keeps the Document as one JSON value in a bbolt file.
// The database is opened per operation so the file is not held between requests.
type BoltStore struct {
	path string
}

func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

func (b *BoltStore) Name() string { return "bolt" }

func (b *BoltStore) Key() string { return "bolt:" + b.path }

func (b *BoltStore) Load(ctx context.Context) guestbook.Document {
	if _, err := os.Stat(b.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return guestbook.Empty()
		}
		return degrade(b.Name(), err)
	}
	db, err := bolt.Open(b.path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return degrade(b.Name(), err)
	}
	defer func() { _ = db.Close() }()

	var raw []byte
	err = db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(boltBucket)
		if bk == nil {
			return nil
		}
		if v := bk.Get(boltKey); v != nil {
			// v is only valid inside the transaction
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return degrade(b.Name(), err)
	}
	if raw == nil {
		return guestbook.Empty()
	}
	doc, err := guestbook.Decode(raw)
	if err != nil {
		return degrade(b.Name(), fmt.Errorf("decode %s: %w", b.path, err))
	}
	return doc
}

func (b *BoltStore) Save(ctx context.Context, doc guestbook.Document) error {
	enc, err := guestbook.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", ErrPersistence, err)
	}
	db, err := bolt.Open(b.path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrPersistence, b.path, err)
	}
	defer func() { _ = db.Close() }()
	err = db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bk.Put(boltKey, enc)
	})
	if err != nil {
		return fmt.Errorf("%w: bolt put: %v", ErrPersistence, err)
	}
	return nil
}
