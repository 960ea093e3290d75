package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventpage/guestbook/internal/guestbook"
	"github.com/eventpage/guestbook/internal/storage"
)

// ObjectClient is the subset of the object storage client used by ObjectStore.
// *storage.MinIOStorage satisfies it.
type ObjectClient interface {
	Bucket() string
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

// ObjectStore keeps the Document as a JSON object in a bucket.
type ObjectStore struct {
	client ObjectClient
	key    string
}

func NewObjectStore(client ObjectClient, key string) *ObjectStore {
	if key == "" {
		key = "guestbook/messages.json"
	}
	return &ObjectStore{client: client, key: key}
}

func (o *ObjectStore) Name() string { return "minio" }

func (o *ObjectStore) Key() string { return "minio:" + o.client.Bucket() + "/" + o.key }

func (o *ObjectStore) Ping(ctx context.Context) error { return o.client.Ping(ctx) }

func (o *ObjectStore) Load(ctx context.Context) guestbook.Document {
	b, err := o.client.Download(ctx, o.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return guestbook.Empty()
		}
		return degrade(o.Name(), err)
	}
	doc, err := guestbook.Decode(b)
	if err != nil {
		return degrade(o.Name(), fmt.Errorf("decode %s: %w", o.key, err))
	}
	return doc
}

func (o *ObjectStore) Save(ctx context.Context, doc guestbook.Document) error {
	b, err := guestbook.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := o.client.Upload(ctx, o.key, b, "application/json"); err != nil {
		return fmt.Errorf("%w: upload %s: %v", ErrPersistence, o.key, err)
	}
	return nil
}
