package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eventpage/guestbook/internal/guestbook"
)

// RedisStore keeps the Document as a JSON string under a single key with no TTL.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "guestbook:document"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) Key() string { return "redis:" + r.key }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Load(ctx context.Context) guestbook.Document {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return guestbook.Empty()
		}
		return degrade(r.Name(), err)
	}
	doc, err := guestbook.Decode(b)
	if err != nil {
		return degrade(r.Name(), fmt.Errorf("decode %s: %w", r.key, err))
	}
	return doc
}

func (r *RedisStore) Save(ctx context.Context, doc guestbook.Document) error {
	b, err := guestbook.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", ErrPersistence, r.key, err)
	}
	return nil
}
