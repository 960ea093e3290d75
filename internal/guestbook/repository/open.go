package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eventpage/guestbook/internal/config"
	"github.com/eventpage/guestbook/internal/database"
	"github.com/eventpage/guestbook/internal/storage"
)

// Open builds the Store selected by cfg.Guestbook.Backend. The returned
// close function releases any client the store holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Guestbook.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Guestbook.DataFile), noop, nil
	case config.BackendMemory:
		return NewMemoryRepo(), noop, nil
	case config.BackendBolt:
		return NewBoltStore(cfg.Guestbook.BoltPath), noop, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr(), err)
		}
		return NewRedisStore(client, cfg.Guestbook.RedisKey), client.Close, nil
	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.Guestbook.MongoCollection)
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return NewMongoRepo(col, cfg.Guestbook.DocumentID), closeFn, nil
	case config.BackendMinIO:
		mc := cfg.MinIO
		st, err := storage.NewMinIOStorage(ctx, &mc)
		if err != nil {
			return nil, noop, err
		}
		return NewObjectStore(st, cfg.Guestbook.ObjectKey), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown guestbook backend %q", cfg.Guestbook.Backend)
}
