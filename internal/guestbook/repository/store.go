package repository

import (
	"context"
	"errors"

	"github.com/eventpage/guestbook/internal/guestbook"
	"github.com/eventpage/guestbook/pkg/logger"
	"github.com/eventpage/guestbook/pkg/metrics"
)

var (
	// ErrPersistence is wrapped by every Save failure.
	ErrPersistence = errors.New("failed to save guestbook")
)

// Store owns the persisted guestbook Document.
//
// Load never fails: an absent, unreadable or corrupt backing resource is an
// empty Document. Save overwrites the whole Document and returns an error
// wrapping ErrPersistence when the write cannot complete.
type Store interface {
	Load(ctx context.Context) guestbook.Document
	Save(ctx context.Context, doc guestbook.Document) error
	// Name is the backend name used in logs and metrics.
	Name() string
	// Key identifies the backing resource; writers to the same key
	// share one lock.
	Key() string
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// degrade logs a read failure and returns an empty Document.
func degrade(backend string, err error) guestbook.Document {
	logger.Warnf("guestbook %s store: load failed, using empty document: %v", backend, err)
	metrics.StoreLoadErrors.WithLabelValues(backend).Inc()
	return guestbook.Empty()
}
