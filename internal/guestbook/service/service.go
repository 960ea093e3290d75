package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moby/locker"
	"github.com/rs/xid"

	"github.com/eventpage/guestbook/internal/guestbook"
	"github.com/eventpage/guestbook/internal/guestbook/repository"
	"github.com/eventpage/guestbook/pkg/logger"
	"github.com/eventpage/guestbook/pkg/metrics"
)

var (
	ErrValidation  = errors.New("name and message are required")
	ErrPersistence = repository.ErrPersistence
)

// Service defines the guestbook operations used by the handler layer.
type Service interface {
	// List returns the persisted Document. It never fails.
	List(ctx context.Context) guestbook.Document
	// Append validates and persists a new entry and returns every entry,
	// oldest first. Errors wrap ErrValidation or ErrPersistence.
	Append(ctx context.Context, name, text string) ([]guestbook.Entry, error)
}

var validate = validator.New()

type submission struct {
	Name string `validate:"required"`
	Text string `validate:"required"`
}

// NewService returns a Service over store. When serialize is true the
// load-modify-save sequence of Append holds a lock keyed by store.Key(),
// so appends within this process cannot overwrite each other. Without it
// two overlapping appends can lose one entry (last write wins).
func NewService(store repository.Store, serialize bool) Service {
	s := &guestbookService{store: store, now: time.Now}
	if serialize {
		s.locks = locker.New()
	}
	return s
}

// NewMemoryService returns a serialized Service backed by the in-memory repository.
func NewMemoryService() Service {
	return NewService(repository.NewMemoryRepo(), true)
}

type guestbookService struct {
	store repository.Store
	locks *locker.Locker
	now   func() time.Time
}

func (s *guestbookService) List(ctx context.Context) guestbook.Document {
	return s.store.Load(ctx)
}

func (s *guestbookService) Append(ctx context.Context, name, text string) ([]guestbook.Entry, error) {
	sub := submission{Name: strings.TrimSpace(name), Text: strings.TrimSpace(text)}
	if err := validate.Struct(sub); err != nil {
		metrics.AppendFailures.WithLabelValues("validation").Inc()
		return nil, ErrValidation
	}

	if s.locks != nil {
		key := s.store.Key()
		s.locks.Lock(key)
		defer func() { _ = s.locks.Unlock(key) }()
	}

	doc := s.store.Load(ctx)
	doc.Entries = append(doc.Entries, guestbook.Entry{
		ID:        xid.New().String(),
		Name:      sub.Name,
		Text:      sub.Text,
		CreatedAt: s.now().UTC().Format(guestbook.TimeFormat),
	})
	if err := s.store.Save(ctx, doc); err != nil {
		metrics.AppendFailures.WithLabelValues("persistence").Inc()
		logger.Errorf("guestbook append: %s store save failed: %v", s.store.Name(), err)
		if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil, err
	}
	metrics.EntriesAppended.Inc()
	logger.Debugf("guestbook append: stored entry %s (%d total)", doc.Entries[len(doc.Entries)-1].ID, len(doc.Entries))
	return doc.Entries, nil
}
