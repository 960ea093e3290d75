package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/xid"

	"github.com/eventpage/guestbook/internal/guestbook"
)

// MemoryRepo is an in-process store used by tests and local demos.
// Contents are lost on restart.
type MemoryRepo struct {
	mu  sync.RWMutex
	doc guestbook.Document
	key string

	// FailSave, when set, is returned (wrapped) by every Save.
	FailSave error
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{doc: guestbook.Empty(), key: "memory:" + xid.New().String()}
}

func (m *MemoryRepo) Name() string { return "memory" }

func (m *MemoryRepo) Key() string { return m.key }

func (m *MemoryRepo) Load(ctx context.Context) guestbook.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Clone()
}

func (m *MemoryRepo) Save(ctx context.Context, doc guestbook.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, m.FailSave)
	}
	m.doc = doc.Clone()
	return nil
}
