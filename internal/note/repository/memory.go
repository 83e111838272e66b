package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used by unit tests and local runs
// without a database.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*note.Note
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]*note.Note), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) Create(ctx context.Context, n *note.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = m.now()
	n.UpdatedAt = n.CreatedAt
	m.store[n.ID] = clone(n)
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return clone(n), nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*note.Note, 0, len(m.store))
	for _, n := range m.store {
		out = append(out, clone(n))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p note.Patch) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	p.Apply(n)
	n.UpdatedAt = m.now()
	return clone(n), nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	delete(m.store, n.ID)
	return nil
}

// lookup must be called with the lock held.
func (m *MemoryRepo) lookup(id string) (*note.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	n, ok := m.store[oid]
	if !ok {
		return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	return n, nil
}

func clone(n *note.Note) *note.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	return &c
}
