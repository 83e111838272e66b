package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps doubts in a map. Used by tests and database-less runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*doubt.Doubt
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]*doubt.Doubt), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) Create(ctx context.Context, d *doubt.Doubt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = m.now()
	d.UpdatedAt = d.CreatedAt
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Answers == nil {
		d.Answers = []doubt.Answer{}
	}
	m.store[d.ID] = clone(d)
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*doubt.Doubt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return clone(d), nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*doubt.Doubt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*doubt.Doubt, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, clone(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (m *MemoryRepo) AddAnswer(ctx context.Context, id string, a doubt.Answer) (*doubt.Doubt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	now := m.now()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	d.Answers = append(d.Answers, a)
	d.UpdatedAt = now
	return clone(d), nil
}

func (m *MemoryRepo) SetResolved(ctx context.Context, id string, resolved bool) (*doubt.Doubt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	d.IsResolved = resolved
	d.UpdatedAt = m.now()
	return clone(d), nil
}

// lookup must be called with the lock held.
func (m *MemoryRepo) lookup(id string) (*doubt.Doubt, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
	}
	d, ok := m.store[oid]
	if !ok {
		return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
	}
	return d, nil
}

func clone(d *doubt.Doubt) *doubt.Doubt {
	c := *d
	c.Tags = append([]string{}, d.Tags...)
	c.Answers = append([]doubt.Answer{}, d.Answers...)
	return &c
}
