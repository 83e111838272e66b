package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepo struct {
	mu       sync.Mutex
	byAuthor map[string]*timetable.Timetable
	now      func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byAuthor: make(map[string]*timetable.Timetable), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) GetOrCreate(ctx context.Context, author string) (*timetable.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.ensure(author)), nil
}

func (m *MemoryRepo) Save(ctx context.Context, author string, schedule []timetable.DaySchedule) (*timetable.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tt := m.ensure(author)
	tt.Schedule = cloneSchedule(schedule)
	tt.UpdatedAt = m.now()
	return clone(tt), nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*timetable.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*timetable.Timetable, 0, len(m.byAuthor))
	for _, tt := range m.byAuthor {
		out = append(out, clone(tt))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Author < out[j].Author })
	return out, nil
}

// ensure must be called with the lock held.
func (m *MemoryRepo) ensure(author string) *timetable.Timetable {
	if tt, ok := m.byAuthor[author]; ok {
		return tt
	}
	now := m.now()
	tt := &timetable.Timetable{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Schedule:  timetable.DefaultSchedule(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.byAuthor[author] = tt
	return tt
}

func clone(tt *timetable.Timetable) *timetable.Timetable {
	c := *tt
	c.Schedule = cloneSchedule(tt.Schedule)
	return &c
}

func cloneSchedule(s []timetable.DaySchedule) []timetable.DaySchedule {
	out := make([]timetable.DaySchedule, len(s))
	for i, d := range s {
		out[i] = timetable.DaySchedule{Day: d.Day, Slots: append([]timetable.TimeSlot{}, d.Slots...)}
	}
	return out
}
