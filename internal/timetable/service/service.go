package service

import (
	"context"
	"strings"

	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
	"github.com/studyhub/studyhub/backend/go-services/internal/timetable/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	repo repository.Repository
	ids  identity.Provider
}

func NewService(r repository.Repository, ids identity.Provider) *Service {
	return &Service{repo: r, ids: ids}
}

func NewMemoryService(ids identity.Provider) *Service {
	return NewService(repository.NewMemoryRepo(), ids)
}

func NewMongoService(col *mongo.Collection, ids identity.Provider) *Service {
	return NewService(repository.NewMongoRepo(col), ids)
}

// Get returns the current actor's timetable, initialising it on first use.
func (s *Service) Get(ctx context.Context) (*timetable.Timetable, error) {
	return s.repo.GetOrCreate(ctx, s.ids.Actor(ctx))
}

// Save replaces the current actor's schedule as a whole.
func (s *Service) Save(ctx context.Context, schedule []timetable.DaySchedule) (*timetable.Timetable, error) {
	clean := make([]timetable.DaySchedule, 0, len(schedule))
	for _, d := range schedule {
		slots := d.Slots
		if slots == nil {
			slots = []timetable.TimeSlot{}
		}
		clean = append(clean, timetable.DaySchedule{Day: strings.TrimSpace(d.Day), Slots: slots})
	}
	return s.repo.Save(ctx, s.ids.Actor(ctx), clean)
}

// ListAll returns every stored timetable. Used for snapshots.
func (s *Service) ListAll(ctx context.Context) ([]*timetable.Timetable, error) {
	return s.repo.List(ctx)
}
