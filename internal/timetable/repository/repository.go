package repository

import (
	"context"

	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
)

// Repository stores one timetable per author. Both writes are single upserts,
// so concurrent first requests for the same author end with one document.
type Repository interface {
	// GetOrCreate returns the author's timetable, creating it with the
	// default week when none exists.
	GetOrCreate(ctx context.Context, author string) (*timetable.Timetable, error)
	// Save replaces the author's schedule, creating the timetable if needed.
	Save(ctx context.Context, author string, schedule []timetable.DaySchedule) (*timetable.Timetable, error)
	List(ctx context.Context) ([]*timetable.Timetable, error)
}
