package repository

import (
	"context"

	"github.com/studyhub/studyhub/backend/go-services/internal/note"
)

// Repository persists notes. Lookups of unknown or malformed ids return an
// error wrapping apperr.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, n *note.Note) error
	Get(ctx context.Context, id string) (*note.Note, error)
	// List returns all notes, most recently updated first.
	List(ctx context.Context) ([]*note.Note, error)
	Update(ctx context.Context, id string, p note.Patch) (*note.Note, error)
	Delete(ctx context.Context, id string) error
}
