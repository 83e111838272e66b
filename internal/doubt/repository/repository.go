package repository

import (
	"context"

	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
)

// Repository persists doubts and their answers.
type Repository interface {
	Create(ctx context.Context, d *doubt.Doubt) error
	Get(ctx context.Context, id string) (*doubt.Doubt, error)
	List(ctx context.Context) ([]*doubt.Doubt, error)
	// AddAnswer appends a to the doubt's answers in one step and returns the
	// updated doubt.
	AddAnswer(ctx context.Context, id string, a doubt.Answer) (*doubt.Doubt, error)
	SetResolved(ctx context.Context, id string, resolved bool) (*doubt.Doubt, error)
}
