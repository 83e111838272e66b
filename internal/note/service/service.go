package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"github.com/studyhub/studyhub/backend/go-services/internal/note/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service implements the note operations used by the handler layer.
type Service struct {
	repo repository.Repository
	ids  identity.Provider
}

func NewService(r repository.Repository, ids identity.Provider) *Service {
	return &Service{repo: r, ids: ids}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(ids identity.Provider) *Service {
	return NewService(repository.NewMemoryRepo(), ids)
}

// NewMongoService returns a Service backed by a MongoDB collection.
func NewMongoService(col *mongo.Collection, ids identity.Provider) *Service {
	return NewService(repository.NewMongoRepo(col), ids)
}

// CreateInput is the validated payload of a new note.
type CreateInput struct {
	Title   string
	Content string
	Tags    []string
}

func (s *Service) List(ctx context.Context) ([]*note.Note, error) {
	return s.repo.List(ctx)
}

// Create stores a note authored by the current actor.
func (s *Service) Create(ctx context.Context, in CreateInput) (*note.Note, error) {
	if err := apperr.CheckSize(in.Content); err != nil {
		return nil, err
	}
	n := &note.Note{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Author:  s.ids.Actor(ctx),
		Tags:    normalizeTags(in.Tags),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// Update applies a partial update. Fields that are empty in p keep their
// stored value, so an empty title cannot clear the existing one.
func (s *Service) Update(ctx context.Context, id string, p note.Patch) (*note.Note, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := apperr.CheckSize(p.Content); err != nil {
		return nil, err
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Tags != nil {
		p.Tags = normalizeTags(p.Tags)
	}
	return s.repo.Update(ctx, id, p)
}

// Delete removes a note after checking it exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
