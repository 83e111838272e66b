package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt/repository"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrResolvedNotBool is returned by Resolve when the request carried no
// boolean isResolved value.
var ErrResolvedNotBool = fmt.Errorf("isResolved must be a boolean: %w", apperr.ErrInvalidInput)

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

// CreateInput is the validated payload of a new doubt.
type CreateInput struct {
	Question    string
	Description string
	Tags        []string
}

func (s *Service) List(ctx context.Context) ([]*doubt.Doubt, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*doubt.Doubt, error) {
	if err := apperr.CheckSize(in.Question, in.Description); err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		tags = append(tags, strings.TrimSpace(t))
	}
	d := &doubt.Doubt{
		Question:    strings.TrimSpace(in.Question),
		Description: strings.TrimSpace(in.Description),
		Author:      s.ids.Actor(ctx),
		Tags:        tags,
		Answers:     []doubt.Answer{},
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doubt: %w", err)
	}
	return d, nil
}

// AddAnswer appends an answer by the current actor.
func (s *Service) AddAnswer(ctx context.Context, id, text string) (*doubt.Doubt, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := apperr.CheckSize(text); err != nil {
		return nil, err
	}
	return s.repo.AddAnswer(ctx, id, doubt.Answer{Text: strings.TrimSpace(text), Author: s.ids.Actor(ctx)})
}

// Resolve sets the resolved flag. Only the author may do so, and that check
// happens before resolved is looked at. Setting the current value again is
// allowed.
func (s *Service) Resolve(ctx context.Context, id string, resolved *bool) (*doubt.Doubt, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Author != s.ids.Actor(ctx) {
		return nil, fmt.Errorf("resolve doubt %q: %w", id, apperr.ErrForbidden)
	}
	if resolved == nil {
		return nil, ErrResolvedNotBool
	}
	return s.repo.SetResolved(ctx, id, *resolved)
}
