package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/catalog"
)

type catalogService struct {
	repo catalog.Repository
}

// NewCatalogService builds the service for one kind; the container
// instantiates it once for categories and once for genres.
func NewCatalogService(repo catalog.Repository) catalog.Service {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req catalog.CreateEntityRequest) (*catalog.EntityDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &catalog.Entity{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return &catalog.EntityDTO{Name: e.Name, Slug: e.Slug}, nil
}

func (s *catalogService) List(ctx context.Context, req catalog.ListRequest) ([]catalog.EntityDTO, int, error) {
	req.SetDefaults()

	entities, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog entries: %w", err)
	}

	dtos := make([]catalog.EntityDTO, len(entities))
	for i, e := range entities {
		dtos[i] = catalog.EntityDTO{Name: e.Name, Slug: e.Slug}
	}

	return dtos, total, nil
}

func (s *catalogService) DeleteBySlug(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}
