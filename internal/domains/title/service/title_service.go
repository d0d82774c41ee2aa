package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/catalog"
	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/pkg/cache"
	"reviewhub-backend/pkg/logger"
)

const cacheTTL = 5 * time.Minute

type titleService struct {
	repo       title.Repository
	categories catalog.Repository
	genres     catalog.Repository
	cache      cache.Cache
}

func NewTitleService(repo title.Repository, categories, genres catalog.Repository, c cache.Cache) title.Service {
	return &titleService{
		repo:       repo,
		categories: categories,
		genres:     genres,
		cache:      c,
	}
}

func (s *titleService) Create(ctx context.Context, req title.CreateTitleRequest) (*title.TitleDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	t := &title.Title{
		ID:         uuid.New(),
		Name:       req.Name,
		Year:       req.Year,
		CategoryID: &category.ID,
	}
	if req.Description != "" {
		t.Description = &req.Description
	}

	if err := s.repo.Create(ctx, t, genreIDs); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, t.ID)
}

func (s *titleService) GetByID(ctx context.Context, id uuid.UUID) (*title.TitleDTO, error) {
	key := title.CacheKey(id)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var dto title.TitleDTO
		if err := json.Unmarshal([]byte(cached), &dto); err == nil {
			return &dto, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("title cache read failed", map[string]interface{}{"error": err.Error()})
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(row)

	if payload, err := json.Marshal(dto); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), cacheTTL); err != nil {
			logger.Warn("title cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return dto, nil
}

func (s *titleService) List(ctx context.Context, req title.ListRequest) ([]title.TitleDTO, int, error) {
	req.SetDefaults()

	rows, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]title.TitleDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, *toDTO(row))
	}
	return dtos, total, nil
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req title.UpdateTitleRequest) (*title.TitleDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t := row.Title

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Year != nil {
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		t.CategoryID = &category.ID
	}

	var genreIDs *[]uuid.UUID
	if req.Genres != nil {
		ids, err := s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
		genreIDs = &ids
	}

	if err := s.repo.Update(ctx, &t, genreIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*catalog.Entity, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", title.ErrUnknownCategory, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	entities, err := s.genres.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]uuid.UUID, len(entities))
	for _, e := range entities {
		found[e.Slug] = e.ID
	}

	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := found[slug]
		if !ok {
			return nil, fmt.Errorf("%w: %s", title.ErrUnknownGenre, slug)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *titleService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, title.CacheKey(id)); err != nil {
		logger.Warn("title cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func toDTO(row *title.Row) *title.TitleDTO {
	dto := &title.TitleDTO{
		ID:     row.Title.ID,
		Name:   row.Title.Name,
		Year:   row.Title.Year,
		Rating: row.Rating,
		Genres: make([]catalog.EntityDTO, 0, len(row.GenreSlugs)),
	}
	if row.Title.Description != nil {
		dto.Description = *row.Title.Description
	}
	if row.CategorySlug != nil && row.CategoryName != nil {
		dto.Category = &catalog.EntityDTO{Name: *row.CategoryName, Slug: *row.CategorySlug}
	}
	for i, slug := range row.GenreSlugs {
		dto.Genres = append(dto.Genres, catalog.EntityDTO{Name: row.GenreNames[i], Slug: slug})
	}
	return dto
}
