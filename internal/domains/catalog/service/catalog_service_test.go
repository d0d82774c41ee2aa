package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub-backend/internal/domains/catalog"
)

type fakeCatalogRepo struct {
	entities map[string]*catalog.Entity
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{entities: make(map[string]*catalog.Entity)}
}

func (f *fakeCatalogRepo) Create(ctx context.Context, e *catalog.Entity) error {
	if _, ok := f.entities[e.Slug]; ok {
		return catalog.ErrSlugTaken
	}
	cp := *e
	f.entities[e.Slug] = &cp
	return nil
}

func (f *fakeCatalogRepo) GetBySlug(ctx context.Context, slug string) (*catalog.Entity, error) {
	if e, ok := f.entities[slug]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalogRepo) GetBySlugs(ctx context.Context, slugs []string) ([]*catalog.Entity, error) {
	var result []*catalog.Entity
	for _, slug := range slugs {
		if e, ok := f.entities[slug]; ok {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) List(ctx context.Context, req catalog.ListRequest) ([]*catalog.Entity, int, error) {
	var result []*catalog.Entity
	for _, e := range f.entities {
		if req.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(req.Search)) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (f *fakeCatalogRepo) DeleteBySlug(ctx context.Context, slug string) error {
	if _, ok := f.entities[slug]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.entities, slug)
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Entity, error) {
	for _, e := range f.entities {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func TestCreateEntity(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	dto, err := svc.Create(context.Background(), catalog.CreateEntityRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)
	assert.Equal(t, "Books", dto.Name)
	assert.Equal(t, "books", dto.Slug)
}

func TestCreateEntityRejectsBadSlug(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	_, err := svc.Create(context.Background(), catalog.CreateEntityRequest{Name: "Books", Slug: "no spaces!"})
	assert.Error(t, err)
}

func TestCreateEntityDuplicateSlug(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	_, err := svc.Create(context.Background(), catalog.CreateEntityRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), catalog.CreateEntityRequest{Name: "Other", Slug: "books"})
	assert.ErrorIs(t, err, catalog.ErrSlugTaken)
}

func TestDeleteMissingEntity(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	err := svc.DeleteBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
