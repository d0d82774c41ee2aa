package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub-backend/internal/domains/catalog"
	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/pkg/cache"
)

type fakeTitleRepo struct {
	rows     map[uuid.UUID]*title.Row
	getCalls int
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{rows: make(map[uuid.UUID]*title.Row)}
}

func (f *fakeTitleRepo) Create(ctx context.Context, t *title.Title, genreIDs []uuid.UUID) error {
	t.CreatedAt = time.Now()
	f.rows[t.ID] = &title.Row{Title: *t}
	return nil
}

func (f *fakeTitleRepo) GetByID(ctx context.Context, id uuid.UUID) (*title.Row, error) {
	f.getCalls++
	if row, ok := f.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, title.ErrTitleNotFound
}

func (f *fakeTitleRepo) List(ctx context.Context, req title.ListRequest) ([]*title.Row, int, error) {
	var result []*title.Row
	for _, row := range f.rows {
		cp := *row
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, t *title.Title, genreIDs *[]uuid.UUID) error {
	row, ok := f.rows[t.ID]
	if !ok {
		return title.ErrTitleNotFound
	}
	row.Title = *t
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return title.ErrTitleNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTitleRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

type fakeCatalogRepo struct {
	entities map[string]*catalog.Entity
}

func newFakeCatalogRepo(slugs ...string) *fakeCatalogRepo {
	f := &fakeCatalogRepo{entities: make(map[string]*catalog.Entity)}
	for _, slug := range slugs {
		f.entities[slug] = &catalog.Entity{ID: uuid.New(), Name: slug, Slug: slug}
	}
	return f
}

func (f *fakeCatalogRepo) Create(ctx context.Context, e *catalog.Entity) error {
	f.entities[e.Slug] = e
	return nil
}

func (f *fakeCatalogRepo) GetBySlug(ctx context.Context, slug string) (*catalog.Entity, error) {
	if e, ok := f.entities[slug]; ok {
		return e, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalogRepo) GetBySlugs(ctx context.Context, slugs []string) ([]*catalog.Entity, error) {
	var result []*catalog.Entity
	for _, slug := range slugs {
		if e, ok := f.entities[slug]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) List(ctx context.Context, req catalog.ListRequest) ([]*catalog.Entity, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepo) DeleteBySlug(ctx context.Context, slug string) error {
	delete(f.entities, slug)
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Entity, error) {
	for _, e := range f.entities {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, catalog.ErrNotFound
}

// fakeCache is an in-memory cache.Cache.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func newTestTitleService(repo title.Repository, categories, genres catalog.Repository) (title.Service, *fakeCache) {
	c := newFakeCache()
	return NewTitleService(repo, categories, genres, c), c
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	repo := newFakeTitleRepo()
	svc, _ := newTestTitleService(repo, newFakeCatalogRepo("movies"), newFakeCatalogRepo("drama", "comedy"))

	dto, err := svc.Create(context.Background(), title.CreateTitleRequest{
		Name:     "The Title",
		Year:     2020,
		Category: "movies",
		Genres:   []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Title", dto.Name)
	assert.Nil(t, dto.Rating, "a fresh title has no reviews, rating must be null")
}

func TestCreateTitleUnknownCategory(t *testing.T) {
	svc, _ := newTestTitleService(newFakeTitleRepo(), newFakeCatalogRepo(), newFakeCatalogRepo())

	_, err := svc.Create(context.Background(), title.CreateTitleRequest{
		Name:     "The Title",
		Year:     2020,
		Category: "missing",
	})
	assert.ErrorIs(t, err, title.ErrUnknownCategory)
}

func TestCreateTitleUnknownGenre(t *testing.T) {
	svc, _ := newTestTitleService(newFakeTitleRepo(), newFakeCatalogRepo("movies"), newFakeCatalogRepo("drama"))

	_, err := svc.Create(context.Background(), title.CreateTitleRequest{
		Name:     "The Title",
		Year:     2020,
		Category: "movies",
		Genres:   []string{"drama", "missing"},
	})
	assert.ErrorIs(t, err, title.ErrUnknownGenre)
}

func TestCreateTitleRejectsFutureYear(t *testing.T) {
	svc, _ := newTestTitleService(newFakeTitleRepo(), newFakeCatalogRepo("movies"), newFakeCatalogRepo())

	_, err := svc.Create(context.Background(), title.CreateTitleRequest{
		Name:     "From the future",
		Year:     time.Now().Year() + 1,
		Category: "movies",
	})
	assert.Error(t, err)
}

func TestGetByIDUsesCache(t *testing.T) {
	repo := newFakeTitleRepo()
	svc, _ := newTestTitleService(repo, newFakeCatalogRepo("movies"), newFakeCatalogRepo())

	id := uuid.New()
	repo.rows[id] = &title.Row{Title: title.Title{ID: id, Name: "Cached", Year: 2001}}

	_, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	calls := repo.getCalls

	dto, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Cached", dto.Name)
	assert.Equal(t, calls, repo.getCalls, "second read must be served from cache")
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo := newFakeTitleRepo()
	svc, c := newTestTitleService(repo, newFakeCatalogRepo(), newFakeCatalogRepo())

	id := uuid.New()
	repo.rows[id] = &title.Row{Title: title.Title{ID: id, Name: "Doomed", Year: 1999}}

	_, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Contains(t, c.data, title.CacheKey(id))

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NotContains(t, c.data, title.CacheKey(id))
}
