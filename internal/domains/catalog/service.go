package catalog

import "context"

// Service mirrors the exposed surface: create, list, delete. Catalog
// entries are never updated in place; admins delete and recreate.
type Service interface {
	Create(ctx context.Context, req CreateEntityRequest) (*EntityDTO, error)
	List(ctx context.Context, req ListRequest) ([]EntityDTO, int, error)
	DeleteBySlug(ctx context.Context, slug string) error
}
