package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the per-kind data access contract. One postgres
// implementation serves both kinds, bound to its table at construction.
type Repository interface {
	Create(ctx context.Context, e *Entity) error
	GetBySlug(ctx context.Context, slug string) (*Entity, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]*Entity, error)
	List(ctx context.Context, req ListRequest) ([]*Entity, int, error)
	DeleteBySlug(ctx context.Context, slug string) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entity, error)
}
