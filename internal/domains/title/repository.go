package title

import (
	"context"

	"github.com/google/uuid"
)

// Row is the joined read model produced by the repository: the title
// with its resolved category, genre slugs/names and computed rating.
type Row struct {
	Title        Title
	CategorySlug *string
	CategoryName *string
	GenreSlugs   []string
	GenreNames   []string
	Rating       *float64
}

type Repository interface {
	// Create inserts the title and its genre links in one transaction.
	Create(ctx context.Context, t *Title, genreIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Row, error)
	List(ctx context.Context, req ListRequest) ([]*Row, int, error)
	// Update rewrites the row and replaces genre links when genreIDs is
	// non-nil.
	Update(ctx context.Context, t *Title, genreIDs *[]uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Exists is used by the review domain to 404 on unknown titles.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
