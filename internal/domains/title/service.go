package title

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateTitleRequest) (*TitleDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TitleDTO, error)
	List(ctx context.Context, req ListRequest) ([]TitleDTO, int, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTitleRequest) (*TitleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
