package ports

import (
	"context"

	types "github.com/Apurer/portfolio-api/internal/domains/projects/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
)

// Service exposes project use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Create(ctx context.Context, input types.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, input types.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
