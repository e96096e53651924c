package ports

import (
	"context"
	"errors"

	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
)

var (
	ErrNotFound = errors.New("project not found")
	// ErrPersistence means the change could not be made durable and was discarded.
	ErrPersistence = errors.New("project store unavailable")
)

// Repository persists projects in insertion order.
type Repository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	// Update replaces the stored project with the same ID in place.
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Project, error)
}
