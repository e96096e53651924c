package ports

import (
	"context"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
)

// Service exposes contact intake use cases to adapters.
type Service interface {
	Submit(ctx context.Context, input types.SubmitContactInput) (*types.SubmitResult, error)
	// List returns stored contacts newest first.
	List(ctx context.Context) ([]*domain.Contact, error)
}
