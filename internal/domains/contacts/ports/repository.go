package ports

import (
	"context"
	"errors"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
)

// ErrPersistence means the submission could not be made durable.
var ErrPersistence = errors.New("contact store unavailable")

// Repository is an append-only log of contacts.
type Repository interface {
	// Append assigns the contact's ID and stores it after every existing entry.
	Append(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	// List returns contacts in insertion order.
	List(ctx context.Context) ([]*domain.Contact, error)
}

// Notifier tells the site owner about a stored contact.
type Notifier interface {
	Notify(ctx context.Context, contact *domain.Contact) (types.DeliveryReceipt, error)
}
