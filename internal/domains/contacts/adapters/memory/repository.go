package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps contacts in memory.
type Repository struct {
	mu       sync.RWMutex
	contacts []*domain.Contact
	lastID   int64
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Append(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	clone := contact.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	clone.ID = domain.NextID(r.lastID, clone.Timestamp)
	r.lastID = clone.ID
	r.contacts = append(r.contacts, clone)
	return clone.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		list = append(list, contact.Clone())
	}
	return list, nil
}
