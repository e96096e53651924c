// Package jsonfile stores contacts as a JSON array in a single file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
	"github.com/Apurer/portfolio-api/internal/platform/jsonstore"
)

// FileName is the document name inside the data directory.
const FileName = "contacts.json"

type contactRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip,omitempty"`
}

// Repository appends contacts to a jsonstore document.
type Repository struct {
	doc *jsonstore.Document[contactRecord]
}

var _ ports.Repository = (*Repository)(nil)

// NewRepository binds the repository to the JSON document at path.
func NewRepository(path string, logger *slog.Logger) *Repository {
	return &Repository{doc: jsonstore.New[contactRecord](path, logger)}
}

// Ensure creates the data directory and an empty document when missing.
func (r *Repository) Ensure() error {
	return r.doc.Ensure()
}

func (r *Repository) Append(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	stored := contact.Clone()
	err := r.doc.Update(ctx, func(records []contactRecord) ([]contactRecord, error) {
		var last int64
		for _, rec := range records {
			last = max(last, rec.ID)
		}
		stored.ID = domain.NextID(last, stored.Timestamp)
		return append(records, toRecord(stored)), nil
	})
	if err != nil {
		if errors.Is(err, jsonstore.ErrWrite) {
			return nil, fmt.Errorf("%w: %w", ports.ErrPersistence, err)
		}
		return nil, err
	}
	return stored, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Contact, error) {
	records := r.doc.Load(ctx)
	list := make([]*domain.Contact, 0, len(records))
	for _, rec := range records {
		list = append(list, toDomain(rec))
	}
	return list, nil
}

func toRecord(c *domain.Contact) contactRecord {
	return contactRecord{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Timestamp: c.Timestamp,
		IP:        c.IP,
	}
}

func toDomain(rec contactRecord) *domain.Contact {
	return &domain.Contact{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Subject:   rec.Subject,
		Message:   rec.Message,
		Timestamp: rec.Timestamp,
		IP:        rec.IP,
	}
}
