// Package jsonfile stores projects as a JSON array in a single file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
	"github.com/Apurer/portfolio-api/internal/domains/projects/ports"
	"github.com/Apurer/portfolio-api/internal/platform/jsonstore"
)

// FileName is the document name inside the data directory.
const FileName = "projects.json"

type projectRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	LiveLink    string     `json:"liveLink"`
	GithubLink  string     `json:"githubLink"`
	CaseStudy   string     `json:"caseStudy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Repository persists projects through a jsonstore document.
type Repository struct {
	doc *jsonstore.Document[projectRecord]
}

var _ ports.Repository = (*Repository)(nil)

// NewRepository binds the repository to the JSON document at path.
func NewRepository(path string, logger *slog.Logger) *Repository {
	return &Repository{doc: jsonstore.New[projectRecord](path, logger)}
}

// Ensure creates the data directory and an empty document when missing.
func (r *Repository) Ensure() error {
	return r.doc.Ensure()
}

func (r *Repository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	err := r.doc.Update(ctx, func(records []projectRecord) ([]projectRecord, error) {
		return append(records, toRecord(project)), nil
	})
	if err != nil {
		return nil, wrapWrite(err)
	}
	return project.Clone(), nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Project, error) {
	records := r.doc.Load(ctx)
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	return toDomain(records[idx]), nil
}

func (r *Repository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	err := r.doc.Update(ctx, func(records []projectRecord) ([]projectRecord, error) {
		idx := indexOf(records, project.ID)
		if idx < 0 {
			return nil, ports.ErrNotFound
		}
		records[idx] = toRecord(project)
		return records, nil
	})
	if err != nil {
		return nil, wrapWrite(err)
	}
	return project.Clone(), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.doc.Update(ctx, func(records []projectRecord) ([]projectRecord, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, ports.ErrNotFound
		}
		return slices.Delete(records, idx, idx+1), nil
	})
	return wrapWrite(err)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Project, error) {
	records := r.doc.Load(ctx)
	list := make([]*domain.Project, 0, len(records))
	for _, record := range records {
		list = append(list, toDomain(record))
	}
	return list, nil
}

func indexOf(records []projectRecord, id string) int {
	return slices.IndexFunc(records, func(rec projectRecord) bool { return rec.ID == id })
}

func wrapWrite(err error) error {
	if err == nil || !errors.Is(err, jsonstore.ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrPersistence, err)
}

func toRecord(p *domain.Project) projectRecord {
	rec := projectRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		LiveLink:    p.LiveLink,
		GithubLink:  p.GithubLink,
		CaseStudy:   p.CaseStudy,
		CreatedAt:   p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		updated := *p.UpdatedAt
		rec.UpdatedAt = &updated
	}
	return rec
}

func toDomain(rec projectRecord) *domain.Project {
	p := &domain.Project{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Image:       rec.Image,
		LiveLink:    rec.LiveLink,
		GithubLink:  rec.GithubLink,
		CaseStudy:   rec.CaseStudy,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.UpdatedAt != nil {
		updated := *rec.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}
