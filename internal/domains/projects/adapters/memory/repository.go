package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
	"github.com/Apurer/portfolio-api/internal/domains/projects/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory project persistence adapter. Used when the data
// directory cannot be prepared, and as a test double.
type Repository struct {
	mu       sync.RWMutex
	projects []*domain.Project
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, project.Clone())
	return project.Clone(), nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	return r.projects[idx].Clone(), nil
}

func (r *Repository) Update(_ context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(project.ID)
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	r.projects[idx] = project.Clone()
	return project.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ports.ErrNotFound
	}
	r.projects = slices.Delete(r.projects, idx, idx+1)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Project, 0, len(r.projects))
	for _, project := range r.projects {
		list = append(list, project.Clone())
	}
	return list, nil
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.projects, func(p *domain.Project) bool { return p.ID == id })
}
