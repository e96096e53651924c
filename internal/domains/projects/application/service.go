package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/Apurer/portfolio-api/internal/domains/projects/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
	"github.com/Apurer/portfolio-api/internal/domains/projects/ports"
)

// Service orchestrates the project catalogue use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides project id allocation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the projects service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: newProjectID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns every project in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

// Create validates input and appends a new project.
func (s *Service) Create(ctx context.Context, input types.ProjectInput) (*domain.Project, error) {
	project, err := domain.NewProject(s.newID(), input.Details(), s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, project)
}

// Update replaces the editable fields of an existing project. Unknown ids are
// reported before the input is validated.
func (s *Service) Update(ctx context.Context, id string, input types.ProjectInput) (*domain.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := project.Apply(input.Details(), s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, project)
}

// Delete removes a project, keeping the order of the rest.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func newProjectID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

var _ ports.Service = (*Service)(nil)
