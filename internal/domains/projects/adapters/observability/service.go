package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/portfolio-api/internal/domains/projects/application/types"
	projectdomain "github.com/Apurer/portfolio-api/internal/domains/projects/domain"
	projectports "github.com/Apurer/portfolio-api/internal/domains/projects/ports"
)

const tracerName = "github.com/Apurer/portfolio-api/internal/domains/projects/adapters/observability/service"

// Service decorates the projects service with tracing, logging, and metrics.
type Service struct {
	inner   projectports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core projects service.
func New(inner projectports.Service, opts ...Option) projectports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]*projectdomain.Project, error) {
	ctx, span := s.tracer.Start(ctx, "ProjectsService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list projects")
	}
	span.SetAttributes(attribute.Int("projects.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input types.ProjectInput) (*projectdomain.Project, error) {
	ctx, span := s.tracer.Start(ctx, "ProjectsService.Create")
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create project", slog.String("project.title", input.Title))
	}
	span.SetAttributes(attribute.String("project.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "project created", slog.String("project.id", result.ID), slog.String("project.title", result.Title))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id string, input types.ProjectInput) (*projectdomain.Project, error) {
	ctx, span := s.tracer.Start(ctx, "ProjectsService.Update", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	result, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update project", slog.String("project.id", id))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "project updated", slog.String("project.id", id))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "ProjectsService.Delete", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete project", slog.String("project.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "project deleted", slog.String("project.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("projects.service.created", metric.WithDescription("Number of projects created"))
	updated, _ := m.Int64Counter("projects.service.updated", metric.WithDescription("Number of projects updated"))
	deleted, _ := m.Int64Counter("projects.service.deleted", metric.WithDescription("Number of projects deleted"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.updated != nil {
		m.updated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ projectports.Service = (*Service)(nil)
