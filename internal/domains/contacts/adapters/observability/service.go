package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	contactdomain "github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	contactports "github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
)

const tracerName = "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/observability/service"

// Service decorates contact intake with tracing, logging, and metrics.
type Service struct {
	inner   contactports.Service
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

// New wraps the core contacts service.
func New(inner contactports.Service, opts ...Option) contactports.Service {
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

func (s *Service) Submit(ctx context.Context, input types.SubmitContactInput) (*types.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "ContactsService.Submit")
	defer span.End()

	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record contact submission")
	}
	span.SetAttributes(
		attribute.Int64("contact.id", result.Contact.ID),
		attribute.Bool("contact.delivered", result.Delivered),
	)
	s.metrics.recordSubmitted(ctx, result.Delivered)
	if !result.Delivered && result.DeliveryErr != nil {
		s.metrics.recordDeliveryFailed(ctx)
		span.AddEvent("notification failed", trace.WithAttributes(attribute.String("error", result.DeliveryErr.Error())))
		s.logger.LogAttrs(ctx, slog.LevelWarn, "contact saved but notification failed",
			slog.Int64("contact.id", result.Contact.ID),
			slog.String("error", result.DeliveryErr.Error()),
		)
		return result, nil
	}
	s.logInfo(ctx, "contact recorded",
		slog.Int64("contact.id", result.Contact.ID),
		slog.String("message_id", result.Receipt.MessageID),
		slog.String("transport", result.Receipt.Transport),
	)
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*contactdomain.Contact, error) {
	ctx, span := s.tracer.Start(ctx, "ContactsService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list contacts")
	}
	span.SetAttributes(attribute.Int("contacts.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	submitted      metric.Int64Counter
	deliveryFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("contacts.service.submitted", metric.WithDescription("Number of contact submissions recorded"))
	deliveryFailed, _ := m.Int64Counter("contacts.service.delivery_failed", metric.WithDescription("Number of recorded submissions whose notification failed"))
	return serviceMetrics{submitted: submitted, deliveryFailed: deliveryFailed}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, delivered bool) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("contact.delivered", delivered)))
	}
}

func (m serviceMetrics) recordDeliveryFailed(ctx context.Context) {
	if m.deliveryFailed != nil {
		m.deliveryFailed.Add(ctx, 1)
	}
}

var _ contactports.Service = (*Service)(nil)
