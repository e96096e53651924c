package application

import (
	"context"
	"slices"
	"time"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
)

// DefaultNotifyTimeout bounds a single notification attempt.
const DefaultNotifyTimeout = 10 * time.Second

// Service records contact submissions and notifies the site owner.
type Service struct {
	repo          ports.Repository
	notifier      ports.Notifier
	now           func() time.Time
	notifyTimeout time.Duration
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the capture time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifyTimeout bounds each notification attempt. Non-positive values keep the default.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// NewService wires contact intake with its store and notifier.
func NewService(repo ports.Repository, notifier ports.Notifier, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		notifier:      notifier,
		now:           func() time.Time { return time.Now().UTC() },
		notifyTimeout: DefaultNotifyTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit validates and stores the submission, then attempts notification.
// A notification failure is reported in the result, never as an error.
func (s *Service) Submit(ctx context.Context, input types.SubmitContactInput) (*types.SubmitResult, error) {
	contact, err := domain.NewContact(input.Submission(), s.now(), input.RemoteIP)
	if err != nil {
		return nil, mapError(err)
	}
	stored, err := s.repo.Append(ctx, contact)
	if err != nil {
		return nil, err
	}

	result := &types.SubmitResult{Contact: stored}
	if s.notifier == nil {
		return result, nil
	}

	// Detached from request cancellation; bounded by notifyTimeout.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	receipt, err := s.notifier.Notify(notifyCtx, stored)
	if err != nil {
		result.DeliveryErr = err
		return result, nil
	}
	result.Delivered = true
	result.Receipt = receipt
	return result, nil
}

// List returns stored contacts newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(contacts)
	return contacts, nil
}

var _ ports.Service = (*Service)(nil)
