package types

import "github.com/Apurer/portfolio-api/internal/domains/contacts/domain"

// SubmitContactInput carries a contact-form submission and the caller address
// observed by the transport.
type SubmitContactInput struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	RemoteIP string
}

// Submission returns the form content as a domain submission.
func (in SubmitContactInput) Submission() domain.Submission {
	return domain.Submission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
}

// DeliveryReceipt describes an accepted notification.
type DeliveryReceipt struct {
	MessageID string
	Transport string
}

// SubmitResult reports what happened to a recorded submission. The contact is
// always durably stored when a result is returned; Delivered tells whether the
// notification email went out.
type SubmitResult struct {
	Contact     *domain.Contact
	Delivered   bool
	Receipt     DeliveryReceipt
	DeliveryErr error
}
