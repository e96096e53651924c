package mapper

import (
	"time"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
)

// ContactPayload is the JSON body of a contact-form submission.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact is the transport representation of a stored submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip,omitempty"`
}

// ToSubmitInput converts a payload plus the caller address into the use-case input.
func ToSubmitInput(payload ContactPayload, remoteIP string) types.SubmitContactInput {
	return types.SubmitContactInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Subject:  payload.Subject,
		Message:  payload.Message,
		RemoteIP: remoteIP,
	}
}

func FromDomain(c *domain.Contact) Contact {
	if c == nil {
		return Contact{}
	}
	return Contact{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Timestamp: c.Timestamp.UTC(),
		IP:        c.IP,
	}
}

func FromDomainList(contacts []*domain.Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, FromDomain(c))
	}
	return out
}
