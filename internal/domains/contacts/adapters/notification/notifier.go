// Package notification emails the site owner about new contact submissions.
package notification

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	types "github.com/Apurer/portfolio-api/internal/domains/contacts/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	"github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
	"github.com/Apurer/portfolio-api/internal/platform/mail"
)

const (
	DefaultFrom   = "portfolio@yoursite.com"
	DefaultTo     = "your-email@example.com"
	SubjectPrefix = "Portfolio: "
)

var htmlBody = htmltemplate.Must(htmltemplate.New("contact_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">New Contact Form Submission</h2>
    <div style="background: #f9fafb; padding: 16px; border-radius: 8px;">
      <p><strong>Name:</strong> {{.Name}}</p>
      <p><strong>Email:</strong> {{.Email}}</p>
      <p><strong>Subject:</strong> {{.Subject}}</p>
      <p><strong>Received:</strong> {{.Received}}</p>
    </div>
    <h3>Message</h3>
    <div style="white-space: pre-line; background: #ffffff; padding: 16px; border-left: 4px solid #2563eb;">{{.Message}}</div>
  </div>
</body>
</html>`))

var textBody = texttemplate.Must(texttemplate.New("contact_text").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}
Received: {{.Received}}

Message:
{{.Message}}
`))

type contactView struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Received string
}

// Notifier renders contacts into envelopes and hands them to a mail transport.
type Notifier struct {
	transport mail.Transport
	from      string
	to        string
}

var _ ports.Notifier = (*Notifier)(nil)

// New builds a notifier. Blank from/to fall back to placeholder addresses.
func New(transport mail.Transport, from, to string) *Notifier {
	from = strings.TrimSpace(from)
	if from == "" {
		from = DefaultFrom
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = DefaultTo
	}
	return &Notifier{transport: transport, from: from, to: to}
}

func (n *Notifier) Notify(ctx context.Context, contact *domain.Contact) (types.DeliveryReceipt, error) {
	env, err := n.Envelope(contact)
	if err != nil {
		return types.DeliveryReceipt{}, err
	}
	receipt, err := n.transport.Send(ctx, env)
	if err != nil {
		return types.DeliveryReceipt{}, err
	}
	return types.DeliveryReceipt{MessageID: receipt.MessageID, Transport: string(n.transport.Mode())}, nil
}

// Envelope renders the owner notification for contact.
func (n *Notifier) Envelope(contact *domain.Contact) (mail.Envelope, error) {
	view := contactView{
		Name:     contact.Name,
		Email:    contact.Email,
		Subject:  contact.Subject,
		Message:  contact.Message,
		Received: contact.Timestamp.UTC().Format(time.RFC1123),
	}
	var html, text bytes.Buffer
	if err := htmlBody.Execute(&html, view); err != nil {
		return mail.Envelope{}, err
	}
	if err := textBody.Execute(&text, view); err != nil {
		return mail.Envelope{}, err
	}
	return mail.Envelope{
		From:     n.from,
		To:       n.to,
		ReplyTo:  contact.Email,
		Subject:  SubjectPrefix + contact.Subject,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
