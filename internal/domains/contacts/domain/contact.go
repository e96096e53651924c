package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength caps the message body, counted in characters.
const MaxMessageLength = 2000

var (
	ErrMissingFields  = errors.New("name, email, subject and message are required")
	ErrInvalidEmail   = errors.New("email address is invalid")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact is one recorded contact-form submission.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	Timestamp time.Time
	IP        string
}

// Submission is the raw form content before validation.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NewContact trims and validates a submission captured at ts from ip.
// The ID is assigned when the contact is stored.
func NewContact(sub Submission, ts time.Time, ip string) (*Contact, error) {
	c := &Contact{
		Name:      strings.TrimSpace(sub.Name),
		Email:     strings.TrimSpace(sub.Email),
		Subject:   strings.TrimSpace(sub.Subject),
		Message:   strings.TrimSpace(sub.Message),
		Timestamp: ts,
		IP:        strings.TrimSpace(ip),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required fields first, then the address, then the length.
func (c *Contact) Validate() error {
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(c.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// Clone returns a copy.
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// NextID returns an id for a contact stored at ts that is strictly greater
// than last.
func NextID(last int64, ts time.Time) int64 {
	id := ts.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
