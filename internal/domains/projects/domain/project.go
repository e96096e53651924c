package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingRequired is returned when title, description or image is blank.
var ErrMissingRequired = errors.New("title, description and image are required")

// Project models one portfolio entry.
type Project struct {
	ID          string
	Title       string
	Description string
	Image       string
	LiveLink    string
	GithubLink  string
	CaseStudy   string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Details is the caller-editable content of a project.
type Details struct {
	Title       string
	Description string
	Image       string
	LiveLink    string
	GithubLink  string
	CaseStudy   string
}

// Normalize trims surrounding whitespace from every field.
func (d Details) Normalize() Details {
	return Details{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Image:       strings.TrimSpace(d.Image),
		LiveLink:    strings.TrimSpace(d.LiveLink),
		GithubLink:  strings.TrimSpace(d.GithubLink),
		CaseStudy:   strings.TrimSpace(d.CaseStudy),
	}
}

// Validate enforces the required fields on already normalized details.
func (d Details) Validate() error {
	if d.Title == "" || d.Description == "" || d.Image == "" {
		return ErrMissingRequired
	}
	return nil
}

// NewProject validates details and constructs a project created at createdAt.
func NewProject(id string, details Details, createdAt time.Time) (*Project, error) {
	details = details.Normalize()
	if err := details.Validate(); err != nil {
		return nil, err
	}
	p := &Project{ID: id, CreatedAt: createdAt}
	p.assign(details)
	return p, nil
}

// Apply replaces every editable field. Optional links omitted from details
// are cleared. ID and CreatedAt never change.
func (p *Project) Apply(details Details, at time.Time) error {
	details = details.Normalize()
	if err := details.Validate(); err != nil {
		return err
	}
	p.assign(details)
	p.UpdatedAt = &at
	return nil
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	if p.UpdatedAt != nil {
		updated := *p.UpdatedAt
		clone.UpdatedAt = &updated
	}
	return &clone
}

func (p *Project) assign(d Details) {
	p.Title = d.Title
	p.Description = d.Description
	p.Image = d.Image
	p.LiveLink = d.LiveLink
	p.GithubLink = d.GithubLink
	p.CaseStudy = d.CaseStudy
}
