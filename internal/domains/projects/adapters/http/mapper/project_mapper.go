package mapper

import (
	"time"

	types "github.com/Apurer/portfolio-api/internal/domains/projects/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
)

// ProjectPayload is the JSON body accepted by create and update.
type ProjectPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LiveLink    string `json:"liveLink"`
	GithubLink  string `json:"githubLink"`
	CaseStudy   string `json:"caseStudy"`
}

// Project is the transport representation of a stored project.
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	LiveLink    string     `json:"liveLink"`
	GithubLink  string     `json:"githubLink"`
	CaseStudy   string     `json:"caseStudy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ToInput converts a request payload into the use-case input.
func ToInput(payload ProjectPayload) types.ProjectInput {
	return types.ProjectInput{
		Title:       payload.Title,
		Description: payload.Description,
		Image:       payload.Image,
		LiveLink:    payload.LiveLink,
		GithubLink:  payload.GithubLink,
		CaseStudy:   payload.CaseStudy,
	}
}

// FromDomain converts a domain project to the transport representation.
func FromDomain(p *domain.Project) Project {
	if p == nil {
		return Project{}
	}
	out := Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		LiveLink:    p.LiveLink,
		GithubLink:  p.GithubLink,
		CaseStudy:   p.CaseStudy,
		CreatedAt:   p.CreatedAt.UTC(),
	}
	if p.UpdatedAt != nil {
		updated := p.UpdatedAt.UTC()
		out.UpdatedAt = &updated
	}
	return out
}

// FromDomainList converts a slice, never returning nil.
func FromDomainList(projects []*domain.Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, FromDomain(p))
	}
	return out
}
