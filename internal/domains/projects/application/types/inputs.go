package types

import "github.com/Apurer/portfolio-api/internal/domains/projects/domain"

// ProjectInput carries the editable fields for create and full-replacement update.
type ProjectInput struct {
	Title       string
	Description string
	Image       string
	LiveLink    string
	GithubLink  string
	CaseStudy   string
}

// Details converts the input into domain details.
func (in ProjectInput) Details() domain.Details {
	return domain.Details{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		LiveLink:    in.LiveLink,
		GithubLink:  in.GithubLink,
		CaseStudy:   in.CaseStudy,
	}
}
