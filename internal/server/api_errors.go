package server

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	contactsapp "github.com/Apurer/portfolio-api/internal/domains/contacts/application"
	contactdomain "github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
	contactports "github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
	projectsapp "github.com/Apurer/portfolio-api/internal/domains/projects/application"
	projectports "github.com/Apurer/portfolio-api/internal/domains/projects/ports"
	apierrors "github.com/Apurer/portfolio-api/internal/shared/errors"
)

const (
	msgProjectFieldsRequired = "Title, description, and image are required"
	msgProjectNotFound       = "Project not found"
	msgContactFieldsRequired = "All fields are required"
	msgContactInvalidEmail   = "Please provide a valid email address"
	msgContactTooLong        = "Message is too long. Please keep it under 2000 characters."
)

// projectResponder maps projects errors; persistenceMsg is the 500 message for
// the operation being served.
func projectResponder(logger *slog.Logger, persistenceMsg string) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger,
		apierrors.Match(projectports.ErrNotFound, apierrors.ErrNotFound.WithMessage(msgProjectNotFound)),
		apierrors.Match(projectsapp.ErrInvalidInput, apierrors.ErrValidation.WithMessage(msgProjectFieldsRequired)),
		apierrors.Match(projectports.ErrPersistence, apierrors.ErrInternal.WithMessage(persistenceMsg)),
	)
}

func contactResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger,
		apierrors.Match(contactdomain.ErrMissingFields, apierrors.ErrValidation.WithMessage(msgContactFieldsRequired)),
		apierrors.Match(contactdomain.ErrInvalidEmail, apierrors.ErrValidation.WithMessage(msgContactInvalidEmail)),
		apierrors.Match(contactdomain.ErrMessageTooLong, apierrors.ErrValidation.WithMessage(msgContactTooLong)),
		apierrors.Match(contactsapp.ErrInvalidInput, apierrors.ErrValidation),
		apierrors.Match(contactports.ErrPersistence, apierrors.ErrInternal.WithMessage("Failed to save message")),
	)
}

// bindJSON decodes the request body into dst. An empty body decodes to the
// zero value so that field validation reports what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		apierrors.Respond(c, apierrors.ErrBadRequest)
		return false
	}
	return true
}

func respondOK(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}
