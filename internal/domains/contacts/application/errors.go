package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/portfolio-api/internal/domains/contacts/domain"
)

// ErrInvalidInput signals the submission violated a domain invariant.
var ErrInvalidInput = errors.New("invalid contact input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrMessageTooLong) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
