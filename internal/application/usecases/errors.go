package usecases

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gentlify/pacify/internal/domain"
)

// isNotFound handles pgx.ErrNoRows and domain-level not found errors
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrMessageNotFound)
}

func validateID(id, entity string) error {
	if id == "" {
		return domain.NewDomainError(domain.ErrInvalidID, entity+" ID cannot be empty")
	}
	return nil
}
