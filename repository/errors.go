package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/galeria-app/galeriabackend/apperrors"
)

// translateError maps store-level failures onto the shared taxonomy so
// callers never depend on GORM error values.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	default:
		return err
	}
}
