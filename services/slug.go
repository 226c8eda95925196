package services

import (
	"errors"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/auth"
)

// createWithSlugRetry generates a random slug and invokes create with
// it, retrying on a unique-constraint collision with a fresh slug up
// to maxRetries times. No lock is taken; colliding writers are
// arbitrated entirely by the store's unique index.
func createWithSlugRetry(slugLength, maxRetries int, create func(slug string) error) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		slug, err := auth.NewSlug(slugLength)
		if err != nil {
			return err
		}
		err = create(slug)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return err
	}
	return apperrors.ErrRetryExhausted
}
