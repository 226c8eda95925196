package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galeria-app/galeriabackend/apperrors"
)

func TestSlugRetrySucceedsAfterCollisions(t *testing.T) {
	attempts := 0
	seen := map[string]bool{}
	err := createWithSlugRetry(21, 5, func(slug string) error {
		require.Len(t, slug, 21)
		require.False(t, seen[slug], "retry must generate a fresh slug")
		seen[slug] = true
		attempts++
		if attempts < 3 {
			return apperrors.ErrConflict
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestSlugRetryExhaustion(t *testing.T) {
	attempts := 0
	err := createWithSlugRetry(21, 4, func(slug string) error {
		attempts++
		return apperrors.ErrConflict
	})
	require.ErrorIs(t, err, apperrors.ErrRetryExhausted)
	require.Equal(t, 4, attempts)
}

func TestSlugRetryStopsOnOtherErrors(t *testing.T) {
	attempts := 0
	err := createWithSlugRetry(21, 5, func(slug string) error {
		attempts++
		return apperrors.ErrNotFound
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, 1, attempts)
}
