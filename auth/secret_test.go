package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTokenSecret(t *testing.T) {
	a, err := NewTokenSecret()
	require.NoError(t, err)
	b, err := NewTokenSecret()
	require.NoError(t, err)
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestNewSlug(t *testing.T) {
	slug, err := NewSlug(21)
	require.NoError(t, err)
	require.Len(t, slug, 21)
	for _, c := range slug {
		require.Contains(t, slugAlphabet, string(c))
	}
}

func TestSecretsEqual(t *testing.T) {
	require.True(t, SecretsEqual("abc", "abc"))
	require.False(t, SecretsEqual("abc", "abd"))
	require.False(t, SecretsEqual("abc", "abcd"))
}
