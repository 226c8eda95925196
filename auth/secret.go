package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// slugAlphabet has exactly 64 symbols so one random byte masked to six
// bits maps onto one URL-safe character without bias.
const slugAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const tokenSecretBytes = 32

// NewTokenSecret returns a high-entropy opaque token value.
func NewTokenSecret() (string, error) {
	buf := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewSlug returns a random URL-safe slug of the given length.
func NewSlug(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = slugAlphabet[b&0x3f]
	}
	return string(out), nil
}

// SecretsEqual compares two token values in constant time.
func SecretsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
