package apperrors

import "errors"

// Sentinel errors shared by repositories, services and handlers.
// Services return these (possibly wrapped); handlers translate them
// into API responses in exactly one place.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized indicates the resolved permission is insufficient
	// for the attempted operation.
	ErrUnauthorized = errors.New("insufficient permission")

	// ErrInvalidCredential indicates a malformed or unusable credential.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrWrongPassword indicates a password credential that does not
	// match the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrNoPasswordSet indicates a federated-only account with no
	// password credential to check against.
	ErrNoPasswordSet = errors.New("account has no password set")

	// ErrInvalidToken indicates a refresh token that is absent or past
	// its expiration.
	ErrInvalidToken = errors.New("invalid refresh token")

	// ErrExpired indicates a credential past its own expiration time.
	ErrExpired = errors.New("credential expired")

	// ErrRevoked indicates an access token whose refresh token no
	// longer exists.
	ErrRevoked = errors.New("credential revoked")

	// ErrConflict indicates a unique-constraint collision.
	ErrConflict = errors.New("conflicting record already exists")

	// ErrCycleRejected indicates a folder reparent that would make a
	// folder its own ancestor.
	ErrCycleRejected = errors.New("folder move would create a cycle")

	// ErrRetryExhausted indicates bounded slug generation ran out of
	// attempts without finding a free slug.
	ErrRetryExhausted = errors.New("slug generation retries exhausted")
)
