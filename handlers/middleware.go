package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/galeria-app/galeriabackend/auth"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/permissions"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserContextKey is the key used to store the authenticated user in the request context.
	UserContextKey ContextKey = "user"
	// PresentedContextKey is the key used to store share-link material in the request context.
	PresentedContextKey ContextKey = "presented"
)

// UserFromContext returns the authenticated user, or nil for an
// anonymous request.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// PresentedFromContext returns the share-link material attached to the
// request, if any.
func PresentedFromContext(ctx context.Context) permissions.Presented {
	presented, _ := ctx.Value(PresentedContextKey).(permissions.Presented)
	return presented
}

// MixedAuthMiddleware authenticates a request from its Authorization
// header. Bearer carries an access token and yields a user; Basic
// carries share-link slug and password and yields presented material;
// no header passes through as anonymous. A Bearer token that fails
// validation is rejected rather than downgraded.
func MixedAuthMiddleware(issuer *auth.TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			tokenString := strings.TrimSpace(authHeader[len("bearer "):])
			user, err := issuer.Validate(tokenString)
			if err != nil {
				WriteDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if slug, password, ok := r.BasicAuth(); ok {
			presented := permissions.Presented{ShareLinkSlug: slug, Password: password}
			ctx := context.WithValue(r.Context(), PresentedContextKey, presented)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		WriteAPIError(w, http.StatusUnauthorized, "invalid_authorization", "Authorization header must be Bearer {token} or Basic {slug:password}")
	})
}

// RequireUser rejects anonymous requests. It should be mounted after
// MixedAuthMiddleware.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			WriteAPIError(w, http.StatusUnauthorized, "authentication_required", "this endpoint requires an authenticated user")
			return
		}
		next.ServeHTTP(w, r)
	})
}
