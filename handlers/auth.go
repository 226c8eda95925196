package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/galeria-app/galeriabackend/auth"
	"github.com/galeria-app/galeriabackend/models"
)

type AuthHandler struct {
	Identity *auth.IdentityService
	Issuer   *auth.TokenIssuer
}

func NewAuthHandler(identity *auth.IdentityService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{Identity: identity, Issuer: issuer}
}

type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Username and password are required")
		return
	}

	user, err := h.Identity.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User   models.User          `json:"user"`
	Tokens models.SessionTokens `json:"tokens"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	user, err := h.Identity.ResolvePassword(payload.Username, payload.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	tokens, err := h.Issuer.Login(user)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{User: *user, Tokens: tokens})
}

type FederatedLoginPayload struct {
	ProviderKey string `json:"provider_key"`
	Subject     string `json:"subject"`
	Email       string `json:"email"`
}

// FederatedLogin is called by the entry layer once the external
// provider has verified the subject. First sight of an unseen
// (provider, subject) pair provisions a passwordless account.
func (h *AuthHandler) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	var payload FederatedLoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.ProviderKey == "" || payload.Subject == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Provider key and subject are required")
		return
	}

	user, err := h.Identity.ResolveFederated(payload.ProviderKey, payload.Subject, payload.Email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	tokens, err := h.Issuer.Login(user)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{User: *user, Tokens: tokens})
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates the presented refresh token: the old session is
// revoked and a new pair issued in one atomic step.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	tokens, err := h.Issuer.Rotate(payload.RefreshToken)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokens)
}

// AccessToken mints a fresh access token under the presented refresh
// token without rotating it.
func (h *AuthHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	access, err := h.Issuer.IssueAccessToken(payload.RefreshToken)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":      access.Secret,
		"access_expires_at": access.ExpiresAt,
	})
}

// Logout revokes the presented refresh token; every access token
// minted from it dies with it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	if err := h.Issuer.Revoke(payload.RefreshToken); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully."})
}

// CurrentUser returns the authenticated user from the request context.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Could not retrieve user from context")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
