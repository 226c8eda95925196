package auth

import (
	"errors"
	"time"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// TokenIssuer manages the refresh/access token lifecycle. Refresh
// tokens are the long-lived half of the pair; access tokens are minted
// from a live refresh token and vanish with it when it is revoked.
type TokenIssuer struct {
	tokens repository.TokenRepository
	users  repository.UserRepository

	refreshTTL time.Duration
	accessTTL  time.Duration
}

func NewTokenIssuer(tokens repository.TokenRepository, users repository.UserRepository, refreshTTL, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		tokens:     tokens,
		users:      users,
		refreshTTL: refreshTTL,
		accessTTL:  accessTTL,
	}
}

// Login issues a fresh refresh token and a first access token for the
// user in a single transaction.
func (i *TokenIssuer) Login(user *models.User) (models.SessionTokens, error) {
	refresh, access, err := i.newSession(user.ID)
	if err != nil {
		return models.SessionTokens{}, err
	}
	if err := i.tokens.CreateSession(refresh, access); err != nil {
		return models.SessionTokens{}, err
	}
	return sessionTokens(refresh, access), nil
}

// IssueRefreshToken creates a standalone refresh token for the user.
func (i *TokenIssuer) IssueRefreshToken(user *models.User) (*models.RefreshToken, error) {
	refresh, access, err := i.newSession(user.ID)
	if err != nil {
		return nil, err
	}
	if err := i.tokens.CreateSession(refresh, access); err != nil {
		return nil, err
	}
	return refresh, nil
}

// IssueAccessToken mints a child access token from a live refresh
// token. An absent or expired refresh token yields ErrInvalidToken.
func (i *TokenIssuer) IssueAccessToken(refreshSecret string) (*models.AccessToken, error) {
	refresh, err := i.lookupRefresh(refreshSecret)
	if err != nil {
		return nil, err
	}

	secret, err := NewTokenSecret()
	if err != nil {
		return nil, err
	}
	access := &models.AccessToken{
		RefreshTokenID: refresh.ID,
		Secret:         secret,
		ExpiresAt:      time.Now().UTC().Add(i.accessTTL),
	}
	if err := i.tokens.CreateAccessToken(access); err != nil {
		return nil, err
	}
	return access, nil
}

// Validate resolves an access token to its user. A token past its own
// expiration yields ErrExpired. A token with no live row yields
// ErrRevoked: once the parent refresh token is deleted the cascade
// removes every child, and a never-issued secret is indistinguishable
// from a revoked one on purpose.
func (i *TokenIssuer) Validate(accessSecret string) (*models.User, error) {
	access, err := i.tokens.GetAccessTokenBySecret(accessSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRevoked
		}
		return nil, err
	}
	if !SecretsEqual(access.Secret, accessSecret) {
		return nil, apperrors.ErrRevoked
	}
	if access.IsExpired(time.Now().UTC()) {
		return nil, apperrors.ErrExpired
	}
	return i.users.GetByID(access.RefreshToken.UserID)
}

// Revoke deletes the refresh token; every descendant access token is
// removed in the same store operation by the cascade.
func (i *TokenIssuer) Revoke(refreshSecret string) error {
	refresh, err := i.tokens.GetRefreshTokenBySecret(refreshSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidToken
		}
		return err
	}
	deleted, err := i.tokens.DeleteRefreshToken(refresh.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrInvalidToken
	}
	return nil
}

// Rotate revokes the presented refresh token and issues a replacement
// pair for the same user in one transaction, so a crash mid-rotation
// can never leave the old session gone and the new one missing.
func (i *TokenIssuer) Rotate(refreshSecret string) (models.SessionTokens, error) {
	old, err := i.lookupRefresh(refreshSecret)
	if err != nil {
		return models.SessionTokens{}, err
	}

	refresh, access, err := i.newSession(old.UserID)
	if err != nil {
		return models.SessionTokens{}, err
	}
	if err := i.tokens.ReplaceSession(old.ID, refresh, access); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// someone revoked the token between lookup and replace
			return models.SessionTokens{}, apperrors.ErrInvalidToken
		}
		return models.SessionTokens{}, err
	}
	return sessionTokens(refresh, access), nil
}

func (i *TokenIssuer) lookupRefresh(refreshSecret string) (*models.RefreshToken, error) {
	refresh, err := i.tokens.GetRefreshTokenBySecret(refreshSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if !SecretsEqual(refresh.Secret, refreshSecret) {
		return nil, apperrors.ErrInvalidToken
	}
	if refresh.IsExpired(time.Now().UTC()) {
		return nil, apperrors.ErrInvalidToken
	}
	return refresh, nil
}

func (i *TokenIssuer) newSession(userID uint) (*models.RefreshToken, *models.AccessToken, error) {
	refreshSecret, err := NewTokenSecret()
	if err != nil {
		return nil, nil, err
	}
	accessSecret, err := NewTokenSecret()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	refresh := &models.RefreshToken{
		UserID:    userID,
		Secret:    refreshSecret,
		ExpiresAt: now.Add(i.refreshTTL),
	}
	access := &models.AccessToken{
		Secret:    accessSecret,
		ExpiresAt: now.Add(i.accessTTL),
	}
	return refresh, access, nil
}

func sessionTokens(refresh *models.RefreshToken, access *models.AccessToken) models.SessionTokens {
	return models.SessionTokens{
		RefreshToken:     refresh.Secret,
		RefreshExpiresAt: refresh.ExpiresAt,
		AccessToken:      access.Secret,
		AccessExpiresAt:  access.ExpiresAt,
	}
}
