package auth

import (
	"errors"
	"fmt"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// IdentityService resolves credentials to users and provisions new
// accounts, for both password and federated logins.
type IdentityService struct {
	users    repository.UserRepository
	hashCost int
}

func NewIdentityService(users repository.UserRepository, hashCost int) *IdentityService {
	return &IdentityService{users: users, hashCost: hashCost}
}

// Register creates a password account. A taken username surfaces as
// ErrConflict.
func (s *IdentityService) Register(username, email, password string) (*models.User, error) {
	user := &models.User{Username: username, Email: email}
	if err := user.SetPassword(password, s.hashCost); err != nil {
		return nil, err
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResolvePassword checks a username/password credential. Accounts
// without a password credential (federated-only) yield
// ErrNoPasswordSet rather than ErrWrongPassword.
func (s *IdentityService) ResolvePassword(username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, apperrors.ErrNoPasswordSet
	}
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrWrongPassword
	}
	return user, nil
}

// ResolveFederated maps a (provider key, subject) pair to its user,
// provisioning a passwordless account on first sight. Concurrent first
// sights converge on the pair's unique constraint: the loser of the
// race re-reads the winner's row.
func (s *IdentityService) ResolveFederated(providerKey, subject, email string) (*models.User, error) {
	user, err := s.users.GetByFederatedIdentity(providerKey, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	newUser := &models.User{
		// deterministic per pair, so racing provisions collide on the
		// username as well as the identity and converge either way
		Username: fmt.Sprintf("%s:%s", providerKey, subject),
		Email:    email,
	}
	identity := &models.FederatedIdentity{ProviderKey: providerKey, Subject: subject}
	if err := s.users.CreateWithFederatedIdentity(newUser, identity); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return s.users.GetByFederatedIdentity(providerKey, subject)
		}
		return nil, err
	}
	return newUser, nil
}
