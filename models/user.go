package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents an account in the system. Federated-only accounts
// carry no password credential at all (PasswordHash is nil).
type User struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	UUID         string  `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null"`
	Email        string  `json:"email"`
	PasswordHash *string `json:"-"`

	FederatedIdentities []FederatedIdentity `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate generates the external identifier if not provided.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.UUID == "" {
		u.UUID = uuid.New().String()
	}
	return
}

// SetPassword hashes the given password with the given bcrypt cost and
// sets it on the user model.
func (u *User) SetPassword(password string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	hash := string(hashedPassword)
	u.PasswordHash = &hash
	return nil
}

// HasPassword reports whether the account has a password credential.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// CheckPassword verifies if the given password matches the user's
// hashed password. Always false for federated-only accounts.
func (u *User) CheckPassword(password string) bool {
	if !u.HasPassword() {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password))
	return err == nil
}

// FederatedIdentity links a (provider key, subject) pair from an
// external identity provider to exactly one local user. The pair is
// globally unique for its lifetime and is removed with the user.
type FederatedIdentity struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProviderKey string `json:"provider_key" gorm:"index:idx_provider_subject,unique;not null"`
	Subject     string `json:"subject" gorm:"index:idx_provider_subject,unique;not null"`
	UserID      uint   `json:"user_id" gorm:"not null"`
	User        User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (FederatedIdentity) TableName() string {
	return "federated_identities"
}
