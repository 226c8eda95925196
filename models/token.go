package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is the long-lived half of a credential pair. There is
// no explicit state column: whether a token is active or expired is
// computed from ExpiresAt at read time. Deleting a refresh token
// cascades to every access token minted from it.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Secret    string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return
}

// IsExpired reports whether the token is past its expiration.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// AccessToken is a short-lived credential minted from a live refresh
// token. Its row disappears with the parent via the store cascade.
type AccessToken struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	UUID           string       `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	RefreshTokenID uint         `json:"refresh_token_id" gorm:"not null;index"`
	RefreshToken   RefreshToken `json:"-" gorm:"foreignKey:RefreshTokenID;constraint:OnDelete:CASCADE"`
	Secret         string       `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt      time.Time    `json:"expires_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

func (t *AccessToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return
}

// IsExpired reports whether the token is past its expiration.
func (t *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// SessionTokens is the pair handed back at login and rotation.
type SessionTokens struct {
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
}
