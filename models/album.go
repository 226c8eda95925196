package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Album is an owner-scoped named collection of media with its own
// public link slug and an optional password. The thumbnail references
// media by external identifier and deliberately does not require the
// referenced media to be a member of the album.
type Album struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	UUID               string  `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	OwnerID            uint    `json:"owner_id" gorm:"not null;index"`
	Owner              User    `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name               string  `json:"name" gorm:"not null"`
	Description        *string `json:"description,omitempty"`
	LinkSlug           string  `json:"link_slug" gorm:"uniqueIndex;not null"`
	PasswordHash       *string `json:"-"`
	ThumbnailMediaUUID *string `json:"thumbnail_media_uuid,omitempty" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

func (a *Album) BeforeCreate(tx *gorm.DB) (err error) {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return
}

// SetPassword hashes and sets the album password.
func (a *Album) SetPassword(password string, cost int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	hash := string(hashed)
	a.PasswordHash = &hash
	return nil
}

// CheckPassword verifies a presented password against the stored hash.
// An album without a stored password requires none.
func (a *Album) CheckPassword(password string) bool {
	if a.PasswordHash == nil || *a.PasswordHash == "" {
		return true
	}
	err := bcrypt.CompareHashAndPassword([]byte(*a.PasswordHash), []byte(password))
	return err == nil
}

// AlbumMedia is one element of the album membership set. The pair is
// unique; insertion order carries no meaning.
type AlbumMedia struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	AlbumID uint  `json:"album_id" gorm:"index:idx_album_media,unique;not null"`
	Album   Album `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	MediaID uint  `json:"media_id" gorm:"index:idx_album_media,unique;not null"`
	Media   Media `json:"-" gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (AlbumMedia) TableName() string {
	return "album_media"
}

// AlbumInvite is an explicit per-user grant of access to an album.
// It is inert until the invited user accepts it.
type AlbumInvite struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	UUID          string `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	AlbumID       uint   `json:"album_id" gorm:"index:idx_album_invitee,unique;not null"`
	Album         Album  `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	InvitedUserID uint   `json:"invited_user_id" gorm:"index:idx_album_invitee,unique;not null"`
	InvitedUser   User   `json:"-" gorm:"foreignKey:InvitedUserID;constraint:OnDelete:CASCADE"`
	Accepted      bool   `json:"accepted" gorm:"not null;default:false"`
	WriteAccess   bool   `json:"write_access" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AlbumInvite) TableName() string {
	return "album_invites"
}

func (i *AlbumInvite) BeforeCreate(tx *gorm.DB) (err error) {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	return
}

// AlbumShareLink is a secondary, revocable access channel to one
// album, independent of the album's primary link and of any other
// share link on the same album.
type AlbumShareLink struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UUID         string     `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	AlbumID      uint       `json:"album_id" gorm:"not null;index"`
	Album        Album      `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	LinkSlug     string     `json:"link_slug" gorm:"uniqueIndex;not null"`
	PasswordHash *string    `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // nil means never expires

	CreatedAt time.Time `json:"created_at"`
}

func (AlbumShareLink) TableName() string {
	return "album_share_links"
}

func (l *AlbumShareLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return
}

// SetPassword hashes and sets the share link password.
func (l *AlbumShareLink) SetPassword(password string, cost int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	hash := string(hashed)
	l.PasswordHash = &hash
	return nil
}

// IsExpired reports whether the link is past its expiration at the
// given instant. A link with no expiration never expires; otherwise it
// is valid only strictly before ExpiresAt.
func (l *AlbumShareLink) IsExpired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return !now.Before(*l.ExpiresAt)
}

// CheckPassword verifies a presented password against the stored hash.
// A link without a stored password requires none.
func (l *AlbumShareLink) CheckPassword(password string) bool {
	if l.PasswordHash == nil || *l.PasswordHash == "" {
		return true
	}
	err := bcrypt.CompareHashAndPassword([]byte(*l.PasswordHash), []byte(password))
	return err == nil
}
