package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media is an indexed media record. The raw bytes live in the blob
// store and are addressed by ContentHash; the core never inspects
// them. Width, height and capture time arrive from the external
// metadata extractor as opaque input.
//
// The composite unique index on (owner, content hash) makes two
// uploads of byte-identical content by the same owner converge to one
// logical record.
type Media struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UUID        string  `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	Filename    string  `json:"filename" gorm:"not null"`
	FolderID    uint    `json:"folder_id" gorm:"not null;index"`
	Folder      Folder  `json:"-" gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
	OwnerID     uint    `json:"owner_id" gorm:"not null;index:idx_owner_content_hash,unique"`
	Owner       User    `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Description *string `json:"description,omitempty"`

	// TakenAt is the capture timestamp reported by the metadata
	// extractor, not the upload time.
	TakenAt time.Time `json:"taken_at" gorm:"index"`

	// ContentHash is the SHA-512 digest of the media bytes, hex encoded.
	ContentHash string `json:"content_hash" gorm:"size:128;not null;index:idx_owner_content_hash,unique"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) (err error) {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return
}

// MediaMetadata carries the extractor-supplied attributes of an
// uploaded file into the content index.
type MediaMetadata struct {
	Filename    string
	Width       int
	Height      int
	Description *string
	TakenAt     time.Time
}

// FavoriteMedia is a per-user bookmark on a media item. It implies no
// ownership and vanishes with either side of the pair.
type FavoriteMedia struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	MediaID uint  `json:"media_id" gorm:"index:idx_favorite_media_user,unique;not null"`
	Media   Media `json:"-" gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE"`
	UserID  uint  `json:"user_id" gorm:"index:idx_favorite_media_user,unique;not null"`
	User    User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteMedia) TableName() string {
	return "favorite_media"
}
