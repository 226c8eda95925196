package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a node in a user's self-referential folder tree. A nil
// ParentID marks a root; every ancestor chain must terminate at a
// root, which the content index enforces on each reparent.
type Folder struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	UUID     string  `json:"uuid" gorm:"uniqueIndex;size:36;not null"`
	OwnerID  uint    `json:"owner_id" gorm:"not null;index"`
	Owner    User    `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	ParentID *uint   `json:"parent_id,omitempty" gorm:"index"`
	Parent   *Folder `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Name     string  `json:"name" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Folder) TableName() string {
	return "folders"
}

func (f *Folder) BeforeCreate(tx *gorm.DB) (err error) {
	if f.UUID == "" {
		f.UUID = uuid.New().String()
	}
	return
}

// IsRoot reports whether the folder terminates an ancestor chain.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
