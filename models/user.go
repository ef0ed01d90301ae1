package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application roles, in decreasing order of capability. Geologists manage
// tops and surveys, engineers manage surveys and production, viewers read.
const (
	RoleAdmin     = "admin"
	RoleGeologist = "geologist"
	RoleEngineer  = "engineer"
	RoleViewer    = "viewer"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name         string    `gorm:"size:100;not null"             json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"             json:"-"`
	Role         string    `gorm:"size:32;not null;default:'viewer'" json:"role"`
	IsActive     bool      `gorm:"default:true"                  json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
