package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Well is the master record for a surface well location. One well owns one
// or more wellbores (the original hole plus any sidetracks).
type Well struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UWI              string         `gorm:"column:uwi;size:32;uniqueIndex;not null"        json:"uwi"`
	Name             string         `gorm:"column:well_name;size:255"                      json:"wellName"`
	Operator         string         `gorm:"size:255"                                       json:"operator,omitempty"`
	SurfaceLatitude  *float64       `gorm:"column:surface_lat"                             json:"surfaceLatitude,omitempty"`
	SurfaceLongitude *float64       `gorm:"column:surface_lon"                             json:"surfaceLongitude,omitempty"`
	Attributes       datatypes.JSON `gorm:"type:jsonb"                                     json:"attributes,omitempty"`

	Wellbores []Wellbore `gorm:"foreignKey:WellID" json:"wellbores,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Well) TableName() string {
	return "wells"
}
