package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StratUnit is a named stratigraphic unit (formation, member, marker).
// Rows are created on demand by the tops loader and shared across wells.
type StratUnit struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null;uniqueIndex"                  json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (StratUnit) TableName() string {
	return "strat_units"
}

// FormationTop is one interpreter's pick of a strat unit in a wellbore.
// A unit can legitimately be picked more than once in the same hole
// (faulted or repeated section), so Occurrence joins the identity: the
// pair (wellbore, unit, interpreter, occurrence) is unique.
//
// DepthMD is authoritative. DepthTVD and DepthTVDSS are derived from the
// wellbore trajectory and rewritten whenever the trajectory changes.
type FormationTop struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellboreID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tops_identity" json:"wellboreId"`
	StratUnitID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tops_identity"       json:"stratUnitId"`
	StratUnit   *StratUnit `gorm:"foreignKey:StratUnitID" json:"stratUnit,omitempty"`

	Interpreter string `gorm:"size:128;not null;default:'Unknown';uniqueIndex:idx_tops_identity" json:"interpreter"`
	Occurrence  int    `gorm:"not null;default:1;uniqueIndex:idx_tops_identity"                  json:"occurrence"`

	DepthMD    float64  `gorm:"column:depth_md;not null" json:"depthMd"`
	DepthTVD   *float64 `gorm:"column:depth_tvd"         json:"depthTvd,omitempty"`
	DepthTVDSS *float64 `gorm:"column:depth_tvdss"       json:"depthTvdss,omitempty"`

	PickQuality *string        `gorm:"size:64"    json:"pickQuality,omitempty"`
	Attributes  datatypes.JSON `gorm:"type:jsonb" json:"attributes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FormationTop) TableName() string {
	return "formation_tops"
}
