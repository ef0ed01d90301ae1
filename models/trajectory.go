package models

import (
	"github.com/google/uuid"
)

// TrajectoryPoint is one computed station of a wellbore's path. Depths and
// the local offsets are in the wellbore's declared unit; Easting/Northing
// are in the units of the wellbore CRS (meters for the UTM codes we
// default to). Elevation is the depth datum elevation minus TVD.
//
// Rows are replaced wholesale on every recompute, never updated in place.
type TrajectoryPoint struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WellboreID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_trajectory_wellbore_seq" json:"wellboreId"`
	Seq        int       `gorm:"not null;uniqueIndex:idx_trajectory_wellbore_seq"                 json:"seq"`

	MD  float64 `gorm:"column:md;not null"  json:"md"`
	TVD float64 `gorm:"column:tvd;not null" json:"tvd"`

	NorthOffset float64 `gorm:"column:north_offset;not null" json:"northOffset"`
	EastOffset  float64 `gorm:"column:east_offset;not null"  json:"eastOffset"`

	Easting   float64 `gorm:"column:easting"  json:"easting"`
	Northing  float64 `gorm:"column:northing" json:"northing"`
	Elevation float64 `gorm:"column:elevation" json:"elevation"`
}

func (TrajectoryPoint) TableName() string {
	return "trajectory_points"
}
