package models

import (
	"time"

	"github.com/google/uuid"
)

// Elevation datums a wellbore can declare for its depth reference.
const (
	DatumKB = "KB" // kelly bushing
	DatumDF = "DF" // drill floor
	DatumGL = "GL" // ground level
)

// Depth units accepted on a wellbore. Every depth-bearing record under the
// wellbore (stations, trajectory points, tops) is stored in this unit.
const (
	DepthUnitFeet   = "ft"
	DepthUnitMeters = "m"
)

// KnownElevationDatum reports whether d is one of the declared datums.
func KnownElevationDatum(d string) bool {
	return d == DatumKB || d == DatumDF || d == DatumGL
}

// KnownDepthUnit reports whether u is a supported depth unit.
func KnownDepthUnit(u string) bool {
	return u == DepthUnitFeet || u == DepthUnitMeters
}

// Wellbore is a single drilled hole under a well. It carries the spatial
// reference everything else hangs off: the projected CRS, the anchor
// coordinates of the wellhead in that CRS, the grid convergence at the
// anchor, and the elevation of the depth datum above mean sea level.
//
// The computed trajectory is persisted twice: as typed rows in
// trajectory_points and as a PostGIS LINESTRING Z on trajectory_geom
// (written with raw SQL, so the geometry column is not mapped here).
type Wellbore struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_wellbores_well_name" json:"wellId"`
	Well   *Well     `gorm:"foreignKey:WellID" json:"well,omitempty"`

	Name string `gorm:"size:64;not null;default:'OH';uniqueIndex:idx_wellbores_well_name" json:"name"`

	CRSEPSG         *int     `gorm:"column:crs_epsg"         json:"crsEpsg,omitempty"`
	GridConvergence *float64 `gorm:"column:grid_convergence" json:"gridConvergence,omitempty"` // degrees, grid north east of true north
	SurfaceEasting  *float64 `gorm:"column:surface_easting"  json:"surfaceEasting,omitempty"`
	SurfaceNorthing *float64 `gorm:"column:surface_northing" json:"surfaceNorthing,omitempty"`

	ReferenceElevation float64 `gorm:"column:reference_elevation" json:"referenceElevation"`
	ElevationDatum     string  `gorm:"size:8;default:'KB'"        json:"elevationDatum"`
	DepthUnit          string  `gorm:"size:4;default:'ft'"        json:"depthUnit"`

	TotalDepthMD  *float64 `gorm:"column:total_depth_md"  json:"totalDepthMd,omitempty"`
	TotalDepthTVD *float64 `gorm:"column:total_depth_tvd" json:"totalDepthTvd,omitempty"`

	TrajectoryComputedAt *time.Time `gorm:"column:trajectory_computed_at" json:"trajectoryComputedAt,omitempty"`

	Surveys []DirectionalSurvey `gorm:"foreignKey:WellboreID" json:"surveys,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Wellbore) TableName() string {
	return "wellbores"
}

// Projected reports whether the wellbore has everything the projector
// needs to place local offsets into its CRS.
func (w *Wellbore) Projected() bool {
	return w.CRSEPSG != nil && w.SurfaceEasting != nil && w.SurfaceNorthing != nil
}
