package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CurveCatalog indexes one log dataset landed in the curve lake. The
// numeric samples live in the lake blob (snappy-framed), not in Postgres;
// this row records where the blob is and what channels it carries.
type CurveCatalog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellboreID uuid.UUID `gorm:"type:uuid;not null;index"                       json:"wellboreId"`

	DatasetName string         `gorm:"size:255;default:'Imported LAS'" json:"datasetName"`
	LakeURI     string         `gorm:"size:512;not null"               json:"lakeUri"`
	Channels    pq.StringArray `gorm:"type:text[]"                     json:"channels"`

	IndexUnit string  `gorm:"size:8"          json:"indexUnit,omitempty"`
	MinDepth  float64 `gorm:"column:min_depth" json:"minDepth"`
	MaxDepth  float64 `gorm:"column:max_depth" json:"maxDepth"`
	RowCount  int     `gorm:"column:row_count" json:"rowCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (CurveCatalog) TableName() string {
	return "curve_catalog"
}
