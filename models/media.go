package models

import (
	"time"

	"github.com/google/uuid"
)

// Media categories the scanner assigns from filename and extension.
const (
	MediaCore       = "core_photo"
	MediaThinSheet  = "thin_section"
	MediaLogRaster  = "log_raster"
	MediaDocument   = "document"
	MediaOtherMedia = "other"
)

// MediaCatalog is one scanned file attached to a wellbore: a core photo,
// a raster log, a report. Depth ranges parsed out of the filename land in
// TopDepthMD/BaseDepthMD; a single depth sets both to the same value.
type MediaCatalog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellboreID uuid.UUID `gorm:"type:uuid;not null;index"                       json:"wellboreId"`

	MediaType  string `gorm:"size:64;not null"             json:"mediaType"`
	FileFormat string `gorm:"size:16"                      json:"fileFormat"`
	FilePath   string `gorm:"size:1024;not null;uniqueIndex" json:"filePath"`

	TopDepthMD  *float64 `gorm:"column:top_depth_md"  json:"topDepthMd,omitempty"`
	BaseDepthMD *float64 `gorm:"column:base_depth_md" json:"baseDepthMd,omitempty"`

	Description string `gorm:"size:512" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (MediaCatalog) TableName() string {
	return "media_catalog"
}
