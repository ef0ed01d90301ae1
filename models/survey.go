package models

import (
	"time"

	"github.com/google/uuid"
)

// Acquisition methods a directional survey can declare. Anything else the
// loaders see is coerced to SurveyMethodUnknown rather than rejected.
const (
	SurveyMethodMWD     = "MWD"
	SurveyMethodGyro    = "Gyro"
	SurveyMethodTotco   = "Totco"
	SurveyMethodUnknown = "Unknown"
)

// KnownSurveyMethod reports whether m is one of the declared methods.
func KnownSurveyMethod(m string) bool {
	switch m {
	case SurveyMethodMWD, SurveyMethodGyro, SurveyMethodTotco, SurveyMethodUnknown:
		return true
	}
	return false
}

// North references the raw azimuths of a survey can be quoted against.
const (
	AzimuthRefTrue     = "true"
	AzimuthRefGrid     = "grid"
	AzimuthRefMagnetic = "magnetic"
)

// KnownAzimuthReference reports whether r is a supported north reference.
func KnownAzimuthReference(r string) bool {
	return r == AzimuthRefTrue || r == AzimuthRefGrid || r == AzimuthRefMagnetic
}

// DirectionalSurvey is one acquisition run of survey stations for a
// wellbore. Several surveys can exist per wellbore but at most one is
// active; the active one feeds the trajectory. The single-active rule is
// enforced by a partial unique index created in the migrations.
type DirectionalSurvey struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellboreID uuid.UUID `gorm:"type:uuid;not null;index"                       json:"wellboreId"`
	Wellbore   *Wellbore `gorm:"foreignKey:WellboreID"                          json:"wellbore,omitempty"`

	Company    string   `gorm:"size:255"            json:"company,omitempty"`
	SurveyDate JSONTime `gorm:"column:survey_date"  json:"surveyDate"`
	Method     string   `gorm:"size:16;default:'Unknown'" json:"method"`

	// AzimuthReference declares what north the raw station azimuths are
	// quoted against. AzimuthOffset is added to every raw azimuth before
	// computation (e.g. a magnetic declination correction).
	AzimuthReference string  `gorm:"size:16;default:'true'" json:"azimuthReference"`
	AzimuthOffset    float64 `gorm:"default:0"              json:"azimuthOffset"`

	IsActive bool `gorm:"default:false;index" json:"isActive"`

	Stations []SurveyStation `gorm:"foreignKey:SurveyID" json:"stations,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (DirectionalSurvey) TableName() string {
	return "directional_surveys"
}

// SurveyStation is one measured row of a directional survey: measured
// depth with the inclination and azimuth observed there. Depths are in the
// owning wellbore's declared unit, angles in degrees.
type SurveyStation struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	SurveyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_stations_survey_seq" json:"surveyId"`
	Seq      int       `gorm:"not null;uniqueIndex:idx_stations_survey_seq"                 json:"seq"`

	MD          float64 `gorm:"column:md;not null" json:"md"`
	Inclination float64 `gorm:"not null"           json:"inclination"`
	Azimuth     float64 `gorm:"not null"           json:"azimuth"`
}

func (SurveyStation) TableName() string {
	return "survey_stations"
}
