package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"gorm.io/gorm"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/trajectory"
)

// ListSurveys returns all surveys of a wellbore, newest first, without
// station payloads.
func ListSurveys(w http.ResponseWriter, r *http.Request) {
	wellboreID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var surveys []models.DirectionalSurvey
	err = config.DB.Where("wellbore_id = ?", wellboreID).
		Order("created_at DESC").Find(&surveys).Error
	if err != nil {
		respondError(w, apperrors.Internal("listing surveys", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(surveys),
		"data":  surveys,
	})
}

type stationReq struct {
	MD          float64 `json:"md"`
	Inclination float64 `json:"inclination"`
	Azimuth     float64 `json:"azimuth"`
}

type createSurveyReq struct {
	Company          string          `json:"company"`
	SurveyDate       models.JSONTime `json:"surveyDate"`
	Method           string          `json:"method"`
	AzimuthReference string          `json:"azimuthReference"`
	AzimuthOffset    float64         `json:"azimuthOffset"`
	Stations         []stationReq    `json:"stations"`

	// Activate makes this survey the wellbore's canonical one right
	// away, recomputing the trajectory in the same call.
	Activate bool `json:"activate"`
}

// CreateSurvey stores a new directional survey for a wellbore. Stations
// are sorted by measured depth and validated before anything is written;
// the survey lands inactive unless activate is set.
func CreateSurvey(w http.ResponseWriter, r *http.Request) {
	wellboreID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req createSurveyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	if len(req.Stations) < 2 {
		respondError(w, apperrors.Validation("a survey needs at least two stations, got %d", len(req.Stations)))
		return
	}
	if req.AzimuthReference == "" {
		req.AzimuthReference = models.AzimuthRefTrue
	}
	if !models.KnownAzimuthReference(req.AzimuthReference) {
		respondError(w, apperrors.Validation("unknown azimuth reference %q", req.AzimuthReference))
		return
	}
	if !models.KnownSurveyMethod(req.Method) {
		req.Method = models.SurveyMethodUnknown
	}

	sort.SliceStable(req.Stations, func(i, j int) bool {
		return req.Stations[i].MD < req.Stations[j].MD
	})
	stations := make([]trajectory.Station, len(req.Stations))
	for i, s := range req.Stations {
		stations[i] = trajectory.Station{MD: s.MD, Inclination: s.Inclination, Azimuth: s.Azimuth}
	}
	if err := trajectory.Validate(stations); err != nil {
		respondError(w, err)
		return
	}

	var wb models.Wellbore
	if err := config.DB.First(&wb, "id = ?", wellboreID).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", wellboreID))
		return
	}

	survey := models.DirectionalSurvey{
		WellboreID:       wb.ID,
		Company:          req.Company,
		SurveyDate:       req.SurveyDate,
		Method:           req.Method,
		AzimuthReference: req.AzimuthReference,
		AzimuthOffset:    req.AzimuthOffset,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&survey).Error; err != nil {
			return apperrors.Internal("creating survey", err)
		}
		rows := make([]models.SurveyStation, len(req.Stations))
		for i, s := range req.Stations {
			rows[i] = models.SurveyStation{
				SurveyID:    survey.ID,
				Seq:         i,
				MD:          s.MD,
				Inclination: s.Inclination,
				Azimuth:     s.Azimuth,
			}
		}
		if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
			return apperrors.Internal("creating survey stations", err)
		}
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if !req.Activate {
		respondJSON(w, http.StatusCreated, survey)
		return
	}
	result, err := trajectoryEngine().ActivateSurvey(r.Context(), survey.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	survey.IsActive = true
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"survey":  survey,
		"compute": result,
	})
}

// GetSurvey returns one survey with its stations in sequence order.
func GetSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var survey models.DirectionalSurvey
	err = config.DB.Preload("Stations", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&survey, "id = ?", id).Error
	if err != nil {
		respondError(w, apperrors.NotFound("directional survey %s not found", id))
		return
	}
	respondJSON(w, http.StatusOK, survey)
}

// ActivateSurvey flips the survey to active and recomputes the wellbore
// trajectory atomically.
func ActivateSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	result, err := trajectoryEngine().ActivateSurvey(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
