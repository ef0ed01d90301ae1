package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// GetWellbore returns one wellbore with its surveys (stations omitted).
func GetWellbore(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var wb models.Wellbore
	err = config.DB.Preload("Well").Preload("Surveys").First(&wb, "id = ?", id).Error
	if err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", id))
		return
	}
	respondJSON(w, http.StatusOK, wb)
}

type updateWellboreReq struct {
	CRSEPSG            *int     `json:"crsEpsg"`
	GridConvergence    *float64 `json:"gridConvergence"`
	SurfaceEasting     *float64 `json:"surfaceEasting"`
	SurfaceNorthing    *float64 `json:"surfaceNorthing"`
	ReferenceElevation *float64 `json:"referenceElevation"`
	ElevationDatum     *string  `json:"elevationDatum"`
	DepthUnit          *string  `json:"depthUnit"`
}

// UpdateWellbore patches the wellbore's spatial reference metadata. Only
// the fields present in the body change. The stored trajectory is NOT
// recomputed here; callers follow up with a recompute when the new
// metadata should take effect.
func UpdateWellbore(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req updateWellboreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}

	updates := map[string]interface{}{}
	if req.CRSEPSG != nil {
		if *req.CRSEPSG <= 0 {
			respondError(w, apperrors.Validation("crsEpsg must be a positive EPSG code"))
			return
		}
		updates["crs_epsg"] = *req.CRSEPSG
	}
	if req.GridConvergence != nil {
		updates["grid_convergence"] = *req.GridConvergence
	}
	if req.SurfaceEasting != nil {
		updates["surface_easting"] = *req.SurfaceEasting
	}
	if req.SurfaceNorthing != nil {
		updates["surface_northing"] = *req.SurfaceNorthing
	}
	if req.ReferenceElevation != nil {
		updates["reference_elevation"] = *req.ReferenceElevation
	}
	if req.ElevationDatum != nil {
		if !models.KnownElevationDatum(*req.ElevationDatum) {
			respondError(w, apperrors.Validation("unknown elevation datum %q", *req.ElevationDatum))
			return
		}
		updates["elevation_datum"] = *req.ElevationDatum
	}
	if req.DepthUnit != nil {
		if !models.KnownDepthUnit(*req.DepthUnit) {
			respondError(w, apperrors.Validation("unknown depth unit %q", *req.DepthUnit))
			return
		}
		updates["depth_unit"] = *req.DepthUnit
	}
	if len(updates) == 0 {
		respondError(w, apperrors.Validation("no updatable fields in body"))
		return
	}

	var wb models.Wellbore
	if err := config.DB.First(&wb, "id = ?", id).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", id))
		return
	}
	if err := config.DB.Model(&wb).Updates(updates).Error; err != nil {
		respondError(w, apperrors.Internal("updating wellbore", err))
		return
	}
	respondJSON(w, http.StatusOK, wb)
}
