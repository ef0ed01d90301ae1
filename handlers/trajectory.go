package handlers

import (
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// RecomputeTrajectory rebuilds the wellbore's trajectory from its active
// survey and rewrites every dependent record in one transaction.
func RecomputeTrajectory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	result, err := trajectoryEngine().Recompute(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetTrajectory returns the stored trajectory points of a wellbore in
// path order.
func GetTrajectory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var wb models.Wellbore
	if err := config.DB.First(&wb, "id = ?", id).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", id))
		return
	}
	if wb.TrajectoryComputedAt == nil {
		respondError(w, apperrors.NotFound("wellbore %s has no computed trajectory", id))
		return
	}
	var points []models.TrajectoryPoint
	err = config.DB.Where("wellbore_id = ?", id).Order("seq").Find(&points).Error
	if err != nil {
		respondError(w, apperrors.Internal("loading trajectory points", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"wellboreId":    wb.ID,
		"crsEpsg":       wb.CRSEPSG,
		"depthUnit":     wb.DepthUnit,
		"totalDepthMd":  wb.TotalDepthMD,
		"totalDepthTvd": wb.TotalDepthTVD,
		"computedAt":    wb.TrajectoryComputedAt,
		"points":        points,
	})
}

// GetTrajectoryGeoJSON returns the plan view of the trajectory as a
// GeoJSON feature. Coordinates are easting/northing in the wellbore's
// projected CRS; the EPSG code rides along in the properties since
// GeoJSON itself cannot declare it.
func GetTrajectoryGeoJSON(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var wb models.Wellbore
	if err := config.DB.Preload("Well").First(&wb, "id = ?", id).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", id))
		return
	}
	if wb.TrajectoryComputedAt == nil {
		respondError(w, apperrors.NotFound("wellbore %s has no computed trajectory", id))
		return
	}
	var points []models.TrajectoryPoint
	err = config.DB.Where("wellbore_id = ?", id).Order("seq").Find(&points).Error
	if err != nil {
		respondError(w, apperrors.Internal("loading trajectory points", err))
		return
	}

	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p.Easting, p.Northing}
	}
	feature := geojson.NewFeature(line)
	feature.Properties = geojson.Properties{
		"wellboreId": wb.ID.String(),
		"wellbore":   wb.Name,
		"crsEpsg":    wb.CRSEPSG,
		"depthUnit":  wb.DepthUnit,
		"points":     len(points),
		"computedAt": wb.TrajectoryComputedAt,
	}
	if wb.Well != nil {
		feature.Properties["uwi"] = wb.Well.UWI
		feature.Properties["wellName"] = wb.Well.Name
	}
	if wb.TotalDepthMD != nil {
		feature.Properties["totalDepthMd"] = *wb.TotalDepthMD
	}
	if wb.TotalDepthTVD != nil {
		feature.Properties["totalDepthTvd"] = *wb.TotalDepthTVD
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	respondJSON(w, http.StatusOK, fc)
}
