package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/utils"
)

// ListWells returns wells filtered by the optional uwi/operator/name query
// parameters, paginated.
func ListWells(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Well{})
	if uwi := r.URL.Query().Get("uwi"); uwi != "" {
		q = q.Where("uwi LIKE ?", utils.NormalizeUWI(uwi)+"%")
	}
	if op := r.URL.Query().Get("operator"); op != "" {
		q = q.Where("operator ILIKE ?", "%"+op+"%")
	}
	if name := r.URL.Query().Get("name"); name != "" {
		q = q.Where("well_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(w, apperrors.Internal("counting wells", err))
		return
	}
	var wells []models.Well
	if err := q.Order("uwi").Limit(limit).Offset(offset).Find(&wells).Error; err != nil {
		respondError(w, apperrors.Internal("listing wells", err))
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Total: total, Page: page, Limit: limit, Data: wells})
}

type wellSearchReq struct {
	// AOI is a GeoJSON Polygon or MultiPolygon in geographic coordinates.
	AOI      json.RawMessage `json:"aoi"`
	Operator string          `json:"operator,omitempty"`
}

// SearchWells returns the wells whose surface location falls inside the
// posted area of interest. The polygon's bounding box narrows the query;
// the exact point-in-polygon test runs on the candidates.
func SearchWells(w http.ResponseWriter, r *http.Request) {
	var req wellSearchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	if len(req.AOI) == 0 {
		respondError(w, apperrors.Validation("aoi geometry is required"))
		return
	}
	geom, err := geojson.UnmarshalGeometry(req.AOI)
	if err != nil {
		respondError(w, apperrors.Validation("aoi is not valid GeoJSON: %v", err))
		return
	}

	var contains func(orb.Point) bool
	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		contains = func(p orb.Point) bool { return planar.PolygonContains(g, p) }
	case orb.MultiPolygon:
		contains = func(p orb.Point) bool { return planar.MultiPolygonContains(g, p) }
	default:
		respondError(w, apperrors.Validation("aoi must be a Polygon or MultiPolygon, got %s", geom.Type))
		return
	}
	bound := geom.Geometry().Bound()

	q := config.DB.
		Where("surface_lon BETWEEN ? AND ?", bound.Min[0], bound.Max[0]).
		Where("surface_lat BETWEEN ? AND ?", bound.Min[1], bound.Max[1])
	if req.Operator != "" {
		q = q.Where("operator ILIKE ?", "%"+req.Operator+"%")
	}
	var candidates []models.Well
	if err := q.Order("uwi").Find(&candidates).Error; err != nil {
		respondError(w, apperrors.Internal("searching wells", err))
		return
	}

	inside := make([]models.Well, 0, len(candidates))
	for _, well := range candidates {
		if well.SurfaceLongitude == nil || well.SurfaceLatitude == nil {
			continue
		}
		if contains(orb.Point{*well.SurfaceLongitude, *well.SurfaceLatitude}) {
			inside = append(inside, well)
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(inside),
		"data":  inside,
	})
}

type createWellReq struct {
	UWI              string            `json:"uwi"`
	WellName         string            `json:"wellName"`
	Operator         string            `json:"operator"`
	SurfaceLatitude  *float64          `json:"surfaceLatitude"`
	SurfaceLongitude *float64          `json:"surfaceLongitude"`
	Attributes       map[string]string `json:"attributes"`
}

// CreateWell registers a well and its default "OH" wellbore, the same
// shape the bulk header loader produces.
func CreateWell(w http.ResponseWriter, r *http.Request) {
	var req createWellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	uwi := utils.NormalizeUWI(req.UWI)
	if uwi == "" {
		respondError(w, apperrors.Validation("uwi is required"))
		return
	}

	well := models.Well{
		UWI:              uwi,
		Name:             req.WellName,
		Operator:         req.Operator,
		SurfaceLatitude:  req.SurfaceLatitude,
		SurfaceLongitude: req.SurfaceLongitude,
	}
	if len(req.Attributes) > 0 {
		raw, err := json.Marshal(req.Attributes)
		if err == nil {
			well.Attributes = raw
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&well).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return apperrors.Consistency("well %s already exists", uwi)
			}
			return apperrors.Internal("creating well", err)
		}
		if well.SurfaceLatitude != nil && well.SurfaceLongitude != nil {
			err := tx.Exec(`UPDATE wells
				SET surface_geom = ST_SetSRID(ST_MakePoint(surface_lon, surface_lat), 4269)
				WHERE id = ?`, well.ID).Error
			if err != nil {
				return apperrors.Internal("writing surface geometry", err)
			}
		}

		wb := models.Wellbore{WellID: well.ID, Name: "OH"}
		if well.SurfaceLongitude != nil {
			epsg := utils.NAD83UTMEPSG(utils.UTMZone(*well.SurfaceLongitude))
			wb.CRSEPSG = &epsg
		}
		if err := tx.Create(&wb).Error; err != nil {
			return apperrors.Internal("creating default wellbore", err)
		}
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}

	config.DB.Preload("Wellbores").First(&well, "id = ?", well.ID)
	respondJSON(w, http.StatusCreated, well)
}

type wellDetail struct {
	models.Well
	SurfaceWKT string `json:"surfaceWkt,omitempty"`
}

// GetWell returns one well with its wellbores and the surface location as
// WKT when coordinates are present.
func GetWell(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var well models.Well
	if err := config.DB.Preload("Wellbores").First(&well, "id = ?", id).Error; err != nil {
		respondError(w, apperrors.NotFound("well %s not found", id))
		return
	}
	out := wellDetail{Well: well}
	if well.SurfaceLongitude != nil && well.SurfaceLatitude != nil {
		out.SurfaceWKT = wkt.MarshalString(orb.Point{*well.SurfaceLongitude, *well.SurfaceLatitude})
	}
	respondJSON(w, http.StatusOK, out)
}
