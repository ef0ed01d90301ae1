package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/trajectory"
)

// ListFormationTops returns the tops of a wellbore ordered by measured
// depth, strat unit attached.
func ListFormationTops(w http.ResponseWriter, r *http.Request) {
	wellboreID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var tops []models.FormationTop
	err = config.DB.Preload("StratUnit").
		Where("wellbore_id = ?", wellboreID).
		Order("depth_md").Find(&tops).Error
	if err != nil {
		respondError(w, apperrors.Internal("listing formation tops", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(tops),
		"data":  tops,
	})
}

type createTopReq struct {
	Formation   string            `json:"formation"`
	Interpreter string            `json:"interpreter"`
	DepthMD     float64           `json:"depthMd"`
	PickQuality *string           `json:"pickQuality"`
	Attributes  map[string]string `json:"attributes"`
}

// CreateFormationTop records one pick. The strat unit is created on
// demand and the occurrence counter continues from the interpreter's
// existing picks of the same unit. When the wellbore already has a
// computed trajectory the derived depths are filled immediately from it.
func CreateFormationTop(w http.ResponseWriter, r *http.Request) {
	wellboreID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req createTopReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	req.Formation = strings.TrimSpace(req.Formation)
	if req.Formation == "" {
		respondError(w, apperrors.Validation("formation name is required"))
		return
	}
	if req.DepthMD < 0 {
		respondError(w, apperrors.Validation("depthMd must be non-negative"))
		return
	}
	if req.Interpreter == "" {
		req.Interpreter = "Unknown"
	}

	var wb models.Wellbore
	if err := config.DB.First(&wb, "id = ?", wellboreID).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", wellboreID))
		return
	}

	top := models.FormationTop{
		WellboreID:  wb.ID,
		Interpreter: req.Interpreter,
		DepthMD:     req.DepthMD,
		PickQuality: req.PickQuality,
	}
	if len(req.Attributes) > 0 {
		if raw, err := json.Marshal(req.Attributes); err == nil {
			top.Attributes = datatypes.JSON(raw)
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		unit := models.StratUnit{Name: req.Formation}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&unit).Error
		if err != nil {
			return apperrors.Internal("creating strat unit", err)
		}
		if err := tx.First(&unit, "name = ?", req.Formation).Error; err != nil {
			return apperrors.Internal("loading strat unit", err)
		}
		top.StratUnitID = unit.ID

		var prior int64
		err = tx.Model(&models.FormationTop{}).
			Where("wellbore_id = ? AND strat_unit_id = ? AND interpreter = ?",
				wb.ID, unit.ID, req.Interpreter).
			Count(&prior).Error
		if err != nil {
			return apperrors.Internal("counting prior picks", err)
		}
		top.Occurrence = int(prior) + 1

		if wb.TrajectoryComputedAt != nil {
			if err := fillDerivedDepths(tx, &wb, &top); err != nil {
				return err
			}
		}
		if err := tx.Create(&top).Error; err != nil {
			return apperrors.Internal("creating formation top", err)
		}
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}

	config.DB.Preload("StratUnit").First(&top, "id = ?", top.ID)
	respondJSON(w, http.StatusCreated, top)
}

// fillDerivedDepths interpolates TVD/TVDSS for a new pick from the stored
// trajectory, the same math the recompute sync applies.
func fillDerivedDepths(tx *gorm.DB, wb *models.Wellbore, top *models.FormationTop) error {
	var points []models.TrajectoryPoint
	err := tx.Select("md", "tvd").
		Where("wellbore_id = ?", wb.ID).Order("seq").Find(&points).Error
	if err != nil {
		return apperrors.Internal("loading trajectory points", err)
	}
	if len(points) == 0 {
		return nil
	}
	pts := make([]trajectory.GeometryPoint, len(points))
	for i, p := range points {
		pts[i] = trajectory.GeometryPoint{MD: p.MD, TVD: p.TVD}
	}
	geom := trajectory.Geometry{Points: pts, TotalMD: pts[len(pts)-1].MD}
	tvd, _ := geom.TVDAt(top.DepthMD)
	tvdss := wb.ReferenceElevation - tvd
	top.DepthTVD = &tvd
	top.DepthTVDSS = &tvdss
	return nil
}
