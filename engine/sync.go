package engine

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/trajectory"
)

// syncFormationTops rewrites the derived depth fields of every formation
// top on the wellbore from the freshly built geometry. Tops outside the
// surveyed range hold the nearest endpoint's TVD flat with a warning
// instead of failing the batch. Runs inside the recompute transaction, so
// geometry and tops move together or not at all.
func (e *Engine) syncFormationTops(tx *gorm.DB, wellbore *models.Wellbore, geom trajectory.Geometry) (int, error) {
	var tops []models.FormationTop
	if err := tx.Where("wellbore_id = ?", wellbore.ID).Find(&tops).Error; err != nil {
		return 0, apperrors.Internal("loading formation tops", err)
	}

	updated := 0
	for i := range tops {
		top := &tops[i]
		tvd, clamped := geom.TVDAt(top.DepthMD)
		if clamped {
			e.log.Warn("formation top outside surveyed range, holding endpoint TVD",
				zap.String("wellbore", wellbore.ID.String()),
				zap.String("top", top.ID.String()),
				zap.Float64("topMd", top.DepthMD),
				zap.Float64("holeMd", geom.TotalMD))
		}
		tvdss := wellbore.ReferenceElevation - tvd
		err := tx.Model(&models.FormationTop{}).Where("id = ?", top.ID).Updates(map[string]interface{}{
			"depth_tvd":   tvd,
			"depth_tvdss": tvdss,
		}).Error
		if err != nil {
			return updated, apperrors.Internal("updating formation top depth", err)
		}
		updated++
	}
	return updated, nil
}
