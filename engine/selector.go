package engine

import (
	"bytes"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// pickActive chooses the canonical survey from a set that all carry the
// active flag. One flagged survey is the normal case; if the single-active
// invariant has been violated the latest survey date wins, and the larger
// id breaks a date tie so the choice stays deterministic.
func pickActive(surveys []models.DirectionalSurvey) *models.DirectionalSurvey {
	best := &surveys[0]
	for i := 1; i < len(surveys); i++ {
		s := &surveys[i]
		switch {
		case s.SurveyDate.Time.After(best.SurveyDate.Time):
			best = s
		case s.SurveyDate.Time.Equal(best.SurveyDate.Time) && bytes.Compare(s.ID[:], best.ID[:]) > 0:
			best = s
		}
	}
	return best
}

// activeSurvey loads the survey to compute from, with its stations in
// sequence order. No active survey is a configuration problem, not an
// internal one: the wellbore simply is not set up for computation yet.
func (e *Engine) activeSurvey(tx *gorm.DB, wellbore *models.Wellbore) (*models.DirectionalSurvey, error) {
	var surveys []models.DirectionalSurvey
	if err := tx.Where("wellbore_id = ? AND is_active", wellbore.ID).Find(&surveys).Error; err != nil {
		return nil, apperrors.Internal("loading directional surveys", err)
	}
	if len(surveys) == 0 {
		return nil, apperrors.Configuration("wellbore %s has no active directional survey", wellbore.ID)
	}
	if len(surveys) > 1 {
		e.log.Warn("multiple active surveys on one wellbore, tie-breaking by survey date",
			zap.String("wellbore", wellbore.ID.String()),
			zap.Int("activeCount", len(surveys)))
	}

	survey := pickActive(surveys)
	if err := tx.Where("survey_id = ?", survey.ID).Order("seq asc").Find(&survey.Stations).Error; err != nil {
		return nil, apperrors.Internal("loading survey stations", err)
	}
	return survey, nil
}
