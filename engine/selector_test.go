package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wellbase/wellbase/models"
)

func surveyOn(id string, date time.Time) models.DirectionalSurvey {
	return models.DirectionalSurvey{
		ID:         uuid.MustParse(id),
		SurveyDate: models.JSONTime{Time: date},
		IsActive:   true,
	}
}

func TestPickActive(t *testing.T) {
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	lowID := "11111111-1111-1111-1111-111111111111"
	midID := "55555555-5555-5555-5555-555555555555"
	highID := "99999999-9999-9999-9999-999999999999"

	tests := []struct {
		name    string
		surveys []models.DirectionalSurvey
		wantID  string
	}{
		{
			name:    "single active survey",
			surveys: []models.DirectionalSurvey{surveyOn(midID, may)},
			wantID:  midID,
		},
		{
			name: "latest date wins",
			surveys: []models.DirectionalSurvey{
				surveyOn(highID, may),
				surveyOn(lowID, june),
			},
			wantID: lowID,
		},
		{
			name: "date tie broken by larger id",
			surveys: []models.DirectionalSurvey{
				surveyOn(midID, june),
				surveyOn(highID, june),
				surveyOn(lowID, june),
			},
			wantID: highID,
		},
		{
			name: "order of input does not matter",
			surveys: []models.DirectionalSurvey{
				surveyOn(highID, june),
				surveyOn(midID, june),
			},
			wantID: highID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickActive(tt.surveys)
			if got.ID != uuid.MustParse(tt.wantID) {
				t.Errorf("pickActive() = %s, expected %s", got.ID, tt.wantID)
			}
		})
	}
}
