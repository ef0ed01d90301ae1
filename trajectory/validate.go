package trajectory

import (
	"math"

	"github.com/wellbase/wellbase/pkg/apperrors"
)

// Validate checks an ordered station list for structural correctness and
// reports the first offending station. It never mutates its input and
// produces no partial result: a survey either passes whole or fails.
//
// Rules: at least one station; every value finite; the first station sits
// at measured depth zero (the surface reference); measured depth strictly
// increasing; inclination in [0, 180]; azimuth in [0, 360).
func Validate(stations []Station) error {
	if len(stations) == 0 {
		return apperrors.Validation("survey has no stations")
	}
	for i, s := range stations {
		if err := checkFinite(i, "md", s.MD); err != nil {
			return err
		}
		if err := checkFinite(i, "inclination", s.Inclination); err != nil {
			return err
		}
		if err := checkFinite(i, "azimuth", s.Azimuth); err != nil {
			return err
		}
		if i == 0 {
			if s.MD != 0 {
				return apperrors.Validation("station 0: first station must be at measured depth 0, got %g", s.MD).
					WithDetails(map[string]interface{}{"station": 0, "field": "md"})
			}
		} else if s.MD <= stations[i-1].MD {
			return apperrors.Validation("station %d: measured depth %g does not increase past %g", i, s.MD, stations[i-1].MD).
				WithDetails(map[string]interface{}{"station": i, "field": "md"})
		}
		if s.Inclination < 0 || s.Inclination > 180 {
			return apperrors.Validation("station %d: inclination %g outside [0, 180]", i, s.Inclination).
				WithDetails(map[string]interface{}{"station": i, "field": "inclination"})
		}
		if s.Azimuth < 0 || s.Azimuth >= 360 {
			return apperrors.Validation("station %d: azimuth %g outside [0, 360)", i, s.Azimuth).
				WithDetails(map[string]interface{}{"station": i, "field": "azimuth"})
		}
	}
	return nil
}

func checkFinite(i int, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.Validation("station %d: %s is not a finite number", i, field).
			WithDetails(map[string]interface{}{"station": i, "field": field})
	}
	return nil
}
