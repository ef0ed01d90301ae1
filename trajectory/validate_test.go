package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/wellbase/wellbase/pkg/apperrors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		stations []Station
		wantErr  bool
	}{
		// Station count and surface reference
		{"no stations", nil, true},
		{"single surface station", []Station{{MD: 0}}, false},
		{"first station off surface", []Station{{MD: 12.5}, {MD: 100}}, true},

		// Measured depth ordering
		{"increasing depths", []Station{{MD: 0}, {MD: 500, Inclination: 10, Azimuth: 90}, {MD: 1000, Inclination: 12, Azimuth: 91}}, false},
		{"duplicate depth", []Station{{MD: 0}, {MD: 500}, {MD: 500}}, true},
		{"decreasing depth", []Station{{MD: 0}, {MD: 800}, {MD: 700}}, true},

		// Angle ranges
		{"inclination at upper bound", []Station{{MD: 0}, {MD: 100, Inclination: 180}}, false},
		{"inclination negative", []Station{{MD: 0}, {MD: 100, Inclination: -0.1}}, true},
		{"inclination past 180", []Station{{MD: 0}, {MD: 100, Inclination: 180.01}}, true},
		{"azimuth zero ok", []Station{{MD: 0, Azimuth: 0}, {MD: 100, Azimuth: 0}}, false},
		{"azimuth just under 360", []Station{{MD: 0}, {MD: 100, Azimuth: 359.99}}, false},
		{"azimuth at 360", []Station{{MD: 0}, {MD: 100, Azimuth: 360}}, true},
		{"azimuth negative", []Station{{MD: 0}, {MD: 100, Azimuth: -5}}, true},

		// Non-finite values
		{"nan measured depth", []Station{{MD: 0}, {MD: math.NaN()}}, true},
		{"inf inclination", []Station{{MD: 0}, {MD: 100, Inclination: math.Inf(1)}}, true},
		{"nan azimuth", []Station{{MD: 0}, {MD: 100, Azimuth: math.NaN()}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.stations)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Errorf("Validate() kind = %v, expected %v", apperrors.KindOf(err), apperrors.KindValidation)
			}
		})
	}
}

func TestValidateReportsFirstOffender(t *testing.T) {
	stations := []Station{
		{MD: 0, Inclination: 0, Azimuth: 0},
		{MD: 400, Inclination: 20, Azimuth: 45},
		{MD: 300, Inclination: 400, Azimuth: -90}, // depth error must win over angle errors
	}
	err := Validate(stations)
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("Validate() returned %T, expected *apperrors.Error", err)
	}
	if got := appErr.Details["station"]; got != 2 {
		t.Errorf("offending station = %v, expected 2", got)
	}
	if got := appErr.Details["field"]; got != "md" {
		t.Errorf("offending field = %v, expected md", got)
	}
}
