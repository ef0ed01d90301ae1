// Package trajectory implements the wellbore position kernel: station
// validation, the Minimum Curvature Method, projection of local offsets
// into a projected CRS, and assembly of the 3-D path geometry.
//
// Everything in this package is a pure function of its inputs. Depths and
// offsets stay in the caller's declared unit until projection applies the
// single explicit unit scale.
package trajectory

import "math"

// Station is one survey measurement: measured depth in the declared
// linear unit, inclination and azimuth in degrees.
type Station struct {
	MD          float64 `json:"md"`
	Inclination float64 `json:"inclination"`
	Azimuth     float64 `json:"azimuth"`
}

// Point is one computed position along the path, accumulated from the
// surface station. Offsets share the measured-depth unit and are relative
// to the wellhead, north positive toward the survey's north reference.
type Point struct {
	MD          float64 `json:"md"`
	TVD         float64 `json:"tvd"`
	NorthOffset float64 `json:"northOffset"`
	EastOffset  float64 `json:"eastOffset"`
}

// NormalizeAzimuth wraps an azimuth in degrees into [0, 360). Survey-level
// corrections (declination, reference shifts) can push a legal azimuth out
// of range; callers apply this after adding such offsets.
func NormalizeAzimuth(az float64) float64 {
	az = math.Mod(az, 360)
	if az < 0 {
		az += 360
	}
	// Adding the period to a tiny negative can round back to exactly 360.
	if az >= 360 {
		az = 0
	}
	return az
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
