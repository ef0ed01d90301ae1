package trajectory

import (
	"math"

	"github.com/wellbase/wellbase/pkg/apperrors"
)

// Anchor pins a wellbore's local offset frame to a projected CRS: the
// wellhead coordinate in that CRS, the grid convergence at the wellhead,
// and the scale from the survey's linear unit into CRS units.
type Anchor struct {
	EPSG        int
	Easting     float64
	Northing    float64
	Convergence float64 // degrees, grid north east of true north
	UnitScale   float64 // survey unit -> CRS unit, e.g. 0.3048 for ft into a metric grid
	GridAligned bool    // azimuths already reference grid north; rotation is skipped
}

// GeometryPoint is a fully placed trajectory position: the local frame
// carried through from Compute plus absolute CRS coordinates. Elevation
// is filled in by BuildGeometry.
type GeometryPoint struct {
	MD          float64 `json:"md"`
	TVD         float64 `json:"tvd"`
	NorthOffset float64 `json:"northOffset"`
	EastOffset  float64 `json:"eastOffset"`
	Easting     float64 `json:"easting"`
	Northing    float64 `json:"northing"`
	Elevation   float64 `json:"elevation"`
}

// UnitScaleToMeters returns the scale factor from a declared depth unit
// into the metric grids the default CRS codes use.
func UnitScaleToMeters(unit string) (float64, bool) {
	switch unit {
	case "ft":
		return 0.3048, true
	case "m":
		return 1, true
	}
	return 0, false
}

// Project places local trajectory points into the anchor's CRS. True-north
// offsets are rotated by the grid convergence, then scaled into CRS units,
// then translated to the wellhead coordinate. Rotation precedes scaling;
// the two do not commute under rounding, so the order is fixed here and
// locked by tests.
//
// A target azimuth of A relative to true north reads A−γ on a grid whose
// north is rotated γ east of true, which gives the rotation below.
func Project(points []Point, a Anchor) ([]GeometryPoint, error) {
	if a.EPSG <= 0 {
		return nil, apperrors.Projection("anchor has no CRS EPSG code")
	}
	if !(a.UnitScale > 0) || math.IsInf(a.UnitScale, 0) {
		return nil, apperrors.Projection("anchor unit scale %g is not usable", a.UnitScale)
	}
	if !finite(a.Easting) || !finite(a.Northing) {
		return nil, apperrors.Projection("anchor coordinate (%g, %g) is not finite", a.Easting, a.Northing)
	}
	if !finite(a.Convergence) {
		return nil, apperrors.Projection("grid convergence %g is not finite", a.Convergence)
	}

	sinG, cosG := 0.0, 1.0
	if !a.GridAligned {
		g := radians(a.Convergence)
		sinG, cosG = math.Sin(g), math.Cos(g)
	}

	out := make([]GeometryPoint, len(points))
	for i, p := range points {
		n := p.NorthOffset*cosG + p.EastOffset*sinG
		e := -p.NorthOffset*sinG + p.EastOffset*cosG
		out[i] = GeometryPoint{
			MD:          p.MD,
			TVD:         p.TVD,
			NorthOffset: p.NorthOffset,
			EastOffset:  p.EastOffset,
			Easting:     a.Easting + e*a.UnitScale,
			Northing:    a.Northing + n*a.UnitScale,
		}
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
