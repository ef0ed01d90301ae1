package trajectory

import (
	"fmt"
	"strings"
)

// Geometry is the assembled wellbore path, ready to replace whatever the
// wellbore currently carries. Points are ordered by measured depth.
type Geometry struct {
	EPSG     int             `json:"epsg"`
	Points   []GeometryPoint `json:"points"`
	TotalMD  float64         `json:"totalMd"`
	TotalTVD float64         `json:"totalTvd"`
}

// BuildGeometry stamps elevations onto projected points and assembles the
// final path. Elevation is the depth datum's elevation minus TVD, in the
// declared depth unit: positive above the datum, negative subsea. For any
// path that does not climb back toward surface it is non-increasing with
// measured depth.
func BuildGeometry(points []GeometryPoint, epsg int, datumElevation float64) Geometry {
	pts := make([]GeometryPoint, len(points))
	copy(pts, points)
	for i := range pts {
		pts[i].Elevation = datumElevation - pts[i].TVD
	}
	g := Geometry{EPSG: epsg, Points: pts}
	if n := len(pts); n > 0 {
		g.TotalMD = pts[n-1].MD
		g.TotalTVD = pts[n-1].TVD
	}
	return g
}

// TVDAt linearly interpolates true vertical depth at a measured depth
// between the bracketing pair of path points. Outside the surveyed range
// it holds the nearest endpoint's TVD flat and reports clamped = true so
// the caller can log the degradation.
func (g Geometry) TVDAt(md float64) (tvd float64, clamped bool) {
	pts := g.Points
	if len(pts) == 0 {
		return 0, true
	}
	if md < pts[0].MD {
		return pts[0].TVD, true
	}
	last := pts[len(pts)-1]
	if md > last.MD {
		return last.TVD, true
	}
	for i := 1; i < len(pts); i++ {
		if md > pts[i].MD {
			continue
		}
		lo, hi := pts[i-1], pts[i]
		t := (md - lo.MD) / (hi.MD - lo.MD)
		return lo.TVD + t*(hi.TVD-lo.TVD), false
	}
	return last.TVD, false
}

// EWKT renders the path as extended WKT for a raw PostGIS write, with Z
// carrying elevation. A single-point path renders as POINT Z because a
// one-vertex LINESTRING is invalid.
func (g Geometry) EWKT() string {
	var b strings.Builder
	if len(g.Points) == 1 {
		p := g.Points[0]
		fmt.Fprintf(&b, "SRID=%d;POINT Z (%.3f %.3f %.3f)", g.EPSG, p.Easting, p.Northing, p.Elevation)
		return b.String()
	}
	fmt.Fprintf(&b, "SRID=%d;LINESTRING Z (", g.EPSG)
	for i, p := range g.Points {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.3f %.3f %.3f", p.Easting, p.Northing, p.Elevation)
	}
	b.WriteString(")")
	return b.String()
}
