package trajectory

import "math"

// Below this dogleg angle (radians) an interval is treated as straight and
// the ratio factor collapses to 1, avoiding the 0/0 in (2/β)·tan(β/2).
const doglegEpsilon = 1e-9

// Compute runs the Minimum Curvature Method over validated stations and
// returns one Point per station, the first anchored at the surface with
// zero TVD and offsets. The result is deterministic for a given input:
// recomputing unchanged stations reproduces bit-identical values.
//
// Callers are expected to have run Validate; Compute itself assumes
// ordered, in-range input.
func Compute(stations []Station) []Point {
	points := make([]Point, len(stations))
	if len(stations) == 0 {
		return points
	}
	points[0] = Point{MD: stations[0].MD}

	for i := 1; i < len(stations); i++ {
		prev, cur := stations[i-1], stations[i]

		i1, a1 := radians(prev.Inclination), radians(prev.Azimuth)
		i2, a2 := radians(cur.Inclination), radians(cur.Azimuth)

		// Rounding can push the cosine a hair outside [-1, 1] for
		// straight intervals; clamp before Acos or it returns NaN.
		cosBeta := math.Cos(i1)*math.Cos(i2) + math.Sin(i1)*math.Sin(i2)*math.Cos(a2-a1)
		if cosBeta > 1 {
			cosBeta = 1
		} else if cosBeta < -1 {
			cosBeta = -1
		}
		beta := math.Acos(cosBeta)

		rf := 1.0
		if beta >= doglegEpsilon {
			rf = 2 / beta * math.Tan(beta/2)
		}

		half := (cur.MD - prev.MD) / 2
		points[i] = Point{
			MD:          cur.MD,
			TVD:         points[i-1].TVD + half*(math.Cos(i1)+math.Cos(i2))*rf,
			NorthOffset: points[i-1].NorthOffset + half*(math.Sin(i1)*math.Cos(a1)+math.Sin(i2)*math.Cos(a2))*rf,
			EastOffset:  points[i-1].EastOffset + half*(math.Sin(i1)*math.Sin(a1)+math.Sin(i2)*math.Sin(a2))*rf,
		}
	}
	return points
}
