package trajectory

import (
	"testing"
)

func buildFixtureGeometry(t *testing.T) Geometry {
	t.Helper()
	stations := []Station{
		{MD: 0, Inclination: 0, Azimuth: 0},
		{MD: 1000, Inclination: 30, Azimuth: 45},
		{MD: 2000, Inclination: 30, Azimuth: 45},
	}
	if err := Validate(stations); err != nil {
		t.Fatalf("fixture stations invalid: %v", err)
	}
	projected, err := Project(Compute(stations), Anchor{EPSG: 26914, Easting: 500000, Northing: 4000000, UnitScale: 1})
	if err != nil {
		t.Fatalf("fixture projection failed: %v", err)
	}
	return BuildGeometry(projected, 26914, 850)
}

func TestBuildGeometryElevationConvention(t *testing.T) {
	points := []GeometryPoint{
		{MD: 0, TVD: 0},
		{MD: 500, TVD: 480},
		{MD: 1200, TVD: 1100},
	}
	g := BuildGeometry(points, 26914, 850)

	want := []float64{850, 370, -250}
	for i, w := range want {
		if g.Points[i].Elevation != w {
			t.Errorf("point %d: elevation = %v, expected %v", i, g.Points[i].Elevation, w)
		}
	}
	if g.TotalMD != 1200 || g.TotalTVD != 1100 {
		t.Errorf("totals = (%v, %v), expected (1200, 1100)", g.TotalMD, g.TotalTVD)
	}
}

func TestBuildGeometryElevationNonIncreasing(t *testing.T) {
	g := buildFixtureGeometry(t)
	for i := 1; i < len(g.Points); i++ {
		if g.Points[i].Elevation > g.Points[i-1].Elevation {
			t.Errorf("elevation climbs from %v to %v at point %d", g.Points[i-1].Elevation, g.Points[i].Elevation, i)
		}
	}
}

func TestBuildGeometryDoesNotMutateInput(t *testing.T) {
	points := []GeometryPoint{{MD: 0, TVD: 0}, {MD: 100, TVD: 100}}
	BuildGeometry(points, 26914, 500)
	if points[0].Elevation != 0 || points[1].Elevation != 0 {
		t.Error("BuildGeometry mutated its input slice")
	}
}

func TestTVDAtInterpolation(t *testing.T) {
	g := buildFixtureGeometry(t)

	tests := []struct {
		name        string
		md          float64
		want        float64
		tol         float64
		wantClamped bool
	}{
		{"surface", 0, 0, 0, false},
		{"exact middle station", 1000, 954.9297, 0.01, false},
		{"between last two stations", 1500, 1387.9424, 0.01, false},
		{"exact last station", 2000, 1820.9551, 0.01, false},
		{"beyond hole bottom clamps flat", 2500, 1820.9551, 0.01, true},
		{"above surface clamps flat", -10, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := g.TVDAt(tt.md)
			if !approx(got, tt.want, tt.tol) {
				t.Errorf("TVDAt(%v) = %.4f, expected %.4f", tt.md, got, tt.want)
			}
			if clamped != tt.wantClamped {
				t.Errorf("TVDAt(%v) clamped = %v, expected %v", tt.md, clamped, tt.wantClamped)
			}
		})
	}
}

func TestTVDAtDegenerateGeometry(t *testing.T) {
	empty := Geometry{}
	if tvd, clamped := empty.TVDAt(100); tvd != 0 || !clamped {
		t.Errorf("empty geometry TVDAt = (%v, %v), expected (0, true)", tvd, clamped)
	}

	single := BuildGeometry([]GeometryPoint{{MD: 0, TVD: 0, Easting: 1, Northing: 2}}, 26914, 100)
	if tvd, clamped := single.TVDAt(0); tvd != 0 || clamped {
		t.Errorf("single point TVDAt(0) = (%v, %v), expected (0, false)", tvd, clamped)
	}
	if tvd, clamped := single.TVDAt(50); tvd != 0 || !clamped {
		t.Errorf("single point TVDAt(50) = (%v, %v), expected clamped", tvd, clamped)
	}
}

func TestGeometryEWKT(t *testing.T) {
	g := Geometry{
		EPSG: 26914,
		Points: []GeometryPoint{
			{Easting: 500000, Northing: 4000000, Elevation: 100.5},
			{Easting: 500010.1234, Northing: 4000000, Elevation: 50.25},
		},
	}
	want := "SRID=26914;LINESTRING Z (500000.000 4000000.000 100.500, 500010.123 4000000.000 50.250)"
	if got := g.EWKT(); got != want {
		t.Errorf("EWKT() = %q, expected %q", got, want)
	}
}

func TestGeometryEWKTSinglePoint(t *testing.T) {
	g := Geometry{
		EPSG:   26914,
		Points: []GeometryPoint{{Easting: 500000, Northing: 4000000, Elevation: -12.345}},
	}
	want := "SRID=26914;POINT Z (500000.000 4000000.000 -12.345)"
	if got := g.EWKT(); got != want {
		t.Errorf("EWKT() = %q, expected %q", got, want)
	}
}
