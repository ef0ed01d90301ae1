package utils

import "testing"

func TestUTMZone(t *testing.T) {
	tests := []struct {
		name string
		lon  float64
		want int
	}{
		{"permian basin", -102.3, 13},
		{"north texas", -99.5, 14},
		{"zone boundary west side", -96.0, 15},
		{"gulf coast", -94.8, 15},
		{"date line west", -180.0, 1},
		{"date line east", 179.99, 60},
		{"exactly 180 clamps", 180.0, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UTMZone(tt.lon); got != tt.want {
				t.Errorf("UTMZone(%v) = %d, want %d", tt.lon, got, tt.want)
			}
		})
	}
}

func TestUTMCentralMeridian(t *testing.T) {
	if got := UTMCentralMeridian(14); got != -99 {
		t.Errorf("UTMCentralMeridian(14) = %v, want -99", got)
	}
	if got := UTMCentralMeridian(1); got != -177 {
		t.Errorf("UTMCentralMeridian(1) = %v, want -177", got)
	}
}

func TestNAD83UTMEPSG(t *testing.T) {
	if got := NAD83UTMEPSG(UTMZone(-99.5)); got != 26914 {
		t.Errorf("EPSG for lon -99.5 = %d, want 26914", got)
	}
	if got := NAD83UTMEPSG(UTMZone(-102.3)); got != 26913 {
		t.Errorf("EPSG for lon -102.3 = %d, want 26913", got)
	}
}
