package ingest

import (
	"reflect"
	"testing"
)

func TestFieldMappingResolve(t *testing.T) {
	fm := FieldMapping{
		"uwi":      {"UWI", "API", "API_NUMBER"},
		"operator": {"OPERATOR", "COMPANY"},
	}

	tests := []struct {
		name    string
		headers []string
		want    map[int]string
	}{
		{
			name:    "exact match",
			headers: []string{"UWI", "OPERATOR"},
			want:    map[int]string{0: "uwi", 1: "operator"},
		},
		{
			name:    "case insensitive with padding",
			headers: []string{" api ", "Company"},
			want:    map[int]string{0: "uwi", 1: "operator"},
		},
		{
			name:    "first alias wins",
			headers: []string{"API_NUMBER", "UWI"},
			want:    map[int]string{1: "uwi"},
		},
		{
			name:    "unmapped columns stay unclaimed",
			headers: []string{"UWI", "SPUD_DATE", "COUNTY"},
			want:    map[int]string{0: "uwi"},
		},
		{
			name:    "no matches",
			headers: []string{"FOO", "BAR"},
			want:    map[int]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fm.Resolve(tt.headers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestFieldMappingNormalize(t *testing.T) {
	fm := FieldMapping{
		"uwi": {"API"},
		"lat": {"LATITUDE"},
	}
	headers := []string{"API", "LATITUDE", "COUNTY", "STATE"}
	rows := [][]string{
		{"42-123-45678", "31.9", "Midland", "TX"},
		{"42-123-99999", "", "Ector"},
		{"", "", "", ""},
	}

	recs := fm.Normalize(headers, rows)
	if len(recs) != 3 {
		t.Fatalf("Normalize returned %d records, want 3", len(recs))
	}

	if got := recs[0].Get("uwi"); got != "42-123-45678" {
		t.Errorf("row 0 uwi = %q", got)
	}
	if lat, ok := recs[0].Float("lat"); !ok || lat != 31.9 {
		t.Errorf("row 0 lat = %v, %v", lat, ok)
	}
	want := map[string]string{"COUNTY": "Midland", "STATE": "TX"}
	if !reflect.DeepEqual(recs[0].Attributes, want) {
		t.Errorf("row 0 attributes = %v, want %v", recs[0].Attributes, want)
	}

	// Empty cells are dropped, and short rows stop at their own length.
	if _, ok := recs[1].Float("lat"); ok {
		t.Error("row 1 empty lat parsed as a number")
	}
	if _, ok := recs[1].Attributes["STATE"]; ok {
		t.Error("row 1 picked up a STATE cell it does not have")
	}
	if len(recs[2].Values) != 0 || len(recs[2].Attributes) != 0 {
		t.Errorf("blank row produced values %v attributes %v", recs[2].Values, recs[2].Attributes)
	}
}

func TestRecordFloat(t *testing.T) {
	rec := Record{Values: map[string]string{
		"oil":   "1,234.5",
		"gas":   "n/a",
		"water": "0",
	}}
	if v, ok := rec.Float("oil"); !ok || v != 1234.5 {
		t.Errorf("oil = %v, %v; want 1234.5 with commas stripped", v, ok)
	}
	if _, ok := rec.Float("gas"); ok {
		t.Error("non-numeric gas cell parsed")
	}
	if v := rec.FloatOr("gas", 0); v != 0 {
		t.Errorf("FloatOr(gas) = %v, want 0", v)
	}
	if v := rec.FloatOr("water", 99); v != 0 {
		t.Errorf("FloatOr(water) = %v, want 0", v)
	}
	if v := rec.FloatOr("missing", 7); v != 7 {
		t.Errorf("FloatOr(missing) = %v, want 7", v)
	}
}

func TestDefaultMappingsCoverLoaderTargets(t *testing.T) {
	m := DefaultMappings()
	checks := map[string][]string{
		MappingWellHeaders: {"uwi", "well_name", "operator", "lat", "lon"},
		MappingTops:        {"uwi", "formation", "depth", "interpreter", "quality"},
		MappingDaily:       {"uwi", "date", "oil", "gas", "water", "hours_on", "tubing_pressure", "casing_pressure", "choke_size"},
		MappingSurveys:     {"uwi", "md", "inclination", "azimuth"},
	}
	for key, targets := range checks {
		fm, ok := m[key]
		if !ok {
			t.Errorf("DefaultMappings missing %q", key)
			continue
		}
		for _, target := range targets {
			if len(fm[target]) == 0 {
				t.Errorf("%s has no aliases for target %q", key, target)
			}
		}
	}
}
