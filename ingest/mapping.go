// Package ingest loads operator-supplied well data files into the
// database: well headers, formation tops, daily production, directional
// surveys and LAS curve sets. Files arrive with whatever column headers
// the operator's export tool produced, so every loader first maps headers
// onto canonical targets through a configurable alias table and captures
// the leftovers as attributes.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Mapping keys the loaders look up in the field-mapping config.
const (
	MappingWellHeaders = "well_header_mappings"
	MappingTops        = "tops_mappings"
	MappingDaily       = "daily_mappings"
	MappingSurveys     = "survey_mappings"
)

// FieldMapping maps one canonical column name to the header aliases it may
// arrive under. Alias matching is case-insensitive and the first header
// that matches wins the target.
type FieldMapping map[string][]string

// Mappings holds one alias table per dataset kind, keyed by the Mapping*
// constants.
type Mappings map[string]FieldMapping

// LoadMappings reads a field-mapping JSON file. The file layout is
// {"well_header_mappings": {"uwi": ["UWI", "API", ...], ...}, ...}.
func LoadMappings(path string) (Mappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field mapping config: %w", err)
	}
	var m Mappings
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse field mapping config: %w", err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("field mapping config %s is empty", path)
	}
	return m, nil
}

// DefaultMappings returns the built-in alias tables covering the common
// export header spellings. Used when no config file is supplied.
func DefaultMappings() Mappings {
	return Mappings{
		MappingWellHeaders: {
			"uwi":       {"UWI", "API", "API_NUMBER", "API14", "API_NO"},
			"well_name": {"WELL_NAME", "WELLNAME", "WELL", "LEASE_NAME"},
			"operator":  {"OPERATOR", "OPERATOR_NAME", "COMPANY"},
			"lat":       {"LAT", "LATITUDE", "SURFACE_LAT", "SURF_LATITUDE"},
			"lon":       {"LON", "LONG", "LONGITUDE", "SURFACE_LON", "SURF_LONGITUDE"},
		},
		MappingTops: {
			"uwi":         {"UWI", "API", "API_NUMBER", "API14", "API_NO"},
			"formation":   {"FORMATION", "FORMATION_NAME", "TOP_NAME", "STRAT_UNIT", "MARKER"},
			"depth":       {"DEPTH", "TOP_DEPTH", "MD", "DEPTH_MD", "TOP_MD"},
			"interpreter": {"INTERPRETER", "INTERP", "AUTHOR", "SOURCE"},
			"quality":     {"QUALITY", "PICK_QUALITY", "CONFIDENCE"},
		},
		MappingDaily: {
			"uwi":             {"UWI", "API", "API_NUMBER", "API14", "API_NO"},
			"date":            {"DATE", "PROD_DATE", "PRODUCTION_DATE", "REPORT_DATE"},
			"oil":             {"OIL", "OIL_BBL", "OIL_VOL", "DAILY_OIL"},
			"gas":             {"GAS", "GAS_MCF", "GAS_VOL", "DAILY_GAS"},
			"water":           {"WATER", "WATER_BBL", "WATER_VOL", "DAILY_WATER"},
			"hours_on":        {"HOURS_ON", "HOURS", "HRS_ON"},
			"tubing_pressure": {"TUBING_PRESSURE", "TBG_PRESS", "TBG_PSI", "FTP"},
			"casing_pressure": {"CASING_PRESSURE", "CSG_PRESS", "CSG_PSI", "FCP"},
			"choke_size":      {"CHOKE_SIZE", "CHOKE", "CHOKE_64"},
		},
		MappingSurveys: {
			"uwi":         {"UWI", "API", "API_NUMBER", "API14", "API_NO"},
			"md":          {"MD", "MEASURED_DEPTH", "DEPTH"},
			"inclination": {"INC", "INCL", "INCLINATION", "ANGLE"},
			"azimuth":     {"AZI", "AZM", "AZIMUTH"},
			"company":     {"COMPANY", "SURVEY_COMPANY", "CONTRACTOR"},
			"date":        {"DATE", "SURVEY_DATE", "RUN_DATE"},
			"method":      {"METHOD", "SURVEY_METHOD", "TOOL", "TOOL_TYPE"},
		},
	}
}

// Record is one data row after mapping: canonical values keyed by target
// name plus whatever unmapped columns the file carried.
type Record struct {
	Values     map[string]string
	Attributes map[string]string
}

// Get returns the trimmed value of a mapped target, or "" when the file
// had no such column or the cell was empty.
func (r Record) Get(target string) string {
	return r.Values[target]
}

// Float parses a mapped value as a number. The second return is false for
// missing or non-numeric cells.
func (r Record) Float(target string) (float64, bool) {
	s := strings.ReplaceAll(r.Get(target), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatOr parses a mapped value as a number, falling back to def for
// missing or non-numeric cells.
func (r Record) FloatOr(target string, def float64) float64 {
	if f, ok := r.Float(target); ok {
		return f
	}
	return def
}

// Resolve matches a header row against the alias table. The returned map
// gives the target name claimed by each header index; indexes absent from
// the map feed the attributes bag. Targets are resolved in sorted order
// and a header can only be claimed once, so resolution is deterministic
// even when aliases overlap.
func (fm FieldMapping) Resolve(headers []string) map[int]string {
	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	targets := make([]string, 0, len(fm))
	for t := range fm {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	claimed := make(map[int]string, len(fm))
	for _, target := range targets {
		aliases := fm[target]
	match:
		for _, alias := range aliases {
			want := strings.ToUpper(alias)
			for i, h := range upper {
				if _, taken := claimed[i]; taken {
					continue
				}
				if h == want {
					claimed[i] = target
					break match
				}
			}
		}
	}
	return claimed
}

// Normalize maps raw rows through the alias table. Cells are trimmed;
// empty cells are dropped rather than stored as "", and unmapped non-empty
// cells land in Attributes under their original header.
func (fm FieldMapping) Normalize(headers []string, rows [][]string) []Record {
	claimed := fm.Resolve(headers)

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{
			Values:     make(map[string]string),
			Attributes: make(map[string]string),
		}
		for i, h := range headers {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if target, ok := claimed[i]; ok {
				rec.Values[target] = cell
			} else if name := strings.TrimSpace(h); name != "" {
				rec.Attributes[name] = cell
			}
		}
		out = append(out, rec)
	}
	return out
}
