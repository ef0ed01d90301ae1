// Package media walks directories of well files (core photos, raster
// logs, reports) and catalogs everything whose filename carries a known
// well identifier. Matching keys on the digit skeleton of the UWI, since
// filenames drop the dashes and sometimes the check digits.
package media

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

var (
	// "8400-8410", "8400_to_8410", "8400 to 8410". The trailing class
	// keeps a 6+ digit run from posing as a depth.
	depthRange = regexp.MustCompile(`(?i)[-_ ](\d{1,5}(?:\.\d+)?)(?:[-_ ]?to[-_ ]?|[-_ ])(\d{1,5}(?:\.\d+)?)(?:[^0-9]|$)`)
	// "8400ft", "_8400.", "8400md".
	depthSingle = regexp.MustCompile(`(?i)[-_ ](\d{1,5}(?:\.\d+)?)(?:ft|m|md)?(?:[-_ .]|$)`)

	digitRuns = regexp.MustCompile(`\d+`)
)

// Scanner indexes media files against the wells already in the database.
type Scanner struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewScanner(db *gorm.DB, log *zap.Logger) *Scanner {
	return &Scanner{db: db, log: log}
}

// ScanStats reports one directory scan.
type ScanStats struct {
	Files     int `json:"files"`
	Indexed   int `json:"indexed"`
	Duplicate int `json:"duplicate"`
	Unmatched int `json:"unmatched"`
}

// ScanDirectory walks root recursively and catalogs every file whose name
// contains the digit skeleton of a known UWI. Files already cataloged
// (same absolute path) are left alone, so rescanning a growing archive
// only adds what is new.
func (s *Scanner) ScanDirectory(ctx context.Context, root string) (*ScanStats, error) {
	cache, err := s.wellboreDigitCache(ctx)
	if err != nil {
		return nil, err
	}
	if len(cache) == 0 {
		return nil, apperrors.Configuration("no wells in the database to match media against")
	}

	stats := &ScanStats{}
	staged := make([]models.MediaCatalog, 0, 128)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		stats.Files++

		wbID, ok := matchWellbore(d.Name(), cache)
		if !ok {
			stats.Unmatched++
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		mediaType, desc := inferContext(d.Name())
		entry := models.MediaCatalog{
			WellboreID:  wbID,
			MediaType:   mediaType,
			FileFormat:  strings.TrimPrefix(filepath.Ext(d.Name()), "."),
			FilePath:    abs,
			Description: desc + " | Source: " + filepath.Base(filepath.Dir(abs)),
		}
		entry.TopDepthMD, entry.BaseDepthMD = parseDepths(d.Name())
		staged = append(staged, entry)
		return nil
	})
	if walkErr != nil {
		return nil, apperrors.Validation("scanning %s: %v", root, walkErr)
	}
	if len(staged) == 0 {
		return stats, nil
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_path"}},
		DoNothing: true,
	}).CreateInBatches(&staged, 500)
	if res.Error != nil {
		return nil, apperrors.Internal("inserting media catalog entries", res.Error)
	}
	stats.Indexed = int(res.RowsAffected)
	stats.Duplicate = len(staged) - stats.Indexed

	s.log.Info("media scan complete",
		zap.String("root", root),
		zap.Int("files", stats.Files),
		zap.Int("indexed", stats.Indexed),
		zap.Int("duplicate", stats.Duplicate),
		zap.Int("unmatched", stats.Unmatched))
	return stats, nil
}

// wellboreDigitCache maps the digit skeleton of every UWI to its default
// wellbore.
func (s *Scanner) wellboreDigitCache(ctx context.Context) (map[string]uuid.UUID, error) {
	var rows []struct {
		Digits string
		ID     uuid.UUID
	}
	err := s.db.WithContext(ctx).
		Table("wellbores").
		Select("regexp_replace(wells.uwi, '[^0-9]', '', 'g') AS digits, wellbores.id AS id").
		Joins("JOIN wells ON wells.id = wellbores.well_id").
		Where("wellbores.name = ?", "OH").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal("preloading well identity cache", err)
	}
	cache := make(map[string]uuid.UUID, len(rows))
	for _, r := range rows {
		if r.Digits != "" {
			cache[r.Digits] = r.ID
		}
	}
	return cache, nil
}

// matchWellbore looks for a 10-14 digit run in the filename that matches
// a known UWI skeleton. Runs are taken from the raw name, so depth
// fragments separated by dashes never fuse into a false identifier.
func matchWellbore(name string, cache map[string]uuid.UUID) (uuid.UUID, bool) {
	for _, run := range digitRuns.FindAllString(name, -1) {
		if len(run) < 10 || len(run) > 14 {
			continue
		}
		if id, ok := cache[run]; ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// inferContext derives the media type and a short description from the
// filename.
func inferContext(name string) (mediaType, description string) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "core") && strings.Contains(lower, "photo"):
		if strings.Contains(lower, "uv") {
			return models.MediaCore, "UV Light"
		}
		return models.MediaCore, "White Light"
	case strings.Contains(lower, "thin_section"):
		return models.MediaThinSheet, "Micrograph"
	case strings.Contains(lower, "log") && strings.Contains(lower, ".tif"):
		return models.MediaLogRaster, "Scanned Image"
	case strings.Contains(lower, "report") || strings.Contains(lower, ".pdf"):
		return models.MediaDocument, "Report"
	}
	return models.MediaOtherMedia, "Auto-Import"
}

// parseDepths pulls a depth interval out of the filename. A range fills
// both ends ordered top-down; a lone depth sets both to the same value;
// no parseable depth leaves both nil.
func parseDepths(name string) (top, base *float64) {
	if m := depthRange.FindStringSubmatch(name); m != nil {
		d1, err1 := strconv.ParseFloat(m[1], 64)
		d2, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if d1 > d2 {
				d1, d2 = d2, d1
			}
			return &d1, &d2
		}
	}
	if m := depthSingle.FindStringSubmatch(name); m != nil {
		if d, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &d, &d
		}
	}
	return nil, nil
}
