package ingest

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/utils"
)

// HeaderStats reports one header file load.
type HeaderStats struct {
	Rows             int `json:"rows"`
	Loaded           int `json:"loaded"`
	SkippedNoUWI     int `json:"skippedNoUwi"`
	WellboresEnsured int `json:"wellboresEnsured"`
}

// IngestHeaders bulk-upserts well master records from a headers file.
// Existing wells are matched on UWI; their name and operator are replaced
// and attributes are merged. Every well gets a default "OH" wellbore, and
// freshly created wellbores with a known surface longitude get a NAD83 UTM
// EPSG default so trajectory work can start before a proper CRS is loaded.
func (in *Ingestor) IngestHeaders(ctx context.Context, path string) (*HeaderStats, error) {
	fm, err := in.mapping(MappingWellHeaders)
	if err != nil {
		return nil, err
	}
	headers, rows, err := ReadTable(path)
	if err != nil {
		return nil, apperrors.Validation("reading header file: %v", err)
	}

	stats := &HeaderStats{Rows: len(rows)}
	records := fm.Normalize(headers, rows)

	wells := make([]models.Well, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		uwi := utils.NormalizeUWI(rec.Get("uwi"))
		if uwi == "" {
			stats.SkippedNoUWI++
			continue
		}
		if seen[uwi] {
			continue
		}
		seen[uwi] = true

		well := models.Well{
			UWI:        uwi,
			Name:       rec.Get("well_name"),
			Operator:   rec.Get("operator"),
			Attributes: attributesJSON(rec.Attributes),
		}
		if lat, ok := rec.Float("lat"); ok {
			well.SurfaceLatitude = &lat
		}
		if lon, ok := rec.Float("lon"); ok {
			well.SurfaceLongitude = &lon
		}
		wells = append(wells, well)
	}
	if len(wells) == 0 {
		return stats, nil
	}

	err = in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uwi"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"well_name":   gorm.Expr("EXCLUDED.well_name"),
				"operator":    gorm.Expr("EXCLUDED.operator"),
				"surface_lat": gorm.Expr("COALESCE(EXCLUDED.surface_lat, wells.surface_lat)"),
				"surface_lon": gorm.Expr("COALESCE(EXCLUDED.surface_lon, wells.surface_lon)"),
				"attributes":  gorm.Expr("COALESCE(wells.attributes, '{}'::jsonb) || COALESCE(EXCLUDED.attributes, '{}'::jsonb)"),
			}),
		}).CreateInBatches(&wells, 500).Error
		if err != nil {
			return apperrors.Internal("upserting wells", err)
		}
		stats.Loaded = len(wells)

		uwis := make([]string, len(wells))
		for i, w := range wells {
			uwis[i] = w.UWI
		}
		err = tx.Exec(`UPDATE wells
			SET surface_geom = ST_SetSRID(ST_MakePoint(surface_lon, surface_lat), 4269)
			WHERE uwi IN ? AND surface_lat IS NOT NULL AND surface_lon IS NOT NULL`, uwis).Error
		if err != nil {
			return apperrors.Internal("updating well surface geometry", err)
		}

		var loaded []models.Well
		if err := tx.Select("id", "uwi", "surface_lon").Where("uwi IN ?", uwis).Find(&loaded).Error; err != nil {
			return apperrors.Internal("reading back loaded wells", err)
		}

		wellbores := make([]models.Wellbore, 0, len(loaded))
		for _, w := range loaded {
			wb := models.Wellbore{WellID: w.ID, Name: "OH"}
			if w.SurfaceLongitude != nil {
				epsg := utils.NAD83UTMEPSG(utils.UTMZone(*w.SurfaceLongitude))
				wb.CRSEPSG = &epsg
			}
			wellbores = append(wellbores, wb)
		}
		if len(wellbores) > 0 {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&wellbores, 500).Error
			if err != nil {
				return apperrors.Internal("ensuring default wellbores", err)
			}
			stats.WellboresEnsured = len(wellbores)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	in.log.Info("well headers loaded",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skippedNoUwi", stats.SkippedNoUWI))
	return stats, nil
}
