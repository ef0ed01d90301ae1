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

// ProductionStats reports one daily-production file load.
type ProductionStats struct {
	Rows          int `json:"rows"`
	Loaded        int `json:"loaded"`
	SkippedBadRow int `json:"skippedBadRow"`
	SkippedNoWell int `json:"skippedNoWell"`
}

// IngestProduction bulk-upserts daily allocated volumes into the
// partitioned production table. Restated days collide on
// (wellbore_id, prod_date) and every value column is replaced, so a
// restatement file fully supersedes the prior load for those days.
// Missing numeric cells load as zero, matching how allocation exports
// report shut-in days.
func (in *Ingestor) IngestProduction(ctx context.Context, path string) (*ProductionStats, error) {
	fm, err := in.mapping(MappingDaily)
	if err != nil {
		return nil, err
	}
	headers, rows, err := ReadTable(path)
	if err != nil {
		return nil, apperrors.Validation("reading production file: %v", err)
	}

	stats := &ProductionStats{Rows: len(rows)}

	type prodRow struct {
		uwi string
		rec models.ProductionDaily
	}
	parsed := make([]prodRow, 0, len(rows))
	uwis := make([]string, 0, 64)
	seen := make(map[string]bool)
	for _, rec := range fm.Normalize(headers, rows) {
		uwi := utils.NormalizeUWI(rec.Get("uwi"))
		date, err := models.ParseFlexibleTime(rec.Get("date"))
		if uwi == "" || err != nil {
			stats.SkippedBadRow++
			continue
		}
		parsed = append(parsed, prodRow{
			uwi: uwi,
			rec: models.ProductionDaily{
				ProdDate:       date,
				OilVol:         rec.FloatOr("oil", 0),
				GasVol:         rec.FloatOr("gas", 0),
				WaterVol:       rec.FloatOr("water", 0),
				HoursOn:        rec.FloatOr("hours_on", 0),
				TubingPressure: rec.FloatOr("tubing_pressure", 0),
				CasingPressure: rec.FloatOr("casing_pressure", 0),
				ChokeSize:      rec.FloatOr("choke_size", 0),
				Attributes:     attributesJSON(rec.Attributes),
			},
		})
		if !seen[uwi] {
			seen[uwi] = true
			uwis = append(uwis, uwi)
		}
	}
	if len(parsed) == 0 {
		return stats, nil
	}

	err = in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wellbores, err := resolveWellbores(tx, uwis)
		if err != nil {
			return err
		}

		batch := make([]models.ProductionDaily, 0, len(parsed))
		for _, p := range parsed {
			wbID, ok := wellbores[p.uwi]
			if !ok {
				stats.SkippedNoWell++
				continue
			}
			p.rec.WellboreID = wbID
			batch = append(batch, p.rec)
		}
		if len(batch) == 0 {
			return nil
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wellbore_id"}, {Name: "prod_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"oil_vol", "gas_vol", "water_vol",
				"hours_on", "tubing_pressure", "casing_pressure", "choke_size",
				"attributes",
			}),
		}).CreateInBatches(&batch, 500).Error
		if err != nil {
			return apperrors.Internal("upserting daily production", err)
		}
		stats.Loaded = len(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	in.log.Info("daily production loaded",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skippedNoWell", stats.SkippedNoWell))
	return stats, nil
}
