package ingest

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/utils"
)

// TopsStats reports one formation-tops file load.
type TopsStats struct {
	Rows          int `json:"rows"`
	Loaded        int `json:"loaded"`
	SkippedBadRow int `json:"skippedBadRow"`
	SkippedNoWell int `json:"skippedNoWell"`
	RepeatedPicks int `json:"repeatedPicks"`
}

type topRow struct {
	uwi         string
	formation   string
	depth       float64
	interpreter string
	quality     string
	occurrence  int
	attributes  map[string]string
}

// IngestTops bulk-upserts formation picks. Strat units are created on
// demand. A formation repeated in the same hole by the same interpreter is
// a legitimate faulted or repeated section: picks are sorted by depth and
// numbered, and the pick identity (wellbore, unit, interpreter, occurrence)
// is what upserts collide on, so reloading a file moves depths instead of
// duplicating rows.
func (in *Ingestor) IngestTops(ctx context.Context, path string) (*TopsStats, error) {
	fm, err := in.mapping(MappingTops)
	if err != nil {
		return nil, err
	}
	headers, rows, err := ReadTable(path)
	if err != nil {
		return nil, apperrors.Validation("reading tops file: %v", err)
	}

	stats := &TopsStats{Rows: len(rows)}
	parsed := make([]topRow, 0, len(rows))
	for _, rec := range fm.Normalize(headers, rows) {
		row := topRow{
			uwi:         utils.NormalizeUWI(rec.Get("uwi")),
			formation:   rec.Get("formation"),
			interpreter: rec.Get("interpreter"),
			quality:     rec.Get("quality"),
			attributes:  rec.Attributes,
		}
		depth, ok := rec.Float("depth")
		if row.uwi == "" || row.formation == "" || !ok {
			stats.SkippedBadRow++
			continue
		}
		row.depth = depth
		if row.interpreter == "" {
			row.interpreter = "Unknown"
		}
		parsed = append(parsed, row)
	}
	if len(parsed) == 0 {
		return stats, nil
	}

	// Number repeated picks top-down so occurrence is stable across loads.
	sort.SliceStable(parsed, func(i, j int) bool {
		if parsed[i].uwi != parsed[j].uwi {
			return parsed[i].uwi < parsed[j].uwi
		}
		if parsed[i].formation != parsed[j].formation {
			return parsed[i].formation < parsed[j].formation
		}
		return parsed[i].depth < parsed[j].depth
	})
	counts := make(map[[3]string]int)
	for i := range parsed {
		key := [3]string{parsed[i].uwi, parsed[i].formation, parsed[i].interpreter}
		counts[key]++
		parsed[i].occurrence = counts[key]
		if parsed[i].occurrence > 1 {
			stats.RepeatedPicks++
		}
	}
	if stats.RepeatedPicks > 0 {
		in.log.Warn("repeated formation picks detected, numbering as fault-block crossings",
			zap.String("file", path),
			zap.Int("repeats", stats.RepeatedPicks))
	}

	err = in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make([]string, 0, len(parsed))
		seen := make(map[string]bool)
		for _, r := range parsed {
			if !seen[r.formation] {
				seen[r.formation] = true
				names = append(names, r.formation)
			}
		}
		units := make([]models.StratUnit, len(names))
		for i, n := range names {
			units[i] = models.StratUnit{Name: n}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&units).Error; err != nil {
			return apperrors.Internal("creating strat units", err)
		}
		var unitRows []models.StratUnit
		if err := tx.Where("name IN ?", names).Find(&unitRows).Error; err != nil {
			return apperrors.Internal("resolving strat units", err)
		}
		unitIDs := make(map[string]models.StratUnit, len(unitRows))
		for _, u := range unitRows {
			unitIDs[u.Name] = u
		}

		uwis := make([]string, 0, len(counts))
		seenUWI := make(map[string]bool)
		for _, r := range parsed {
			if !seenUWI[r.uwi] {
				seenUWI[r.uwi] = true
				uwis = append(uwis, r.uwi)
			}
		}
		wellbores, err := resolveWellbores(tx, uwis)
		if err != nil {
			return err
		}

		tops := make([]models.FormationTop, 0, len(parsed))
		for _, r := range parsed {
			wbID, ok := wellbores[r.uwi]
			if !ok {
				stats.SkippedNoWell++
				continue
			}
			top := models.FormationTop{
				WellboreID:  wbID,
				StratUnitID: unitIDs[r.formation].ID,
				Interpreter: r.interpreter,
				Occurrence:  r.occurrence,
				DepthMD:     r.depth,
				Attributes:  attributesJSON(r.attributes),
			}
			if r.quality != "" {
				q := r.quality
				top.PickQuality = &q
			}
			tops = append(tops, top)
		}
		if len(tops) == 0 {
			return nil
		}
		// A moved pick invalidates its derived depths; they stay NULL
		// until the next trajectory recompute rewrites them.
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "wellbore_id"}, {Name: "strat_unit_id"},
				{Name: "interpreter"}, {Name: "occurrence"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"depth_md":    gorm.Expr("EXCLUDED.depth_md"),
				"depth_tvd":   nil,
				"depth_tvdss": nil,
			}),
		}).CreateInBatches(&tops, 500).Error
		if err != nil {
			return apperrors.Internal("upserting formation tops", err)
		}
		stats.Loaded = len(tops)
		return nil
	})
	if err != nil {
		return nil, err
	}

	in.log.Info("formation tops loaded",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skippedNoWell", stats.SkippedNoWell),
		zap.Int("repeatedPicks", stats.RepeatedPicks))
	return stats, nil
}
