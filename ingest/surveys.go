package ingest

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/trajectory"
	"github.com/wellbase/wellbase/utils"
)

// SurveyOptions carries the metadata a station file cannot express per
// row. The azimuth reference and offset apply to every survey in the file.
type SurveyOptions struct {
	AzimuthReference string  `json:"azimuthReference"`
	AzimuthOffset    float64 `json:"azimuthOffset"`
}

// SurveyStats reports one survey file load. SurveyIDs lists the created
// surveys so callers can activate them afterwards.
type SurveyStats struct {
	Rows           int         `json:"rows"`
	SurveysCreated int         `json:"surveysCreated"`
	StationsLoaded int         `json:"stationsLoaded"`
	SkippedNoWell  int         `json:"skippedNoWell"`
	SkippedInvalid int         `json:"skippedInvalid"`
	SurveyIDs      []uuid.UUID `json:"surveyIds"`
}

type surveyGroup struct {
	uwi      string
	company  string
	date     models.JSONTime
	method   string
	stations []models.SurveyStation
	bad      bool
}

// IngestSurveys loads station files holding one or more directional
// surveys keyed by UWI. Stations are sorted by measured depth and the
// whole run is validated before anything is written; a run that fails
// validation is skipped and logged, never half-loaded. Created surveys
// start inactive so loading can never silently change a wellbore's
// canonical trajectory; activation is an explicit follow-up step.
func (in *Ingestor) IngestSurveys(ctx context.Context, path string, opts SurveyOptions) (*SurveyStats, error) {
	fm, err := in.mapping(MappingSurveys)
	if err != nil {
		return nil, err
	}
	if opts.AzimuthReference == "" {
		opts.AzimuthReference = models.AzimuthRefTrue
	}
	if !models.KnownAzimuthReference(opts.AzimuthReference) {
		return nil, apperrors.Validation("unknown azimuth reference %q", opts.AzimuthReference)
	}

	headers, rows, err := ReadTable(path)
	if err != nil {
		return nil, apperrors.Validation("reading survey file: %v", err)
	}

	stats := &SurveyStats{Rows: len(rows)}

	groups := make(map[string]*surveyGroup)
	order := make([]string, 0, 8)
	for _, rec := range fm.Normalize(headers, rows) {
		uwi := utils.NormalizeUWI(rec.Get("uwi"))
		if uwi == "" {
			stats.SkippedInvalid++
			continue
		}
		g, ok := groups[uwi]
		if !ok {
			g = &surveyGroup{uwi: uwi}
			groups[uwi] = g
			order = append(order, uwi)
		}
		if g.company == "" {
			g.company = rec.Get("company")
		}
		if g.method == "" {
			g.method = rec.Get("method")
		}
		if g.date.IsZero() {
			if t, err := models.ParseFlexibleTime(rec.Get("date")); err == nil {
				g.date = models.JSONTime{Time: t}
			}
		}
		md, okMD := rec.Float("md")
		inc, okInc := rec.Float("inclination")
		azi, okAzi := rec.Float("azimuth")
		if !okMD || !okInc || !okAzi {
			// One unparseable station poisons the run; dropping it
			// silently would change the computed geometry.
			g.bad = true
			continue
		}
		g.stations = append(g.stations, models.SurveyStation{MD: md, Inclination: inc, Azimuth: azi})
	}

	err = in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wellbores, err := resolveWellbores(tx, order)
		if err != nil {
			return err
		}

		for _, uwi := range order {
			g := groups[uwi]
			if g.bad {
				stats.SkippedInvalid++
				in.log.Warn("survey run has unparseable stations, skipping",
					zap.String("file", path), zap.String("uwi", uwi))
				continue
			}
			wbID, ok := wellbores[uwi]
			if !ok {
				stats.SkippedNoWell++
				continue
			}

			sort.SliceStable(g.stations, func(i, j int) bool {
				return g.stations[i].MD < g.stations[j].MD
			})
			raw := make([]trajectory.Station, len(g.stations))
			for i, st := range g.stations {
				raw[i] = trajectory.Station{MD: st.MD, Inclination: st.Inclination, Azimuth: st.Azimuth}
			}
			if err := trajectory.Validate(raw); err != nil {
				stats.SkippedInvalid++
				in.log.Warn("survey run failed validation, skipping",
					zap.String("file", path), zap.String("uwi", uwi), zap.Error(err))
				continue
			}

			method := g.method
			if !models.KnownSurveyMethod(method) {
				method = models.SurveyMethodUnknown
			}
			survey := models.DirectionalSurvey{
				WellboreID:       wbID,
				Company:          g.company,
				SurveyDate:       g.date,
				Method:           method,
				AzimuthReference: opts.AzimuthReference,
				AzimuthOffset:    opts.AzimuthOffset,
			}
			if err := tx.Create(&survey).Error; err != nil {
				return apperrors.Internal("creating directional survey", err)
			}
			for i := range g.stations {
				g.stations[i].SurveyID = survey.ID
				g.stations[i].Seq = i
			}
			if err := tx.CreateInBatches(&g.stations, 500).Error; err != nil {
				return apperrors.Internal("creating survey stations", err)
			}

			stats.SurveysCreated++
			stats.StationsLoaded += len(g.stations)
			stats.SurveyIDs = append(stats.SurveyIDs, survey.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	in.log.Info("directional surveys loaded",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("surveys", stats.SurveysCreated),
		zap.Int("stations", stats.StationsLoaded),
		zap.Int("skippedInvalid", stats.SkippedInvalid))
	return stats, nil
}
