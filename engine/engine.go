// Package engine drives trajectory recomputation for a wellbore: it picks
// the active survey, runs the computation kernel, replaces the persisted
// geometry and brings every dependent depth record back in line, all
// inside one transaction per wellbore.
package engine

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/trajectory"
)

type Engine struct {
	db    *gorm.DB
	log   *zap.Logger
	locks *wellboreLocks
}

func New(db *gorm.DB, log *zap.Logger) *Engine {
	return &Engine{db: db, log: log, locks: newWellboreLocks()}
}

// Result reports one completed recompute.
type Result struct {
	WellboreID  uuid.UUID           `json:"wellboreId"`
	SurveyID    uuid.UUID           `json:"surveyId"`
	Geometry    trajectory.Geometry `json:"geometry"`
	UpdatedTops int                 `json:"updatedTops"`
}

// Recompute derives the wellbore's trajectory from its active survey and
// atomically replaces the stored geometry plus all dependent TVD fields.
// Either everything commits or prior state stays untouched. Concurrent
// recomputes of the same wellbore are serialized in-process and fenced
// cross-process by an advisory lock.
func (e *Engine) Recompute(ctx context.Context, wellboreID uuid.UUID) (*Result, error) {
	unlock := e.locks.acquire(wellboreID)
	defer unlock()

	var res *Result
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := e.recompute(tx, wellboreID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("trajectory recomputed",
		zap.String("wellbore", res.WellboreID.String()),
		zap.String("survey", res.SurveyID.String()),
		zap.Int("points", len(res.Geometry.Points)),
		zap.Int("topsUpdated", res.UpdatedTops))
	return res, nil
}

// ActivateSurvey makes the given survey the wellbore's canonical one and
// recomputes from it in the same transaction, so the active flag can never
// disagree with the stored geometry.
func (e *Engine) ActivateSurvey(ctx context.Context, surveyID uuid.UUID) (*Result, error) {
	var survey models.DirectionalSurvey
	if err := e.db.WithContext(ctx).First(&survey, "id = ?", surveyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("directional survey %s not found", surveyID)
		}
		return nil, apperrors.Internal("loading directional survey", err)
	}

	unlock := e.locks.acquire(survey.WellboreID)
	defer unlock()

	var res *Result
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireWellboreTxLock(tx, survey.WellboreID); err != nil {
			return err
		}
		// Clear other flags before setting this one; the partial unique
		// index forbids two actives existing even transiently.
		err := tx.Model(&models.DirectionalSurvey{}).
			Where("wellbore_id = ? AND id <> ?", survey.WellboreID, survey.ID).
			Update("is_active", false).Error
		if err != nil {
			return apperrors.Internal("deactivating prior surveys", err)
		}
		err = tx.Model(&models.DirectionalSurvey{}).
			Where("id = ?", survey.ID).
			Update("is_active", true).Error
		if err != nil {
			return apperrors.Internal("activating survey", err)
		}

		r, err := e.recompute(tx, survey.WellboreID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("survey activated",
		zap.String("wellbore", res.WellboreID.String()),
		zap.String("survey", res.SurveyID.String()),
		zap.Int("topsUpdated", res.UpdatedTops))
	return res, nil
}

// recompute is the transactional body shared by Recompute and
// ActivateSurvey. The kernel stages are pure; everything touching tx is
// undone by rollback if any stage fails.
func (e *Engine) recompute(tx *gorm.DB, wellboreID uuid.UUID) (*Result, error) {
	if err := acquireWellboreTxLock(tx, wellboreID); err != nil {
		return nil, err
	}

	var wellbore models.Wellbore
	if err := tx.First(&wellbore, "id = ?", wellboreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("wellbore %s not found", wellboreID)
		}
		return nil, apperrors.Internal("loading wellbore", err)
	}

	survey, err := e.activeSurvey(tx, &wellbore)
	if err != nil {
		return nil, err
	}

	raw := surveyStations(survey)
	if err := trajectory.Validate(raw); err != nil {
		return nil, err
	}

	anchor, err := anchorFor(&wellbore, survey)
	if err != nil {
		return nil, err
	}

	points := trajectory.Compute(withAzimuthOffset(raw, survey.AzimuthOffset))
	projected, err := trajectory.Project(points, anchor)
	if err != nil {
		return nil, err
	}
	geom := trajectory.BuildGeometry(projected, anchor.EPSG, wellbore.ReferenceElevation)

	if err := e.replaceGeometry(tx, &wellbore, geom); err != nil {
		return nil, err
	}
	updated, err := e.syncFormationTops(tx, &wellbore, geom)
	if err != nil {
		return nil, err
	}

	return &Result{
		WellboreID:  wellbore.ID,
		SurveyID:    survey.ID,
		Geometry:    geom,
		UpdatedTops: updated,
	}, nil
}

// replaceGeometry swaps the persisted path wholesale: typed rows for
// queries, EWKT on the wellbore for spatial SQL, and the rollup columns.
func (e *Engine) replaceGeometry(tx *gorm.DB, wellbore *models.Wellbore, geom trajectory.Geometry) error {
	if err := tx.Where("wellbore_id = ?", wellbore.ID).Delete(&models.TrajectoryPoint{}).Error; err != nil {
		return apperrors.Internal("clearing prior trajectory", err)
	}

	rows := make([]models.TrajectoryPoint, len(geom.Points))
	for i, p := range geom.Points {
		rows[i] = models.TrajectoryPoint{
			WellboreID:  wellbore.ID,
			Seq:         i,
			MD:          p.MD,
			TVD:         p.TVD,
			NorthOffset: p.NorthOffset,
			EastOffset:  p.EastOffset,
			Easting:     p.Easting,
			Northing:    p.Northing,
			Elevation:   p.Elevation,
		}
	}
	if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
		return apperrors.Internal("inserting trajectory points", err)
	}

	now := time.Now().UTC()
	err := tx.Model(&models.Wellbore{}).Where("id = ?", wellbore.ID).Updates(map[string]interface{}{
		"total_depth_md":         geom.TotalMD,
		"total_depth_tvd":        geom.TotalTVD,
		"trajectory_computed_at": now,
	}).Error
	if err != nil {
		return apperrors.Internal("updating wellbore totals", err)
	}

	if err := tx.Exec("UPDATE wellbores SET trajectory_geom = ST_GeomFromEWKT(?) WHERE id = ?", geom.EWKT(), wellbore.ID).Error; err != nil {
		return apperrors.Internal("writing trajectory geometry", err)
	}
	return nil
}

// surveyStations maps stored station rows into kernel stations, keeping
// stored sequence order and raw azimuths.
func surveyStations(survey *models.DirectionalSurvey) []trajectory.Station {
	out := make([]trajectory.Station, len(survey.Stations))
	for i, st := range survey.Stations {
		out[i] = trajectory.Station{MD: st.MD, Inclination: st.Inclination, Azimuth: st.Azimuth}
	}
	return out
}

// withAzimuthOffset applies the survey-level azimuth correction and wraps
// the result back into [0, 360). Raw stations are validated before the
// offset so an out-of-range measurement cannot hide behind the wrap.
func withAzimuthOffset(stations []trajectory.Station, offset float64) []trajectory.Station {
	if offset == 0 {
		return stations
	}
	out := make([]trajectory.Station, len(stations))
	copy(out, stations)
	for i := range out {
		out[i].Azimuth = trajectory.NormalizeAzimuth(out[i].Azimuth + offset)
	}
	return out
}

// anchorFor assembles the projection anchor from wellbore metadata. Grid
// referenced surveys skip the convergence rotation, so convergence may be
// absent for them; everything else the projector needs must be present.
func anchorFor(wellbore *models.Wellbore, survey *models.DirectionalSurvey) (trajectory.Anchor, error) {
	if wellbore.CRSEPSG == nil {
		return trajectory.Anchor{}, apperrors.Projection("wellbore %s has no CRS assigned", wellbore.ID)
	}
	if wellbore.SurfaceEasting == nil || wellbore.SurfaceNorthing == nil {
		return trajectory.Anchor{}, apperrors.Projection("wellbore %s has no surface anchor coordinate", wellbore.ID)
	}
	scale, ok := trajectory.UnitScaleToMeters(wellbore.DepthUnit)
	if !ok {
		return trajectory.Anchor{}, apperrors.Projection("wellbore %s declares unsupported depth unit %q", wellbore.ID, wellbore.DepthUnit)
	}

	anchor := trajectory.Anchor{
		EPSG:      *wellbore.CRSEPSG,
		Easting:   *wellbore.SurfaceEasting,
		Northing:  *wellbore.SurfaceNorthing,
		UnitScale: scale,
	}
	if survey.AzimuthReference == models.AzimuthRefGrid {
		anchor.GridAligned = true
		return anchor, nil
	}
	if wellbore.GridConvergence == nil {
		return trajectory.Anchor{}, apperrors.Projection("wellbore %s has no grid convergence for a %s-north survey",
			wellbore.ID, survey.AzimuthReference)
	}
	anchor.Convergence = *wellbore.GridConvergence
	return anchor, nil
}

// acquireWellboreTxLock takes a transaction-scoped advisory lock keyed on
// the wellbore id. A writer racing from another process loses the try-lock
// immediately instead of queueing behind an unknown amount of work.
func acquireWellboreTxLock(tx *gorm.DB, id uuid.UUID) error {
	key := int64(binary.BigEndian.Uint64(id[:8]))
	var locked bool
	if err := tx.Raw("SELECT pg_try_advisory_xact_lock(?)", key).Scan(&locked).Error; err != nil {
		return apperrors.Internal("acquiring wellbore advisory lock", err)
	}
	if !locked {
		return apperrors.Consistency("wellbore %s is being recomputed by another writer", id)
	}
	return nil
}
