package config

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "05032026_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Well{}, &models.Wellbore{},
					&models.DirectionalSurvey{}, &models.SurveyStation{}, &models.TrajectoryPoint{},
					&models.StratUnit{}, &models.FormationTop{}, &models.CurveCatalog{}, &models.MediaCatalog{})
			},
		},
		{
			ID: "05032026_enable_postgis_geometry",
			Migrate: func(tx *gorm.DB) error {
				// Step 1: PostGIS must exist before any geometry column
				if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
					return err
				}

				// Step 2: surface locations are NAD83 geographic; the
				// trajectory column stays unconstrained because every
				// wellbore declares its own projected CRS
				stmts := []string{
					"ALTER TABLE wells ADD COLUMN IF NOT EXISTS surface_geom geometry(Point, 4269)",
					"ALTER TABLE wellbores ADD COLUMN IF NOT EXISTS trajectory_geom geometry",
					"CREATE INDEX IF NOT EXISTS idx_wells_surface_geom ON wells USING GIST (surface_geom)",
					"CREATE INDEX IF NOT EXISTS idx_wellbores_trajectory_geom ON wellbores USING GIST (trajectory_geom)",
				}
				for _, stmt := range stmts {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "12032026_single_active_survey_index",
			Migrate: func(tx *gorm.DB) error {
				// At most one active survey per wellbore, enforced in
				// storage as well as in the engine.
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_directional_surveys_one_active ON directional_surveys (wellbore_id) WHERE is_active").Error
			},
		},
		{
			ID: "02042026_production_daily_partitioned",
			Migrate: func(tx *gorm.DB) error {
				// Step 1: parent table, range partitioned by prod_date.
				// The partition key has to be part of the primary key.
				err := tx.Exec(`CREATE TABLE IF NOT EXISTS production_daily (
					wellbore_id uuid NOT NULL REFERENCES wellbores(id),
					prod_date date NOT NULL,
					oil_vol double precision DEFAULT 0,
					gas_vol double precision DEFAULT 0,
					water_vol double precision DEFAULT 0,
					hours_on double precision DEFAULT 0,
					tubing_pressure double precision DEFAULT 0,
					casing_pressure double precision DEFAULT 0,
					choke_size double precision DEFAULT 0,
					attributes jsonb,
					PRIMARY KEY (wellbore_id, prod_date)
				) PARTITION BY RANGE (prod_date)`).Error
				if err != nil {
					return err
				}

				// Step 2: one partition per year plus a catch-all for
				// anything outside the expected range
				for year := 2015; year <= 2032; year++ {
					stmt := fmt.Sprintf(
						"CREATE TABLE IF NOT EXISTS production_daily_y%d PARTITION OF production_daily FOR VALUES FROM ('%d-01-01') TO ('%d-01-01')",
						year, year, year+1)
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return tx.Exec("CREATE TABLE IF NOT EXISTS production_daily_default PARTITION OF production_daily DEFAULT").Error
			},
		},
	})
	return m.Migrate()
}
