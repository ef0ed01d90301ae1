package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/lake"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/utils"
)

// Database-backed tests run only when WELLBASE_TEST_DSN points at a
// disposable Postgres with PostGIS available.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("WELLBASE_TEST_DSN")
	if dsn == "" {
		t.Skip("WELLBASE_TEST_DSN not set; skipping database tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return db
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// freshUWI returns a raw (dashed) identifier unique to this test run and
// its normalized form as the loaders will store it.
func freshUWI(t *testing.T) (raw, normalized string) {
	t.Helper()
	raw = "42-123-" + strings.ToUpper(uuid.NewString()[:8])
	return raw, utils.NormalizeUWI(raw)
}

func TestIngestHeaders(t *testing.T) {
	db := testDB(t)
	in := New(db, zap.NewNop(), nil, nil)
	ctx := context.Background()

	rawA, uwiA := freshUWI(t)
	rawB, _ := freshUWI(t)
	csv := fmt.Sprintf(`API,WELL_NAME,OPERATOR,LATITUDE,LONGITUDE,COUNTY
%s,Alpha 1-23H,Acme Energy,31.9,-102.3,Midland
%s,Beta 4-56,Baker O&G,32.1,-98.2,Palo Pinto
,Ghost Well,Nobody,30.0,-100.0,Nowhere
`, rawA, rawB)
	stats, err := in.IngestHeaders(ctx, writeTempFile(t, "headers.csv", csv))
	if err != nil {
		t.Fatalf("IngestHeaders() error = %v", err)
	}
	if stats.Loaded != 2 || stats.SkippedNoUWI != 1 {
		t.Errorf("stats = %+v, expected 2 loaded / 1 skipped", stats)
	}

	var well models.Well
	if err := db.First(&well, "uwi = ?", uwiA).Error; err != nil {
		t.Fatalf("loaded well not found: %v", err)
	}
	if well.Name != "Alpha 1-23H" || well.Operator != "Acme Energy" {
		t.Errorf("well = %+v", well)
	}
	if well.SurfaceLongitude == nil || *well.SurfaceLongitude != -102.3 {
		t.Errorf("surface lon = %v", well.SurfaceLongitude)
	}
	if !strings.Contains(string(well.Attributes), "Midland") {
		t.Errorf("attributes did not capture COUNTY: %s", well.Attributes)
	}

	var geomCount int64
	err = db.Raw("SELECT count(*) FROM wells WHERE uwi = ? AND surface_geom IS NOT NULL", uwiA).Scan(&geomCount).Error
	if err != nil || geomCount != 1 {
		t.Errorf("surface_geom not written (count=%d, err=%v)", geomCount, err)
	}

	// Zone 13 for -102.3, zone 14 for -98.2.
	var wb models.Wellbore
	if err := db.First(&wb, "well_id = ? AND name = 'OH'", well.ID).Error; err != nil {
		t.Fatalf("default wellbore missing: %v", err)
	}
	if wb.CRSEPSG == nil || *wb.CRSEPSG != 26913 {
		t.Errorf("defaulted CRS = %v, expected 26913", wb.CRSEPSG)
	}

	// Reload with changed operator and a new attribute: name/operator are
	// replaced, attributes merge, the wellbore is not duplicated.
	csv2 := fmt.Sprintf("API,OPERATOR,WELL_NAME,BASIN\n%s,Condor Resources,Alpha 1-23H,Permian\n", rawA)
	if _, err := in.IngestHeaders(ctx, writeTempFile(t, "headers2.csv", csv2)); err != nil {
		t.Fatalf("re-ingest error = %v", err)
	}
	if err := db.First(&well, "uwi = ?", uwiA).Error; err != nil {
		t.Fatal(err)
	}
	if well.Operator != "Condor Resources" {
		t.Errorf("operator after reload = %q", well.Operator)
	}
	attrs := string(well.Attributes)
	if !strings.Contains(attrs, "Midland") || !strings.Contains(attrs, "Permian") {
		t.Errorf("attributes did not merge: %s", attrs)
	}
	var wbCount int64
	db.Model(&models.Wellbore{}).Where("well_id = ?", well.ID).Count(&wbCount)
	if wbCount != 1 {
		t.Errorf("wellbore count after reload = %d, expected 1", wbCount)
	}
}

func TestIngestTops(t *testing.T) {
	db := testDB(t)
	in := New(db, zap.NewNop(), nil, nil)
	ctx := context.Background()

	rawA, uwiA := freshUWI(t)
	headers := fmt.Sprintf("API,WELL_NAME,LATITUDE,LONGITUDE\n%s,Alpha,31.9,-102.3\n", rawA)
	if _, err := in.IngestHeaders(ctx, writeTempFile(t, "headers.csv", headers)); err != nil {
		t.Fatalf("seeding headers: %v", err)
	}

	// Wolfcamp appears twice: a faulted section. The deeper pick gets
	// occurrence 2 regardless of file order.
	fmA := "Wolfcamp " + uwiA
	fmB := "Bone Spring " + uwiA
	tops := fmt.Sprintf(`UWI,FORMATION,TOP_MD,INTERPRETER
%s,%s,9100,geol
%s,%s,8000,geol
%s,%s,7000,geol
99-999-00000,%s,5000,geol
`, rawA, fmA, rawA, fmA, rawA, fmB, fmA)
	stats, err := in.IngestTops(ctx, writeTempFile(t, "tops.csv", tops))
	if err != nil {
		t.Fatalf("IngestTops() error = %v", err)
	}
	if stats.Loaded != 3 || stats.SkippedNoWell != 1 || stats.RepeatedPicks != 1 {
		t.Errorf("stats = %+v", stats)
	}

	var unit models.StratUnit
	if err := db.First(&unit, "name = ?", fmA).Error; err != nil {
		t.Fatalf("strat unit not created: %v", err)
	}
	var picks []models.FormationTop
	if err := db.Where("strat_unit_id = ?", unit.ID).Order("occurrence asc").Find(&picks).Error; err != nil {
		t.Fatal(err)
	}
	if len(picks) != 2 {
		t.Fatalf("wolfcamp picks = %d, expected 2", len(picks))
	}
	if picks[0].Occurrence != 1 || picks[0].DepthMD != 8000 {
		t.Errorf("first pick = occ %d at %v", picks[0].Occurrence, picks[0].DepthMD)
	}
	if picks[1].Occurrence != 2 || picks[1].DepthMD != 9100 {
		t.Errorf("second pick = occ %d at %v", picks[1].Occurrence, picks[1].DepthMD)
	}

	// Reloading with a moved depth updates in place and clears the
	// derived depths.
	moved := fmt.Sprintf("UWI,FORMATION,TOP_MD,INTERPRETER\n%s,%s,7100,geol\n", rawA, fmB)
	if _, err := in.IngestTops(ctx, writeTempFile(t, "tops2.csv", moved)); err != nil {
		t.Fatal(err)
	}
	var unitB models.StratUnit
	if err := db.First(&unitB, "name = ?", fmB).Error; err != nil {
		t.Fatal(err)
	}
	var pick models.FormationTop
	if err := db.First(&pick, "strat_unit_id = ?", unitB.ID).Error; err != nil {
		t.Fatal(err)
	}
	if pick.DepthMD != 7100 || pick.DepthTVD != nil {
		t.Errorf("moved pick = %v tvd %v, expected 7100 with tvd cleared", pick.DepthMD, pick.DepthTVD)
	}
}

func TestIngestProduction(t *testing.T) {
	db := testDB(t)
	in := New(db, zap.NewNop(), nil, nil)
	ctx := context.Background()

	rawA, uwiA := freshUWI(t)
	headers := fmt.Sprintf("API,WELL_NAME\n%s,Alpha\n", rawA)
	if _, err := in.IngestHeaders(ctx, writeTempFile(t, "headers.csv", headers)); err != nil {
		t.Fatalf("seeding headers: %v", err)
	}

	prod := fmt.Sprintf(`API,PROD_DATE,OIL,GAS,WATER
%s,2024-01-01,100.5,520,30
%s,2024-01-02,98,510,29
%s,not-a-date,1,1,1
`, rawA, rawA, rawA)
	stats, err := in.IngestProduction(ctx, writeTempFile(t, "prod.csv", prod))
	if err != nil {
		t.Fatalf("IngestProduction() error = %v", err)
	}
	if stats.Loaded != 2 || stats.SkippedBadRow != 1 {
		t.Errorf("stats = %+v", stats)
	}

	wellbores, err := resolveWellbores(db, []string{uwiA})
	if err != nil {
		t.Fatal(err)
	}
	wbID := wellbores[uwiA]

	// Restatement: same day, new volumes, missing columns default to 0.
	restate := fmt.Sprintf("API,PROD_DATE,OIL\n%s,2024-01-01,150\n", rawA)
	if _, err := in.IngestProduction(ctx, writeTempFile(t, "prod2.csv", restate)); err != nil {
		t.Fatal(err)
	}

	var day models.ProductionDaily
	err = db.Where("wellbore_id = ? AND prod_date = ?", wbID, "2024-01-01").First(&day).Error
	if err != nil {
		t.Fatalf("loading restated day: %v", err)
	}
	if day.OilVol != 150 || day.GasVol != 0 {
		t.Errorf("restated day = oil %v gas %v, expected 150/0", day.OilVol, day.GasVol)
	}

	var count int64
	db.Model(&models.ProductionDaily{}).Where("wellbore_id = ?", wbID).Count(&count)
	if count != 2 {
		t.Errorf("day count = %d, expected 2", count)
	}
}

func TestIngestSurveys(t *testing.T) {
	db := testDB(t)
	in := New(db, zap.NewNop(), nil, nil)
	ctx := context.Background()

	rawA, _ := freshUWI(t)
	rawB, _ := freshUWI(t)
	headers := fmt.Sprintf("API,WELL_NAME\n%s,Alpha\n%s,Beta\n", rawA, rawB)
	if _, err := in.IngestHeaders(ctx, writeTempFile(t, "headers.csv", headers)); err != nil {
		t.Fatalf("seeding headers: %v", err)
	}

	// Beta's run starts below surface, which fails validation; Alpha's
	// run arrives out of order and gets sorted by MD before loading.
	surveys := fmt.Sprintf(`API,MD,INC,AZI,COMPANY,METHOD
%s,1000,30,45,Test Directional,MWD
%s,0,0,0,Test Directional,MWD
%s,2000,30,45,Test Directional,MWD
%s,100,0,0,Other Co,Gyro
%s,200,5,10,Other Co,Gyro
`, rawA, rawA, rawA, rawB, rawB)
	stats, err := in.IngestSurveys(ctx, writeTempFile(t, "surveys.csv", surveys), SurveyOptions{})
	if err != nil {
		t.Fatalf("IngestSurveys() error = %v", err)
	}
	if stats.SurveysCreated != 1 || stats.StationsLoaded != 3 || stats.SkippedInvalid != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.SurveyIDs) != 1 {
		t.Fatalf("survey ids = %v", stats.SurveyIDs)
	}

	var survey models.DirectionalSurvey
	err = db.Preload("Stations", func(db *gorm.DB) *gorm.DB { return db.Order("seq asc") }).
		First(&survey, "id = ?", stats.SurveyIDs[0]).Error
	if err != nil {
		t.Fatal(err)
	}
	if survey.IsActive {
		t.Error("ingested survey arrived active")
	}
	if survey.Company != "Test Directional" || survey.Method != models.SurveyMethodMWD {
		t.Errorf("survey metadata = %+v", survey)
	}
	if survey.AzimuthReference != models.AzimuthRefTrue {
		t.Errorf("azimuth reference = %q", survey.AzimuthReference)
	}
	if len(survey.Stations) != 3 || survey.Stations[0].MD != 0 || survey.Stations[2].MD != 2000 {
		t.Errorf("stations out of order: %+v", survey.Stations)
	}
}

func TestIngestLAS(t *testing.T) {
	db := testDB(t)
	store, err := lake.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	in := New(db, zap.NewNop(), nil, store)
	ctx := context.Background()

	rawA, uwiA := freshUWI(t)
	headers := fmt.Sprintf("API,WELL_NAME\n%s,Alpha\n", rawA)
	if _, err := in.IngestHeaders(ctx, writeTempFile(t, "headers.csv", headers)); err != nil {
		t.Fatalf("seeding headers: %v", err)
	}

	las := strings.Replace(sampleLAS, "42-123-45678", rawA, 1)
	stats, err := in.IngestLAS(ctx, writeTempFile(t, "run1.las", las))
	if err != nil {
		t.Fatalf("IngestLAS() error = %v", err)
	}
	if !stats.Cataloged || stats.UWI != uwiA || stats.Channels != 3 || stats.Samples != 3 {
		t.Errorf("stats = %+v", stats)
	}

	var entry models.CurveCatalog
	if err := db.First(&entry, "lake_uri = ?", stats.LakeURI).Error; err != nil {
		t.Fatalf("catalog entry missing: %v", err)
	}
	if entry.MinDepth != 3500 || entry.MaxDepth != 3501 || entry.RowCount != 3 {
		t.Errorf("catalog extent = %+v", entry)
	}
	if len(entry.Channels) != 3 || entry.Channels[0] != "DEPT" {
		t.Errorf("catalog channels = %v", entry.Channels)
	}

	blob, err := store.Get(ctx, stats.LakeURI)
	if err != nil {
		t.Fatalf("lake blob missing: %v", err)
	}
	frame, rows, err := lake.DecodeFrame(blob)
	if err != nil {
		t.Fatalf("lake blob does not decode: %v", err)
	}
	if frame.UWI != uwiA || len(rows) != 3 {
		t.Errorf("frame = %+v with %d rows", frame, len(rows))
	}

	// Unknown well: curves land in the lake but nothing is cataloged.
	orphan := strings.Replace(sampleLAS, "42-123-45678", "99-888-77777", 1)
	stats, err = in.IngestLAS(ctx, writeTempFile(t, "orphan.las", orphan))
	if err != nil {
		t.Fatalf("IngestLAS(orphan) error = %v", err)
	}
	if stats.Cataloged {
		t.Error("orphan LAS was cataloged")
	}
	if _, err := store.Get(ctx, stats.LakeURI); err != nil {
		t.Errorf("orphan blob not in lake: %v", err)
	}
}
