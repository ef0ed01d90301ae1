package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
)

func TestMatchWellbore(t *testing.T) {
	alpha := uuid.New()
	long := uuid.New()
	cache := map[string]uuid.UUID{
		"4212345678":     alpha,
		"42123456780000": long,
		// Skeleton a digit-merging matcher would fabricate from
		// "photo_42123_8400-8410.jpg". It must never be reached.
		"4212384008410": uuid.New(),
	}

	tests := []struct {
		name string
		file string
		want uuid.UUID
		ok   bool
	}{
		{"ten digit run", "core_photo_4212345678_8400-8410.jpg", alpha, true},
		{"fourteen digit run", "log_42123456780000.tif", long, true},
		{"second run matches", "scan-001_4212345678.tif", alpha, true},
		{"run too short", "notes_421234.pdf", uuid.Nil, false},
		{"run too long", "survey_421234567890123456.csv", uuid.Nil, false},
		{"unknown skeleton", "core_photo_9912345678.jpg", uuid.Nil, false},
		{"depth runs never fuse", "photo_42123_8400-8410.jpg", uuid.Nil, false},
		{"no digits at all", "field_notes.txt", uuid.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchWellbore(tt.file, cache)
			if ok != tt.ok || got != tt.want {
				t.Errorf("matchWellbore(%q) = %v, %v; want %v, %v", tt.file, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInferContext(t *testing.T) {
	tests := []struct {
		file     string
		wantType string
		wantDesc string
	}{
		{"Core_Photo_4212345678_8400_UV.jpg", models.MediaCore, "UV Light"},
		{"core_photo_4212345678_8400.jpg", models.MediaCore, "White Light"},
		{"thin_section_4212345678_9100.png", models.MediaThinSheet, "Micrograph"},
		{"gamma_log_4212345678.tif", models.MediaLogRaster, "Scanned Image"},
		{"4212345678_completion_report.pdf", models.MediaDocument, "Report"},
		{"4212345678_mudlog_summary.pdf", models.MediaDocument, "Report"},
		{"whatever_4212345678.txt", models.MediaOtherMedia, "Auto-Import"},
		// core photo wins over the raster-log rule even for a .tif
		{"core_photo_box3_4212345678.tif", models.MediaCore, "White Light"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			gotType, gotDesc := inferContext(tt.file)
			if gotType != tt.wantType || gotDesc != tt.wantDesc {
				t.Errorf("inferContext(%q) = %q, %q; want %q, %q",
					tt.file, gotType, gotDesc, tt.wantType, tt.wantDesc)
			}
		})
	}
}

func TestParseDepths(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	eq := func(a, b *float64) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return *a == *b
	}

	tests := []struct {
		name     string
		file     string
		wantTop  *float64
		wantBase *float64
	}{
		{"dash range", "core_4212345678_8400-8410.jpg", f(8400), f(8410)},
		{"reversed range is ordered", "slab_8410-8400_uv.jpg", f(8400), f(8410)},
		{"underscored to", "core_8400_to_8410.jpg", f(8400), f(8410)},
		{"spaced to", "core 8400 to 8410 white.jpg", f(8400), f(8410)},
		{"decimal range", "slab_3500.5-3510.25.png", f(3500.5), f(3510.25)},
		{"single with ft", "photo_8400ft.jpg", f(8400), f(8400)},
		{"single with md", "photo_8400md.jpg", f(8400), f(8400)},
		{"single in meters", "slab_2750m_core.jpg", f(2750), f(2750)},
		{"bare single before extension", "photo_3500.jpg", f(3500), f(3500)},
		{"no depth", "report.pdf", nil, nil},
		{"uwi run is not a depth", "gamma_log_4212345678.tif", nil, nil},
		{"six digit run is not a depth", "photo_350000.jpg", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, base := parseDepths(tt.file)
			if !eq(top, tt.wantTop) || !eq(base, tt.wantBase) {
				t.Errorf("parseDepths(%q) = %v, %v; want %v, %v",
					tt.file, fmtDepth(top), fmtDepth(base), fmtDepth(tt.wantTop), fmtDepth(tt.wantBase))
			}
		})
	}
}

func fmtDepth(d *float64) string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%.2f", *d)
}

func BenchmarkParseDepths(b *testing.B) {
	for i := 0; i < b.N; i++ {
		parseDepths("core_photo_4212345678_8400-8410_UV.jpg")
	}
}

// Database-backed tests run only when WELLBASE_TEST_DSN points at a
// disposable Postgres with PostGIS available.
func scanTestDB(t *testing.T) *gorm.DB {
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

func TestScanDirectory(t *testing.T) {
	db := scanTestDB(t)
	ctx := context.Background()

	digits := fmt.Sprintf("42123%05d", time.Now().UnixNano()%100000)
	well := models.Well{UWI: digits, Name: "Scan Test " + digits}
	if err := db.Create(&well).Error; err != nil {
		t.Fatalf("seeding well: %v", err)
	}
	wb := models.Wellbore{WellID: well.ID, Name: "OH"}
	if err := db.Create(&wb).Error; err != nil {
		t.Fatalf("seeding wellbore: %v", err)
	}

	root := t.TempDir()
	mustWrite := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
	mustWrite("CorePhotos/core_photo_" + digits + "_8400-8410_UV.jpg")
	mustWrite("Reports/" + digits + "_completion_report.pdf")
	mustWrite("unrelated_notes.txt")
	mustWrite(".DS_Store")

	sc := NewScanner(db, zap.NewNop())
	stats, err := sc.ScanDirectory(ctx, root)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if stats.Files != 3 || stats.Indexed != 2 || stats.Unmatched != 1 || stats.Duplicate != 0 {
		t.Errorf("first scan stats = %+v, expected 3 files / 2 indexed / 1 unmatched", stats)
	}

	var rows []models.MediaCatalog
	if err := db.Where("wellbore_id = ?", wb.ID).Order("media_type").Find(&rows).Error; err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("cataloged %d rows, expected 2", len(rows))
	}

	photo := rows[0]
	if photo.MediaType != models.MediaCore || photo.FileFormat != "jpg" {
		t.Errorf("core photo row = type %q format %q", photo.MediaType, photo.FileFormat)
	}
	if photo.Description != "UV Light | Source: CorePhotos" {
		t.Errorf("core photo description = %q", photo.Description)
	}
	if photo.TopDepthMD == nil || photo.BaseDepthMD == nil ||
		*photo.TopDepthMD != 8400 || *photo.BaseDepthMD != 8410 {
		t.Errorf("core photo depths = %v-%v, expected 8400-8410",
			fmtDepth(photo.TopDepthMD), fmtDepth(photo.BaseDepthMD))
	}

	report := rows[1]
	if report.MediaType != models.MediaDocument {
		t.Errorf("report row type = %q, expected %q", report.MediaType, models.MediaDocument)
	}
	if report.TopDepthMD != nil || report.BaseDepthMD != nil {
		t.Errorf("report depths = %v-%v, expected none",
			fmtDepth(report.TopDepthMD), fmtDepth(report.BaseDepthMD))
	}

	// Rescanning the same tree adds nothing and reports the skips.
	again, err := sc.ScanDirectory(ctx, root)
	if err != nil {
		t.Fatalf("rescan error = %v", err)
	}
	if again.Indexed != 0 || again.Duplicate != 2 || again.Unmatched != 1 {
		t.Errorf("rescan stats = %+v, expected 0 indexed / 2 duplicate / 1 unmatched", again)
	}
}
