package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "UWI,OPERATOR,LAT\n42-123,Acme,31.9\n42-456,Baker\n"
	headers, rows, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if len(headers) != 3 || headers[0] != "UWI" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][1] != "Baker" || len(rows[1]) != 2 {
		t.Errorf("ragged row read as %v", rows[1])
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	in := "\uFEFFUWI,NAME\n42,Alpha\n"
	headers, _, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if headers[0] != "UWI" {
		t.Errorf("BOM survived in header: %q", headers[0])
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("ReadCSV accepted an empty file")
	}
}

func TestReadTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wells.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"UWI", "OPERATOR", "LAT"},
		{"42-123-45678", "Acme Energy", 31.9},
		{"42-123-99999", "Baker O&G", 32.1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	headers, data, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable returned error: %v", err)
	}
	if len(headers) != 3 || headers[1] != "OPERATOR" {
		t.Errorf("headers = %v", headers)
	}
	if len(data) != 2 || data[0][0] != "42-123-45678" {
		t.Errorf("data = %v", data)
	}
}

func TestReadTableCSVPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tops.csv")
	if err := os.WriteFile(path, []byte("UWI,FORMATION,MD\n42,Wolfcamp,8000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	headers, rows, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable returned error: %v", err)
	}
	if headers[1] != "FORMATION" || rows[0][2] != "8000" {
		t.Errorf("headers %v rows %v", headers, rows)
	}
}

func TestReadTableMissingFile(t *testing.T) {
	if _, _, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("ReadTable accepted a missing file")
	}
}
