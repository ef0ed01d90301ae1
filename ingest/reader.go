package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable loads a tabular file into a header row plus data rows. Files
// ending in .xlsx read their first sheet; everything else goes through the
// CSV reader. The first row is always treated as headers.
func ReadTable(path string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads comma-separated data. Ragged rows are tolerated; the
// mapping layer pads or truncates against the header row.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	headers := all[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(headers[i], "\uFEFF"))
	}
	return headers, all[1:], nil
}

// ReadXLSX reads the first sheet of a workbook.
func ReadXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s has no header row", sheets[0])
	}
	headers := rows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	return headers, rows[1:], nil
}
