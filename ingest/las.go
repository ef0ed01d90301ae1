package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/wellbase/wellbase/lake"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
	"github.com/wellbase/wellbase/utils"
)

// lasDefaultNull is the null sentinel assumed when the well section does
// not declare one.
const lasDefaultNull = -999.25

// LASFile is the parsed skeleton of a Log ASCII Standard 2.0 file: the
// identity fields from the well section, the curve mnemonics in file
// order, and the sample matrix with the file's null sentinel left as-is.
type LASFile struct {
	Version  string
	UWI      string
	WellName string
	Null     float64
	Channels []string
	Units    []string
	Rows     [][]float64
}

// ParseLAS reads an unwrapped LAS 2.0 stream. Wrapped files (WRAP.YES,
// one sample spread over several lines) are rejected.
func ParseLAS(r io.Reader) (*LASFile, error) {
	las := &LASFile{Null: lasDefaultNull}

	var apiValue, uwiValue string
	section := byte(0)
	lineNo := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "~") {
			if len(line) < 2 {
				return nil, fmt.Errorf("line %d: bare section marker", lineNo)
			}
			section = strings.ToUpper(line[1:2])[0]
			continue
		}

		switch section {
		case 'V':
			mnem, _, value := parseLASHeaderLine(line)
			switch strings.ToUpper(mnem) {
			case "VERS":
				las.Version = value
			case "WRAP":
				if strings.EqualFold(value, "YES") {
					return nil, fmt.Errorf("wrapped LAS files are not supported")
				}
			}
		case 'W':
			mnem, _, value := parseLASHeaderLine(line)
			switch strings.ToUpper(mnem) {
			case "API":
				apiValue = value
			case "UWI":
				uwiValue = value
			case "WELL":
				las.WellName = value
			case "NULL":
				if f, err := strconv.ParseFloat(value, 64); err == nil {
					las.Null = f
				}
			}
		case 'C':
			mnem, unit, _ := parseLASHeaderLine(line)
			if mnem == "" {
				return nil, fmt.Errorf("line %d: curve without a mnemonic", lineNo)
			}
			las.Channels = append(las.Channels, mnem)
			las.Units = append(las.Units, unit)
		case 'A':
			if len(las.Channels) == 0 {
				return nil, fmt.Errorf("line %d: data before any curve definition", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != len(las.Channels) {
				return nil, fmt.Errorf("line %d: %d values for %d curves", lineNo, len(fields), len(las.Channels))
			}
			row := make([]float64, len(fields))
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad sample %q", lineNo, f)
				}
				row[i] = v
			}
			las.Rows = append(las.Rows, row)
		default:
			// ~P parameter and ~O other sections carry nothing we index.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read LAS: %w", err)
	}
	if len(las.Channels) == 0 {
		return nil, fmt.Errorf("no curve section found")
	}
	if len(las.Rows) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}

	// Service companies fill whichever of API/UWI their software favors.
	if apiValue != "" {
		las.UWI = utils.NormalizeUWI(apiValue)
	} else {
		las.UWI = utils.NormalizeUWI(uwiValue)
	}
	return las, nil
}

// parseLASHeaderLine splits a "MNEM.UNIT  VALUE : DESCRIPTION" header
// line. The description is discarded.
func parseLASHeaderLine(line string) (mnem, unit, value string) {
	dot := strings.Index(line, ".")
	if dot < 0 {
		return strings.TrimSpace(line), "", ""
	}
	mnem = strings.TrimSpace(line[:dot])
	rest := line[dot+1:]

	end := strings.IndexAny(rest, " \t")
	if end < 0 {
		return mnem, strings.TrimSpace(rest), ""
	}
	unit = rest[:end]
	value = rest[end:]
	if colon := strings.Index(value, ":"); colon >= 0 {
		value = value[:colon]
	}
	return mnem, unit, strings.TrimSpace(value)
}

// LASStats reports one LAS load.
type LASStats struct {
	UWI       string `json:"uwi"`
	LakeURI   string `json:"lakeUri"`
	Cataloged bool   `json:"cataloged"`
	Channels  int    `json:"channels"`
	Samples   int    `json:"samples"`
}

// IngestLAS parses a LAS file, lands its curves in the lake as a snappy
// frame, and registers the dataset in curve_catalog. When the UWI has no
// well in the database the blob is still written so the curves are not
// lost, but no catalog row is created.
func (in *Ingestor) IngestLAS(ctx context.Context, path string) (*LASStats, error) {
	if in.store == nil {
		return nil, apperrors.Configuration("no lake store configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Validation("opening LAS file: %v", err)
	}
	defer f.Close()

	las, err := ParseLAS(f)
	if err != nil {
		return nil, apperrors.Validation("parsing %s: %v", filepath.Base(path), err)
	}
	if las.UWI == "" {
		return nil, apperrors.Validation("%s carries no API or UWI in its well section", filepath.Base(path))
	}

	blob, err := lake.EncodeFrame(lake.Frame{
		Dataset:  "Imported LAS",
		UWI:      las.UWI,
		Channels: las.Channels,
		Null:     las.Null,
	}, las.Rows)
	if err != nil {
		return nil, apperrors.Internal("encoding curve frame", err)
	}
	name := fmt.Sprintf("%s_%s.curves", las.UWI, filepath.Base(path))
	uri, err := in.store.Put(ctx, name, blob)
	if err != nil {
		return nil, apperrors.Internal("writing curve frame to lake", err)
	}

	stats := &LASStats{
		UWI:      las.UWI,
		LakeURI:  uri,
		Channels: len(las.Channels),
		Samples:  len(las.Rows),
	}

	wellbores, err := resolveWellbores(in.db.WithContext(ctx), []string{las.UWI})
	if err != nil {
		return nil, err
	}
	wbID, ok := wellbores[las.UWI]
	if !ok {
		in.log.Warn("no well for LAS identity, curves landed in lake but not cataloged",
			zap.String("file", path), zap.String("uwi", las.UWI))
		return stats, nil
	}

	minDepth, maxDepth := indexRange(las)
	entry := models.CurveCatalog{
		WellboreID:  wbID,
		DatasetName: "Imported LAS",
		LakeURI:     uri,
		Channels:    pq.StringArray(las.Channels),
		MinDepth:    minDepth,
		MaxDepth:    maxDepth,
		RowCount:    len(las.Rows),
	}
	if len(las.Units) > 0 {
		entry.IndexUnit = las.Units[0]
	}
	if err := in.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperrors.Internal("registering curve catalog entry", err)
	}
	stats.Cataloged = true

	in.log.Info("LAS curves loaded",
		zap.String("file", path),
		zap.String("uwi", las.UWI),
		zap.String("lakeUri", uri),
		zap.Int("channels", stats.Channels),
		zap.Int("samples", stats.Samples))
	return stats, nil
}

// indexRange scans the first (index) channel for its extent, skipping
// null-sentinel samples.
func indexRange(las *LASFile) (min, max float64) {
	first := true
	for _, row := range las.Rows {
		v := row[0]
		if v == las.Null {
			continue
		}
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
