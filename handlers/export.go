package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// ExportTrajectoryXLSX streams a workbook with the wellbore's computed
// trajectory on one sheet and its formation tops on another. Depth columns
// stay in the wellbore's declared unit; easting/northing are CRS units.
func ExportTrajectoryXLSX(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var wb models.Wellbore
	if err := config.DB.Preload("Well").First(&wb, "id = ?", id).Error; err != nil {
		respondError(w, apperrors.NotFound("wellbore %s not found", id))
		return
	}
	if wb.TrajectoryComputedAt == nil {
		respondError(w, apperrors.NotFound("wellbore %s has no computed trajectory to export", id))
		return
	}
	var points []models.TrajectoryPoint
	if err := config.DB.Where("wellbore_id = ?", id).Order("seq").Find(&points).Error; err != nil {
		respondError(w, apperrors.Internal("loading trajectory points", err))
		return
	}
	var tops []models.FormationTop
	err = config.DB.Preload("StratUnit").
		Where("wellbore_id = ?", id).Order("depth_md").Find(&tops).Error
	if err != nil {
		respondError(w, apperrors.Internal("loading formation tops", err))
		return
	}

	file, err := buildTrajectoryWorkbook(&wb, points, tops)
	if err != nil {
		respondError(w, apperrors.Internal("building workbook", err))
		return
	}
	buffer, err := file.WriteToBuffer()
	if err != nil {
		respondError(w, apperrors.Internal("writing workbook", err))
		return
	}

	name := "trajectory"
	if wb.Well != nil && wb.Well.UWI != "" {
		name = wb.Well.UWI + "_" + wb.Name
	}
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// buildTrajectoryWorkbook lays out the two sheets. Kept separate from the
// handler so the CLI exporter can reuse it.
func buildTrajectoryWorkbook(wb *models.Wellbore, points []models.TrajectoryPoint, tops []models.FormationTop) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})

	const trajSheet = "Trajectory"
	index, err := f.NewSheet(trajSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	title := wb.Name
	if wb.Well != nil {
		title = fmt.Sprintf("%s / %s (%s)", wb.Well.Name, wb.Name, wb.Well.UWI)
	}
	f.SetCellValue(trajSheet, "A1", title)
	f.SetCellStyle(trajSheet, "A1", "A1", titleStyle)

	meta := [][2]interface{}{
		{"Depth unit", wb.DepthUnit},
		{"Elevation datum", fmt.Sprintf("%s %.2f", wb.ElevationDatum, wb.ReferenceElevation)},
	}
	if wb.CRSEPSG != nil {
		meta = append(meta, [2]interface{}{"CRS", fmt.Sprintf("EPSG:%d", *wb.CRSEPSG)})
	}
	if wb.GridConvergence != nil {
		meta = append(meta, [2]interface{}{"Grid convergence", *wb.GridConvergence})
	}
	if wb.TrajectoryComputedAt != nil {
		meta = append(meta, [2]interface{}{"Computed", wb.TrajectoryComputedAt.Format("2006-01-02 15:04:05")})
	}
	for i, kv := range meta {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
		f.SetCellValue(trajSheet, keyCell, kv[0])
		f.SetCellValue(trajSheet, valueCell, kv[1])
	}

	headerRow := len(meta) + 3
	trajHeaders := []string{"Seq", "MD", "TVD", "North Offset", "East Offset", "Easting", "Northing", "Elevation"}
	for col, h := range trajHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		f.SetCellValue(trajSheet, cell, h)
		f.SetCellStyle(trajSheet, cell, cell, headerStyle)
		f.SetColWidth(trajSheet, columnIndexToLetter(col+1), columnIndexToLetter(col+1), 14)
	}
	for rowIdx, p := range points {
		values := []interface{}{p.Seq, p.MD, p.TVD, p.NorthOffset, p.EastOffset, p.Easting, p.Northing, p.Elevation}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+rowIdx)
			f.SetCellValue(trajSheet, cell, v)
		}
	}

	const topsSheet = "Formation Tops"
	if _, err := f.NewSheet(topsSheet); err != nil {
		return nil, err
	}
	topHeaders := []string{"Formation", "Interpreter", "Occurrence", "MD", "TVD", "TVDSS", "Quality"}
	for col, h := range topHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(topsSheet, cell, h)
		f.SetCellStyle(topsSheet, cell, cell, headerStyle)
		f.SetColWidth(topsSheet, columnIndexToLetter(col+1), columnIndexToLetter(col+1), 16)
	}
	for rowIdx, top := range tops {
		formation := ""
		if top.StratUnit != nil {
			formation = top.StratUnit.Name
		}
		values := []interface{}{formation, top.Interpreter, top.Occurrence, top.DepthMD}
		if top.DepthTVD != nil {
			values = append(values, *top.DepthTVD)
		} else {
			values = append(values, "")
		}
		if top.DepthTVDSS != nil {
			values = append(values, *top.DepthTVDSS)
		} else {
			values = append(values, "")
		}
		if top.PickQuality != nil {
			values = append(values, *top.PickQuality)
		} else {
			values = append(values, "")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(topsSheet, cell, v)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
