package reporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pincheck/internal/models"
)

const (
	headerFillColor = "FFE066"
	maxColumnWidth  = 50
)

var detailHeaders = []string{"Pin Code", "Branch Name", "Area Name", "Zone Type", "Delivery Type", "Transit Days"}

func writeWorkbook(rep *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"Delivery Pincode Details", detailRows(rep.DeliveryDetails)},
		{"All Pincode Details", detailRows(rep.AllDetails)},
		{"Found Pincode", checkRows(rep.Found)},
		{"Not Found Pincode", checkRows(rep.NotFound)},
		{"All Pincode Status", statusRows(rep.AllChecks)},
		{"Possible Delivery Zone", zoneRows(rep.PossibleDeliveryZones)},
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", ErrReportLocked, err)
	}
	return nil
}

func detailRows(details []models.PincodeDetail) [][]string {
	rows := make([][]string, 0, len(details)+1)
	rows = append(rows, detailHeaders)
	for _, d := range details {
		rows = append(rows, []string{d.Pincode, d.BranchName, d.AreaName, d.ZoneType, d.DeliveryType, d.TransitDays})
	}
	return rows
}

func checkRows(checks []models.PincodeCheck) [][]string {
	rows := make([][]string, 0, len(checks)+1)
	rows = append(rows, []string{"Pin Code"})
	for _, check := range checks {
		rows = append(rows, []string{check.Pincode})
	}
	return rows
}

// statusRows lists every code's latest outcome, so records that produced no
// detail rows (errors in particular) still show up in the workbook.
func statusRows(checks []models.PincodeCheck) [][]string {
	rows := make([][]string, 0, len(checks)+1)
	rows = append(rows, []string{"Pin Code", "Status", "Reason"})
	for _, check := range checks {
		rows = append(rows, []string{check.Pincode, string(check.Status), check.Reason})
	}
	return rows
}

func zoneRows(codes []string) [][]string {
	rows := make([][]string, 0, len(codes)+1)
	rows = append(rows, []string{"Pin Code"})
	for _, code := range codes {
		rows = append(rows, []string{code})
	}
	return rows
}

func writeSheet(f *excelize.File, name string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}

	return formatSheet(f, name, rows)
}

// formatSheet bolds the header row on a light yellow fill and sizes each
// column to its longest value, capped at maxColumnWidth.
func formatSheet(f *excelize.File, name string, rows [][]string) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return err
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastHeaderCell, style); err != nil {
		return err
	}

	for col := range rows[0] {
		longest := 0
		for _, row := range rows {
			if col < len(row) && len(row[col]) > longest {
				longest = len(row[col])
			}
		}

		width := float64(longest + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return err
		}
	}

	return nil
}
