package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Hours"

var exportHeader = []string{"name", "branches", "total_hours", "expected_hours", "overtime_hours", "revenue", "effectiveness"}

func exportRow(s report.EmployeeSummary) []string {
	row := []string{
		s.Name,
		strings.Join(s.Branches, " / "),
		strconv.FormatFloat(s.Hours.TotalHours, 'f', 2, 64),
		strconv.FormatFloat(s.Hours.ExpectedHours, 'f', 2, 64),
		strconv.FormatFloat(s.Hours.OvertimeHours, 'f', 2, 64),
		"",
		"",
	}
	if s.Hours.Revenue != nil {
		row[5] = s.Hours.Revenue.StringFixed(2)
	}
	if s.Hours.Effectiveness != nil {
		row[6] = s.Hours.Effectiveness.StringFixed(2)
	}
	return row
}

// WriteCSV writes one row per employee after a header row.
func WriteCSV(w io.Writer, summaries []report.EmployeeSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, s := range summaries {
		if err := cw.Write(exportRow(s)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV into a single worksheet. Hour
// columns are stored as numbers.
func WriteXLSX(w io.Writer, summaries []report.EmployeeSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, s := range summaries {
		text := exportRow(s)
		row := []interface{}{
			text[0],
			text[1],
			s.Hours.TotalHours,
			s.Hours.ExpectedHours,
			s.Hours.OvertimeHours,
			text[5],
			text[6],
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
