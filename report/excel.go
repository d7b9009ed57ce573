package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ethan8996/i18nx/classify"
	"github.com/ethan8996/i18nx/inspection"
)

// Sheet names of the Excel workbook.
const (
	SheetStrings = "Hardcoded Strings"
	SheetStats   = "Statistics"
	SheetChinese = "Chinese Strings"
)

var excelHeader = []string{
	"File Path", "Package", "Module", "Line", "Category",
	"Original String", "Translated String", "Status",
}

// WriteExcel renders the workbook to path: the full record table, a
// statistics sheet, and a Chinese-only sheet for manual translation
// review.
func WriteExcel(records []*inspection.Record, stats inspection.Stats, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the main table.
	if err := f.SetSheetName("Sheet1", SheetStrings); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeRecordSheet(f, SheetStrings, records); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetStats); err != nil {
		return fmt.Errorf("creating sheet %s: %w", SheetStats, err)
	}
	if err := writeStatsSheet(f, stats); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetChinese); err != nil {
		return fmt.Errorf("creating sheet %s: %w", SheetChinese, err)
	}
	var chinese []*inspection.Record
	for _, r := range records {
		if r.Category == classify.Chinese {
			chinese = append(chinese, r)
		}
	}
	if err := writeRecordSheet(f, SheetChinese, chinese); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeRecordSheet(f *excelize.File, sheet string, records []*inspection.Record) error {
	header := make([]interface{}, len(excelHeader))
	for i, h := range excelHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header of %s: %w", sheet, err)
	}

	for i, r := range records {
		row := []interface{}{
			r.FilePath, r.Package, r.Module, r.Line, string(r.Category),
			r.Original, r.Translated, string(r.Status),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+2, sheet, err)
		}
	}

	// Readable widths for the path and literal columns.
	if err := f.SetColWidth(sheet, "A", "A", 45); err != nil {
		return fmt.Errorf("sizing columns of %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "F", "G", 40); err != nil {
		return fmt.Errorf("sizing columns of %s: %w", sheet, err)
	}
	return nil
}

func writeStatsSheet(f *excelize.File, stats inspection.Stats) error {
	rows := []struct {
		metric string
		value  int
	}{
		{"Total strings", stats.Total},
		{"Chinese strings", stats.Chinese},
		{"English strings", stats.English},
		{"Format strings", stats.Format},
		{"Successfully translated", stats.Translated},
		{"Failed translations", stats.Failed},
		{"Skipped files", stats.SkippedFiles},
	}

	header := []interface{}{"Metric", "Value"}
	if err := f.SetSheetRow(SheetStats, "A1", &header); err != nil {
		return fmt.Errorf("writing header of %s: %w", SheetStats, err)
	}
	for i, r := range rows {
		row := []interface{}{r.metric, r.value}
		if err := f.SetSheetRow(SheetStats, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+2, SheetStats, err)
		}
	}
	if err := f.SetColWidth(SheetStats, "A", "A", 25); err != nil {
		return fmt.Errorf("sizing columns of %s: %w", SheetStats, err)
	}
	return nil
}
