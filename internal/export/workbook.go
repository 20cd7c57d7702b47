package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
)

// WriteWorkbook renders v as an .xlsx workbook with Summary, Yearly and Series sheets.
func WriteWorkbook(w io.Writer, v analysis.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{YearlySheet, SeriesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	sheets := []struct {
		name   string
		values [][]any
		width  float64
	}{
		{SummarySheet, summaryValues(v), 24},
		{YearlySheet, yearlyValues(v), 18},
		{SeriesSheet, seriesValues(v), 14},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.values); err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, "A", "F", s.width); err != nil {
			return fmt.Errorf("sizing columns of %s: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteWorkbookFile saves the workbook for v at path.
func WriteWorkbookFile(path string, v analysis.View) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteWorkbook(f, v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, values [][]any) error {
	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d of %s: %w", i+1, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
