package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sampleView()); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	want := []string{SummarySheet, YearlySheet, SeriesSheet}
	if len(names) != len(want) {
		t.Fatalf("sheets = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, names[i], want[i])
		}
	}

	title, err := f.GetCellValue(SummarySheet, "A1")
	if err != nil || title != "AAPL (5Y) Stock Analysis" {
		t.Errorf("Summary!A1 = %q (%v)", title, err)
	}
	latest, err := f.GetCellValue(SummarySheet, "B4")
	if err != nil || latest != "$120.00" {
		t.Errorf("Summary!B4 = %q (%v)", latest, err)
	}

	rows, err := f.GetRows(YearlySheet)
	if err != nil {
		t.Fatalf("reading Yearly: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Yearly rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Year" || rows[0][5] != "Gain/Loss" {
		t.Errorf("Yearly header = %v", rows[0])
	}
	if rows[2][0] != "2023" || rows[2][5] != "-16.67%" {
		t.Errorf("Yearly 2023 row = %v", rows[2])
	}
	if rows[1][3] != "NaN" {
		t.Errorf("Yearly 2022 std dev = %q, want NaN", rows[1][3])
	}

	series, err := f.GetRows(SeriesSheet)
	if err != nil {
		t.Fatalf("reading Series: %v", err)
	}
	if len(series) != 3 || series[1][0] != "2022-12-30" {
		t.Errorf("Series rows = %v", series)
	}
}

func TestWriteWorkbookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbookFile(path, sampleView()); err != nil {
		t.Fatalf("WriteWorkbookFile: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 {
		t.Errorf("sheets = %v, want 3", got)
	}
}

func TestWriteWorkbookFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.xlsx")
	if err := WriteWorkbookFile(path, sampleView()); err == nil {
		t.Error("expected error for missing directory")
	}
}
