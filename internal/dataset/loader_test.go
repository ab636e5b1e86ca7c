package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "calls.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Call ID", "Audio URL", "Language"},
		[][]string{
			{"c1", "https://example.com/a.mp3", "en"},
			{"c2", "not-a-url", "en"},
			{"c3", "http://example.com/b.wav", ""},
		})

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (invalid URL row skipped)", len(records))
	}
	if records[0].CallID != "c1" || records[0].AudioURL != "https://example.com/a.mp3" || records[0].Language != "en" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].CallID != "c3" {
		t.Errorf("second record = %+v, want c3", records[1])
	}
}

func TestLoadNoAudioColumn(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Name", "Notes"},
		[][]string{{"x", "y"}})
	if _, err := Load(path); err == nil {
		t.Fatal("expected error when no audio column is present")
	}
}

func TestLoadEmptySheet(t *testing.T) {
	path := writeWorkbook(t, []string{"Audio URL"}, nil)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for header-only sheet")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
