package acquisitions

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes the given rows into the first sheet of a fresh
// workbook and returns its bytes, mimicking the exports schools upload.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name for row %d: %v", i+1, err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeFirstSheet_RejectsGarbage(t *testing.T) {
	if _, err := decodeFirstSheet([]byte("not a spreadsheet")); err == nil {
		t.Fatalf("expected decode error for garbage bytes")
	}
}
