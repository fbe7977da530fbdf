package acquisitions

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// decodeFirstSheet opens a workbook from in-memory bytes and returns the raw
// cell grid of its first sheet. No header contract is assumed; rows keep
// whatever ragged shape the export gave them.
func decodeFirstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
