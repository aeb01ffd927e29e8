package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads one worksheet of an Excel workbook. sheetName wins over
// the zero-based sheet index when set. Raw cell values are used so numbers are
// not subject to the workbook's display formats.
func ReadWorkbook(path string, sheet int, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := sheetName
	if name == "" {
		sheets := f.GetSheetList()
		if sheet < 0 || sheet >= len(sheets) {
			return nil, fmt.Errorf("workbook %s has %d sheets; index %d out of range", path, len(sheets), sheet)
		}
		name = sheets[sheet]
	}

	records, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(record))
		for i, value := range record {
			row[i] = Text(value)
		}
		if row.blank() {
			continue
		}
		rows = append(rows, row)
	}
	return NewTable(records[0], rows), nil
}
