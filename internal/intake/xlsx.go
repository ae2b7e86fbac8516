package intake

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/worklens/attendance-payroll/internal/models"
)

// ReadXLSX decodes a workbook export. Some terminal vendors ship XLSX
// instead of CSV; the layout contract is the same, read from the first
// sheet.
func ReadXLSX(r io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, batchErrorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return rowsFromRecords(records)
}
