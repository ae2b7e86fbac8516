package intake

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/worklens/attendance-payroll/internal/models"
)

// ReadCSV decodes a comma-separated export. A header row is required.
// Records may be ragged; short rows read as empty cells and the row
// parser decides whether they are usable.
func ReadCSV(r io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	return rowsFromRecords(records)
}
