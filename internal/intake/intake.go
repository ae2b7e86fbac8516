// Package intake turns whole attendance-export files into ordered raw-row
// batches. It performs the batch-level validation tier: wrong file type,
// empty file, missing headers, or an unusable first row reject the upload
// before the aggregation core ever runs.
package intake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/worklens/attendance-payroll/internal/models"
)

// Required header labels, in the order the terminals emit them. Matching is
// case-insensitive after trimming, but every label must be present.
var headerLabels = []string{
	"No.",
	"Name",
	"Employee ID",
	"Date",
	"Clock In",
	"Clock Out",
	"Terminal",
}

// BatchError rejects an entire upload. Nothing from the file reaches the
// aggregation core when one of these is returned.
type BatchError struct {
	Reason string
}

func (e *BatchError) Error() string {
	return "attendance export rejected: " + e.Reason
}

func batchErrorf(format string, args ...any) *BatchError {
	return &BatchError{Reason: fmt.Sprintf(format, args...)}
}

// ReadFile loads an export from disk, dispatching on the file extension.
// Supported formats: .csv and .xlsx.
func ReadFile(path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path))
}

// Read loads an export from r, using filename's extension to pick the
// decoder.
func Read(r io.Reader, filename string) ([]models.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, batchErrorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
	}
}

// rowsFromRecords applies the shared header and first-row checks to decoded
// cell data and maps each record to a RawRow.
func rowsFromRecords(records [][]string) ([]models.RawRow, error) {
	if len(records) == 0 {
		return nil, batchErrorf("file is empty")
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	if len(records) == 1 {
		return nil, batchErrorf("no punch rows found after the header")
	}

	rows := make([]models.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, models.RawRow{
			Seq:        cell(rec, cols[0]),
			Name:       cell(rec, cols[1]),
			EmployeeID: cell(rec, cols[2]),
			Date:       cell(rec, cols[3]),
			ClockIn:    cell(rec, cols[4]),
			ClockOut:   cell(rec, cols[5]),
			Terminal:   cell(rec, cols[6]),
		})
	}

	// The first data row must carry a name and a clock-in time, otherwise
	// the export is assumed to be the wrong kind of file entirely.
	if rows[0].Name == "" || rows[0].ClockIn == "" {
		return nil, batchErrorf("first row has no name or clock-in time; is this an attendance export?")
	}

	return rows, nil
}

// mapHeader resolves the column index of each required label. The returned
// slice is parallel to headerLabels.
func mapHeader(header []string) ([]int, error) {
	byLabel := make(map[string]int, len(header))
	for i, label := range header {
		byLabel[normalizeLabel(label)] = i
	}

	cols := make([]int, len(headerLabels))
	var missing []string
	for i, label := range headerLabels {
		idx, ok := byLabel[normalizeLabel(label)]
		if !ok {
			missing = append(missing, label)
			continue
		}
		cols[i] = idx
	}
	if len(missing) > 0 {
		return nil, batchErrorf("missing required header field(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// cell returns the trimmed value at idx, or "" for short records.
func cell(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
