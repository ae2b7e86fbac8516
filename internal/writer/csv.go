package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/worklens/attendance-payroll/internal/models"
	"github.com/worklens/attendance-payroll/internal/payroll"
)

// CSVWriter renders a report as CSV, one row per employee in ranked order.
// With IncludeDetail set, each employee row is followed by its visits.
type CSVWriter struct {
	IncludeDetail bool
	Rate          int // hourly wage rate applied to the salary column
}

// WriteToFile writes the report to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, report models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, report)
}

// Write renders the report in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, report models.Report) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"Name", "Employee Key", "Hours", "Total Minutes", "Visits", "Salary"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range report.Summaries {
		row := []string{
			s.Name,
			s.Key,
			payroll.HoursLabel(s.TotalMinutes),
			strconv.Itoa(s.TotalMinutes),
			strconv.Itoa(len(s.Visits)),
			strconv.Itoa(payroll.Salary(s.TotalMinutes, w.Rate)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}

		if !w.IncludeDetail {
			continue
		}
		for _, v := range s.Visits {
			detail := []string{"", v.Date, v.Start + "-" + v.End, strconv.Itoa(v.Minutes), "", ""}
			if err := cw.Write(detail); err != nil {
				return fmt.Errorf("failed to write detail row: %w", err)
			}
		}
	}

	return nil
}
