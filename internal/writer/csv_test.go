package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/worklens/attendance-payroll/internal/models"
)

func sampleReport() models.Report {
	return models.Report{
		Summaries: []models.EmployeeSummary{
			{
				Key:          "E-01",
				Name:         "Alice",
				TotalMinutes: 630,
				Visits: []models.Visit{
					{Date: "2024-01-15", Start: "09:00", End: "18:00", Minutes: 540},
					{Date: "2024-01-16", Start: "10:00", End: "11:30", Minutes: 90},
				},
			},
			{
				Key:          "Bob",
				Name:         "Bob",
				TotalMinutes: 480,
				Visits: []models.Visit{
					{Date: "2024-01-15", Start: "22:00", End: "06:00", Minutes: 480},
				},
			},
		},
		TotalMinutes: 1110,
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{Rate: 190}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Name,Employee Key,Hours,Total Minutes,Visits,Salary") {
		t.Error("expected column headers")
	}
	// 630 min at 190/h = round(10.5 * 190) = 1995
	if !strings.Contains(output, "Alice,E-01,10h 30m,630,2,1995") {
		t.Errorf("expected Alice summary row, got:\n%s", output)
	}
	// 480 min at 190/h = 1520
	if !strings.Contains(output, "Bob,Bob,8h 00m,480,1,1520") {
		t.Errorf("expected Bob summary row, got:\n%s", output)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 1 header + 2 employees, no detail rows
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteDetail(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeDetail: true, Rate: 190}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "2024-01-15,09:00-18:00,540") {
		t.Errorf("expected first visit detail row, got:\n%s", output)
	}
	if !strings.Contains(output, "2024-01-15,22:00-06:00,480") {
		t.Errorf("expected overnight visit detail row, got:\n%s", output)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 1 header + 2 employees + 3 visits
	if len(lines) != 6 {
		t.Errorf("expected 6 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{Rate: 100}
	if err := w.Write(&buf, models.Report{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}
