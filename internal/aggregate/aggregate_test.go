package aggregate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklens/attendance-payroll/internal/models"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func row(seq, name, id, in, out string) models.RawRow {
	return models.RawRow{Seq: seq, Name: name, EmployeeID: id, Date: "2024-01-15", ClockIn: in, ClockOut: out}
}

func TestBuildReportGroupsByKey(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Alice", "E-01", "09:00", "18:00"),
		row("2", "Bob", "", "10:00", "12:00"),
		row("3", "Alice Renamed", "E-01", "22:00", "06:00"),
	}

	report := agg.BuildReport(rows)

	require.Len(t, report.Summaries, 2)

	alice := report.Summaries[0]
	assert.Equal(t, "E-01", alice.Key)
	// Display name comes from the first row seen for the key.
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 540+480, alice.TotalMinutes)
	require.Len(t, alice.Visits, 2)
	// Visits keep input row order.
	assert.Equal(t, 540, alice.Visits[0].Minutes)
	assert.Equal(t, 480, alice.Visits[1].Minutes)

	bob := report.Summaries[1]
	assert.Equal(t, "Bob", bob.Key)
	assert.Equal(t, 120, bob.TotalMinutes)

	assert.Equal(t, 540+480+120, report.TotalMinutes)
	assert.Empty(t, report.Skipped)
}

func TestBuildReportTotalEqualsVisitSum(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Alice", "", "09:00", "18:00"),
		row("2", "Alice", "", "19:00", "21:30"),
		row("3", "Bob", "", "22:00", "06:00"),
		row("4", "Bob", "", "09:00", "09:00"),
	}

	report := agg.BuildReport(rows)
	for _, s := range report.Summaries {
		sum := 0
		for _, v := range s.Visits {
			sum += v.Minutes
		}
		assert.Equal(t, sum, s.TotalMinutes, "summary %q", s.Key)
	}
}

func TestBuildReportSkipsBadRowsOnly(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Alice", "", "09:00", "18:00"),
		row("2", "Alice", "", "25:99", "18:00"), // malformed clock-in
		row("3", "Alice", "", "10:00", "11:00"),
		row("4", "", "", "09:00", "18:00"), // missing name
	}

	report := agg.BuildReport(rows)

	require.Len(t, report.Summaries, 1)
	assert.Equal(t, 540+60, report.Summaries[0].TotalMinutes)
	assert.Len(t, report.Summaries[0].Visits, 2)

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "2", report.Skipped[0].Seq)
	assert.Equal(t, "4", report.Skipped[1].Seq)
}

func TestBuildReportRanksByMinutesDescending(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Short", "", "09:00", "10:00"),
		row("2", "Long", "", "09:00", "18:00"),
		row("3", "Mid", "", "09:00", "13:00"),
	}

	report := agg.BuildReport(rows)

	require.Len(t, report.Summaries, 3)
	assert.Equal(t, "Long", report.Summaries[0].Name)
	assert.Equal(t, "Mid", report.Summaries[1].Name)
	assert.Equal(t, "Short", report.Summaries[2].Name)
}

func TestBuildReportTieBreakIsFirstSeenOrder(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "First", "", "09:00", "10:00"),
		row("2", "Second", "", "11:00", "12:00"),
		row("3", "Third", "", "13:00", "14:00"),
	}

	report := agg.BuildReport(rows)

	require.Len(t, report.Summaries, 3)
	assert.Equal(t, "First", report.Summaries[0].Name)
	assert.Equal(t, "Second", report.Summaries[1].Name)
	assert.Equal(t, "Third", report.Summaries[2].Name)
}

func TestBuildReportRowOrderIndependentSet(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Alice", "", "09:00", "18:00"),
		row("2", "Bob", "", "10:00", "12:00"),
		row("3", "Alice", "", "19:00", "20:00"),
	}
	reversed := []models.RawRow{rows[2], rows[1], rows[0]}

	a := agg.BuildReport(rows)
	b := agg.BuildReport(reversed)

	totals := func(r models.Report) map[string]int {
		m := make(map[string]int)
		for _, s := range r.Summaries {
			m[s.Key] = s.TotalMinutes
		}
		return m
	}
	assert.Equal(t, totals(a), totals(b))
}

func TestBuildReportEmptyInput(t *testing.T) {
	agg := New(WithLogger(quiet()))

	report := agg.BuildReport(nil)

	assert.Empty(t, report.Summaries)
	assert.Empty(t, report.Skipped)
	assert.Zero(t, report.TotalMinutes)
}

func TestBuildReportIdempotent(t *testing.T) {
	agg := New(WithLogger(quiet()))

	rows := []models.RawRow{
		row("1", "Alice", "E-01", "09:00", "18:00"),
		row("2", "Bob", "", "22:00", "06:00"),
		row("3", "Bad", "", "xx:yy", "18:00"),
	}

	first := agg.BuildReport(rows)
	second := agg.BuildReport(rows)

	assert.Equal(t, first, second)
}
