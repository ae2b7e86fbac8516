// Package aggregate folds an ordered batch of raw punch rows into ranked
// per-employee summaries. The fold is a pure function of the rows: rebuilding
// from an unchanged batch yields a structurally identical report.
package aggregate

import (
	"log/slog"
	"sort"

	"github.com/worklens/attendance-payroll/internal/models"
	"github.com/worklens/attendance-payroll/internal/parser"
)

// Aggregator builds reports from raw-row batches. The zero value is not
// usable; construct with New.
type Aggregator struct {
	key parser.KeyFunc
	log *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithKeyFunc overrides the identity-key resolution policy.
func WithKeyFunc(fn parser.KeyFunc) Option {
	return func(a *Aggregator) { a.key = fn }
}

// WithLogger sets the logger used for skipped-row diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(a *Aggregator) { a.log = log }
}

// New returns an Aggregator using parser.DefaultKey and the default slog
// logger unless overridden.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		key: parser.DefaultKey,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildReport runs the full pipeline over one batch: per-row parsing,
// grouping by identity key, and ranking by total minutes descending.
//
// Rows missing a display name or clock-in time, and rows with malformed
// clock times, are excluded from all aggregates, recorded in the skipped
// manifest and logged; they never abort processing of the remaining rows.
// An empty batch is not an error and yields an empty report.
func (a *Aggregator) BuildReport(rows []models.RawRow) models.Report {
	byKey := make(map[string]*models.EmployeeSummary, len(rows))
	var order []string // first-seen key order, the ranking tie-break
	var skipped []models.SkippedRow

	skip := func(seq, name, reason string) {
		skipped = append(skipped, models.SkippedRow{Seq: seq, Name: name, Reason: reason})
		a.log.Warn("skipping punch row", "seq", seq, "name", name, "reason", reason)
	}

	for _, row := range rows {
		if row.Name == "" || row.ClockIn == "" {
			skip(row.Seq, row.Name, "missing name or clock-in")
			continue
		}

		key := a.key(row)
		sum, seen := byKey[key]
		if !seen {
			// Display name is captured from the first row under this key;
			// later rows with a different name do not update it.
			sum = &models.EmployeeSummary{Key: key, Name: row.Name}
			byKey[key] = sum
			order = append(order, key)
		}

		res := parser.ParseRow(row)
		if !res.OK() {
			skip(res.Err.Seq, res.Err.Name, res.Err.Reason)
			continue
		}

		sum.Visits = append(sum.Visits, res.Visit)
		sum.TotalMinutes += res.Visit.Minutes
	}

	report := models.Report{
		Summaries: rank(byKey, order),
		Skipped:   skipped,
	}
	for _, s := range report.Summaries {
		report.TotalMinutes += s.TotalMinutes
	}
	return report
}

// rank orders summaries by total minutes descending. Ties keep first-seen
// order so the result is deterministic for a given input.
func rank(byKey map[string]*models.EmployeeSummary, order []string) []models.EmployeeSummary {
	out := make([]models.EmployeeSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMinutes > out[j].TotalMinutes
	})
	return out
}
