package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/worklens/attendance-payroll/internal/models"
)

// minutesPerDay is the overnight correction applied when a shift ends on the
// day after it started. At most one midnight crossing is assumed; the
// terminals never record a single shift of 24 hours or more.
const minutesPerDay = 24 * 60

// Clock times arrive as 24-hour HH:MM text, e.g. "09:00", "22:30".
// A leading zero on the hour is optional ("9:00" is accepted), minutes are
// always two digits.
var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseClock converts HH:MM text into minutes since midnight.
// There is no date component; the reference day is implicit and discarded.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("not a valid HH:MM time: %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, nil
}

// RowError describes why a single punch row was rejected. It identifies the
// row by its sequence label so the skip can be traced back to the export.
type RowError struct {
	Seq    string
	Name   string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %s: %s", e.Seq, e.Reason)
}

// Result is the outcome of parsing one raw row: either a Visit or a RowError,
// never both. Failures are values so the aggregation fold can collect them
// into a manifest instead of stopping.
type Result struct {
	Visit models.Visit
	Err   *RowError
}

// OK reports whether the row parsed successfully.
func (r Result) OK() bool { return r.Err == nil }

// ParseRow validates one raw row's clock times and produces its Visit.
//
// Duration is end minus start treated as same-day instants. A negative
// result means the shift crossed midnight and gets 24 hours added back.
// Identical start and end yields zero minutes, not a full day.
func ParseRow(row models.RawRow) Result {
	start, err := ParseClock(row.ClockIn)
	if err != nil {
		return Result{Err: &RowError{Seq: row.Seq, Name: row.Name, Reason: "bad clock-in: " + err.Error()}}
	}
	end, err := ParseClock(row.ClockOut)
	if err != nil {
		return Result{Err: &RowError{Seq: row.Seq, Name: row.Name, Reason: "bad clock-out: " + err.Error()}}
	}

	minutes := end - start
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return Result{Visit: models.Visit{
		Date:    row.Date,
		Start:   row.ClockIn,
		End:     row.ClockOut,
		Minutes: minutes,
	}}
}
