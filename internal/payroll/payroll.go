// Package payroll derives wage figures from accumulated minutes and an
// hourly rate. All functions are pure; the rate is supplied by the caller
// on every call and always applies to current data, so changing it
// retroactively changes every displayed figure.
package payroll

import (
	"fmt"
	"math"

	"github.com/worklens/attendance-payroll/internal/models"
)

// Hours splits minutes into whole hours and remainder minutes for display.
// No rounding is involved.
func Hours(minutes int) (h, m int) {
	return minutes / 60, minutes % 60
}

// HoursLabel renders minutes as "Hh MMm", e.g. 540 -> "9h 00m".
func HoursLabel(minutes int) string {
	h, m := Hours(minutes)
	return fmt.Sprintf("%dh %02dm", h, m)
}

// Salary is the payout for minutes worked at rate per hour, rounded to the
// nearest whole currency unit with ties away from zero.
func Salary(minutes, rate int) int {
	return int(math.Round(float64(minutes) / 60.0 * float64(rate)))
}

// Total sums each employee's rounded salary. Rounding happens per employee
// before summing; pooling all minutes first and rounding once gives a
// different (wrong) figure.
func Total(summaries []models.EmployeeSummary, rate int) int {
	total := 0
	for _, s := range summaries {
		total += Salary(s.TotalMinutes, rate)
	}
	return total
}
