package parser

import (
	"strings"

	"github.com/worklens/attendance-payroll/internal/models"
)

// KeyFunc resolves the identity key used to group punch rows into one
// employee's summary. It is injected into the aggregator so a deployment
// with reliable badge IDs can swap the policy without touching the fold.
type KeyFunc func(models.RawRow) string

// DefaultKey uses the employee identifier when present and falls back to the
// display name otherwise. Two people sharing a name with no identifier
// therefore collapse into one summary; that is an accepted limitation of the
// terminal export, not something this layer tries to repair.
func DefaultKey(row models.RawRow) string {
	if id := strings.TrimSpace(row.EmployeeID); id != "" {
		return id
	}
	return strings.TrimSpace(row.Name)
}
