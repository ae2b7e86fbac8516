package models

// RawRow represents a single punch event as exported by the terminal.
// All fields are kept as display text; only the clock times are ever
// interpreted, and that happens in the parser, not here.
type RawRow struct {
	Seq        string `json:"seq"`        // sequence label, diagnostics only
	Name       string `json:"name"`       // employee display name
	EmployeeID string `json:"employeeId"` // optional stable identifier
	Date       string `json:"date"`       // punch date, free-form display text
	ClockIn    string `json:"clockIn"`    // HH:MM 24-hour text
	ClockOut   string `json:"clockOut"`   // HH:MM 24-hour text
	Terminal   string `json:"terminal"`   // display only, unused in computation
}

// Visit is one parsed, duration-bearing occurrence derived from one punch row.
// Immutable after aggregation; owned by exactly one EmployeeSummary.
type Visit struct {
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

// EmployeeSummary accumulates all visits grouped under one identity key.
// TotalMinutes is derived: it always equals the sum of Visits' minutes.
type EmployeeSummary struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"` // captured from the first row seen for Key
	TotalMinutes int     `json:"totalMinutes"`
	Visits       []Visit `json:"visits"`
}

// SkippedRow records a punch row the parser rejected, for the diagnostics
// manifest. The row is excluded from all aggregates but never aborts the batch.
type SkippedRow struct {
	Seq    string `json:"seq"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Report is the full derived structure rebuilt from one raw-row batch.
// It is a value: no mutation operations, no live session state.
type Report struct {
	Summaries    []EmployeeSummary `json:"summaries"` // ranked by total minutes, descending
	Skipped      []SkippedRow      `json:"skipped,omitempty"`
	TotalMinutes int               `json:"totalMinutes"`
}
