package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/worklens/attendance-payroll/internal/aggregate"
	"github.com/worklens/attendance-payroll/internal/intake"
	"github.com/worklens/attendance-payroll/internal/models"
	"github.com/worklens/attendance-payroll/internal/payroll"
	"github.com/worklens/attendance-payroll/internal/writer"
)

// Version reported by the health endpoint and report responses.
const Version = "1.0.0"

// EmployeeView is one employee summary decorated with wage figures at the
// requested rate. Minutes and visits come straight from the report; salary
// and the hours label are derived per request because the rate can change
// between requests over the same data.
type EmployeeView struct {
	models.EmployeeSummary
	Hours  string `json:"hours"`
	Salary int    `json:"salary"`
}

// ReportResponse is the JSON response from the /api/report endpoint.
type ReportResponse struct {
	Success      bool                `json:"success"`
	Error        string              `json:"error,omitempty"`
	ReportID     string              `json:"reportId,omitempty"`
	Rate         int                 `json:"rate"`
	Employees    []EmployeeView      `json:"employees"`
	Skipped      []models.SkippedRow `json:"skipped,omitempty"`
	Count        int                 `json:"count"`
	TotalMinutes int                 `json:"totalMinutes"`
	TotalPayroll int                 `json:"totalPayroll"`
	CSV          string              `json:"csv,omitempty"`
	Version      string              `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	DefaultRate int
	Log         *slog.Logger

	mu     sync.Mutex
	engine *aggregate.Engine
}

// NewHandler returns a Handler with a memoizing aggregation engine, so
// re-submitting an unchanged export (typically after a rate change) reuses
// the previous report instead of rebuilding it.
func NewHandler(defaultRate int, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		DefaultRate: defaultRate,
		Log:         log,
		engine:      aggregate.NewEngine(aggregate.New(aggregate.WithLogger(log))),
	}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/report", h.HandleReport)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleReport accepts a multipart attendance export (form field "file",
// .csv or .xlsx) plus an optional integer form field "rate" and responds
// with the ranked per-employee report.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	rate := h.DefaultRate
	if v := c.FormValue("rate"); v != "" {
		rate, err = strconv.Atoi(v)
		if err != nil || rate < 0 {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("rate must be a non-negative integer, got %q", v))
		}
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	rows, err := intake.Read(f, fh.Filename)
	if err != nil {
		var batch *intake.BatchError
		if errors.As(err, &batch) {
			return writeError(c, fiber.StatusUnprocessableEntity, batch.Error())
		}
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to decode upload: %v", err))
	}

	h.mu.Lock()
	report := h.engine.Report(rows)
	h.mu.Unlock()

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{Rate: rate}
	if err := w.Write(&csvBuf, report); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	// Never nil: nil marshals to JSON null, not [].
	employees := make([]EmployeeView, 0, len(report.Summaries))
	for _, s := range report.Summaries {
		employees = append(employees, EmployeeView{
			EmployeeSummary: s,
			Hours:           payroll.HoursLabel(s.TotalMinutes),
			Salary:          payroll.Salary(s.TotalMinutes, rate),
		})
	}

	return c.JSON(ReportResponse{
		Success:      true,
		ReportID:     uuid.NewString(),
		Rate:         rate,
		Employees:    employees,
		Skipped:      report.Skipped,
		Count:        len(employees),
		TotalMinutes: report.TotalMinutes,
		TotalPayroll: payroll.Total(report.Summaries, rate),
		CSV:          csvBuf.String(),
		Version:      Version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ReportResponse{
		Success:   false,
		Error:     msg,
		Employees: []EmployeeView{},
	})
}
