package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/worklens/attendance-payroll/internal/aggregate"
	"github.com/worklens/attendance-payroll/internal/api"
	"github.com/worklens/attendance-payroll/internal/intake"
	"github.com/worklens/attendance-payroll/internal/payroll"
	"github.com/worklens/attendance-payroll/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	rateFlag := flag.Int("rate", 0, "Hourly wage rate (non-negative integer, in whole currency units)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with -summary.csv suffix)")
	detailFlag := flag.Bool("detail", false, "Include per-visit detail rows in the CSV")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	portFlag := flag.String("port", "", "HTTP port for --serve (overrides PORT from .env)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Attendance Punch to Payroll Converter

Converts attendance-punch exports from point-of-sale terminals into
per-employee worked-time and wage summaries.

Usage:
  attendance-payroll [flags] <export.csv> [export2.xlsx ...]
  attendance-payroll --serve [--port 8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Summarize a CSV export at 190/hour
  attendance-payroll --rate=190 punches.csv

  # Include each visit under its employee
  attendance-payroll --rate=190 --detail punches.csv

  # Workbook exports work the same way
  attendance-payroll --rate=150 --output=summary.csv punches.xlsx

  # Run the upload API
  attendance-payroll --serve --port 8080

Expected header fields:
  No., Name, Employee ID, Date, Clock In, Clock Out, Terminal
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("attendance-payroll v%s\n", version)
		os.Exit(0)
	}

	if *rateFlag < 0 {
		fatalf("rate must be non-negative, got %d\n", *rateFlag)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *serveFlag {
		serve(*portFlag, *rateFlag, logger)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	agg := aggregate.New(aggregate.WithLogger(logger))
	for _, inputPath := range flag.Args() {
		if err := processFile(agg, inputPath, *rateFlag, *outputFlag, *detailFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(agg *aggregate.Aggregator, inputPath string, rate int, outputPath string, detail bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	rows, err := intake.ReadFile(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("  Read %d punch row(s)\n", len(rows))

	report := agg.BuildReport(rows)

	fmt.Printf("  Found %d employee(s)\n", len(report.Summaries))
	if len(report.Skipped) > 0 {
		fmt.Printf("  Skipped %d unusable row(s), see log\n", len(report.Skipped))
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "-summary.csv"
	}

	w := &writer.CSVWriter{IncludeDetail: detail, Rate: rate}
	if err := w.WriteToFile(outPath, report); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)

	h, m := payroll.Hours(report.TotalMinutes)
	fmt.Printf("  Total worked: %dh %02dm\n", h, m)
	fmt.Printf("  Total payroll at %d/h: %d\n", rate, payroll.Total(report.Summaries, rate))
	fmt.Println("  Done.")
	return nil
}

func serve(port string, defaultRate int, logger *slog.Logger) {
	// .env is optional; flags and real env vars win over it.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env")
	}

	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	if defaultRate == 0 {
		if v := os.Getenv("DEFAULT_RATE"); v != "" {
			r, err := strconv.Atoi(v)
			if err != nil || r < 0 {
				fatalf("DEFAULT_RATE must be a non-negative integer, got %q\n", v)
			}
			defaultRate = r
		}
	}

	app := fiber.New(fiber.Config{
		AppName:   "attendance-payroll v" + version,
		BodyLimit: 32 << 20,
	})

	h := api.NewHandler(defaultRate, logger)
	h.RegisterRoutes(app)

	logger.Info("starting server", "port", port, "defaultRate", defaultRate)
	if err := app.Listen(":" + port); err != nil {
		fatalf("server error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
