// programyear explodes the PROGRAMA(S) field of the directive-role report
// into graduation events and counts leadership-role alumni per program and
// cohort year.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"alumcli/internal/config"
	"alumcli/internal/dataprocessing"
	"alumcli/internal/exporter"
	"alumcli/internal/infrastructure"
	"alumcli/internal/validation"
	"alumcli/pkg/contracts/domain"
)

func main() {
	dataDir := flag.String("data", "", "base data directory (defaults to the executable directory)")
	input := flag.String("input", "", "directive-role report CSV (defaults to the directive tool output)")
	firstYear := flag.Int("first-year", 0, "first graduation year to count (defaults to config)")
	lastYear := flag.Int("last-year", 0, "last graduation year to count (defaults to config)")
	flag.Parse()

	paths, err := resolvePaths(*dataDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = paths.DirectiveCSV
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("programyear.log")
	}
	if *firstYear != 0 {
		cfg.Analysis.FirstYear = *firstYear
	}
	if *lastYear != 0 {
		cfg.Analysis.LastYear = *lastYear
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "Starting program/year analysis",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("input", *input),
		slog.Int("first_year", cfg.Analysis.FirstYear),
		slog.Int("last_year", cfg.Analysis.LastYear))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateFile(*input); err != nil {
		logger.ErrorContext(ctx, "Input validation failed", slog.String("error", err.Error()))
		fmt.Println("Directive report not found; run directive first")
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.DirectiveReportsDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := dataprocessing.NewSurveyLoader(logger)
	responses, err := loader.LoadFile(ctx, *input)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read directive report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	responses = loader.DedupResponses(responses)

	var entries []dataprocessing.CohortEntry
	seen := make(map[string]bool)
	for _, response := range responses {
		events := loader.ExtractGraduationEvents(response, cfg.Analysis.FirstYear, cfg.Analysis.LastYear)
		for _, event := range events {
			key := fmt.Sprintf("%s|%s|%d", response.Document, event.Program, event.GraduationYear)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, dataprocessing.CohortEntry{Response: response, Event: event})
		}
	}

	if len(entries) == 0 {
		logger.InfoContext(ctx, "No graduation events inside the analysis window")
		fmt.Println("No graduation events found in the analysis window")
		return
	}

	aggregator := dataprocessing.NewAggregator(logger)
	byYear := aggregator.CohortsByYear(entries)
	byProgram := aggregator.CohortsByProgram(entries)
	byYearProgram := aggregator.CohortsByYearProgram(entries)

	yearTable := exporter.CohortYearTable(byYear)
	programTable := exporter.CohortProgramTable(byProgram)
	yearProgramTable := exporter.CohortYearProgramTable(byYearProgram)

	csvWriter := exporter.NewCSVWriter(paths)
	csvPath := filepath.Join(paths.DirectiveReportsDir, "directivos_por_programa_ano.csv")
	if err := csvWriter.WriteReport(csvPath, yearProgramTable.Headers, yearProgramTable.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write program/year report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// One sheet and one CSV per cohort year plus the combined views.
	sheets := []exporter.Sheet{
		yearTable.Sheet("Por_Año"),
		programTable.Sheet("Por_Programa"),
		yearProgramTable.Sheet("Por_Año_Y_Programa"),
	}
	for _, yearRow := range byYear {
		var rows []domain.AggregateRow
		for _, row := range byYearProgram {
			if row.Year == yearRow.Year {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		yearLabel := strconv.Itoa(yearRow.Year)
		table := exporter.CohortProgramTable(rows)
		sheets = append(sheets, table.Sheet("Año_"+yearLabel))

		yearCSV := filepath.Join(paths.DirectiveReportsDir, "directivos_programas_"+yearLabel+".csv")
		if err := csvWriter.WriteReport(yearCSV, table.Headers, table.Records); err != nil {
			logger.ErrorContext(ctx, "Failed to write yearly program report",
				slog.String("year", yearLabel),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	excelWriter := exporter.NewExcelWriter(paths)
	xlsxPath := filepath.Join(paths.DirectiveReportsDir, "directivos_por_programa_ano.xlsx")
	if err := excelWriter.WriteWorkbook(xlsxPath, sheets); err != nil {
		logger.ErrorContext(ctx, "Failed to write program/year workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Program/year analysis completed",
		slog.Int("responses", len(responses)),
		slog.Int("graduation_events", len(entries)))
	fmt.Printf("Program/year analysis complete: %d graduation events from %d directive-role alumni\n",
		len(entries), len(responses))
}

func resolvePaths(dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.PathsFromBase(dataDir), nil
	}
	return config.GetPaths()
}
