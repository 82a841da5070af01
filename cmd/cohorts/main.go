// cohorts extracts one graduation event per completed program from the
// alumni survey exports and counts graduates per cohort year and program.
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
	surveyDir := flag.String("surveys", "", "survey export directory (defaults to data/encuestas)")
	firstYear := flag.Int("first-year", 0, "first graduation year to count (defaults to config)")
	lastYear := flag.Int("last-year", 0, "last graduation year to count (defaults to config)")
	flag.Parse()

	paths, err := resolvePaths(*dataDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *surveyDir == "" {
		*surveyDir = paths.SurveyDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("cohorts.log")
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
	logger.InfoContext(ctx, "Starting cohort analysis",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("survey_dir", *surveyDir),
		slog.Int("first_year", cfg.Analysis.FirstYear),
		slog.Int("last_year", cfg.Analysis.LastYear))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(*surveyDir, ""); err != nil {
		logger.ErrorContext(ctx, "Survey directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.CohortReportsDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := dataprocessing.NewSurveyLoader(logger)
	responses, err := loader.LoadDir(ctx, *surveyDir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load survey responses", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A person can answer the survey more than once; only the most
	// recent response counts, and within it each program×year once.
	deduped := loader.DedupResponses(responses)

	var entries []dataprocessing.CohortEntry
	var details []exporter.CohortDetail
	seen := make(map[string]bool)
	for _, response := range deduped {
		events := loader.ExtractGraduationEvents(response, cfg.Analysis.FirstYear, cfg.Analysis.LastYear)
		for _, event := range events {
			key := fmt.Sprintf("%s|%s|%d", response.Document, event.Program, event.GraduationYear)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, dataprocessing.CohortEntry{Response: response, Event: event})
			details = append(details, exporter.CohortDetail{
				Document: response.Document,
				FullName: response.FullName,
				Event:    event,
			})
		}
	}

	if len(entries) == 0 {
		logger.InfoContext(ctx, "No graduation events inside the analysis window")
		fmt.Println("No graduation events found in the analysis window")
		return
	}

	aggregator := dataprocessing.NewAggregator(logger)
	yearRows := aggregator.CohortsByYear(entries)
	yearProgramRows := aggregator.CohortsByYearProgram(entries)
	byYear := exporter.CohortYearTable(yearRows)
	byProgram := exporter.CohortProgramTable(aggregator.CohortsByProgram(entries))
	byYearProgram := exporter.CohortYearProgramTable(yearProgramRows)
	detailTable := exporter.GraduationEventTable(details)

	csvWriter := exporter.NewCSVWriter(paths)
	if err := csvWriter.WriteReport(paths.CohortCSV, byYearProgram.Headers, byYearProgram.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write cohort report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	yearCSV := filepath.Join(paths.CohortReportsDir, "todos_egresados_por_ano.csv")
	if err := csvWriter.WriteReport(yearCSV, byYear.Headers, byYear.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write yearly cohort report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// One workbook per cohort year alongside the combined one.
	excelWriter := exporter.NewExcelWriter(paths)
	for _, yearRow := range yearRows {
		var rows []domain.AggregateRow
		for _, row := range yearProgramRows {
			if row.Year == yearRow.Year {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		yearLabel := strconv.Itoa(yearRow.Year)
		table := exporter.CohortProgramTable(rows)
		yearXLSX := filepath.Join(paths.CohortReportsDir, "egresados_"+yearLabel+".xlsx")
		if err := excelWriter.WriteWorkbook(yearXLSX, []exporter.Sheet{table.Sheet("Año_" + yearLabel)}); err != nil {
			logger.ErrorContext(ctx, "Failed to write yearly cohort workbook",
				slog.String("year", yearLabel),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	err = excelWriter.WriteWorkbook(paths.CohortXLSX, []exporter.Sheet{
		byYear.Sheet("Por_Año"),
		byProgram.Sheet("Por_Programa"),
		byYearProgram.Sheet("Por_Año_Y_Programa"),
		detailTable.Sheet("Detalle"),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write cohort workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Cohort analysis completed",
		slog.Int("responses", len(responses)),
		slog.Int("graduation_events", len(entries)))
	fmt.Printf("Cohort analysis complete: %d graduation events from %d responses\n",
		len(entries), len(responses))
}

func resolvePaths(dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.PathsFromBase(dataDir), nil
	}
	return config.GetPaths()
}
