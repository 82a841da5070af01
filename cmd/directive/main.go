// directive scans the alumni survey exports for graduates holding
// leadership positions and writes the directive-roles report with its
// keyword distribution.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"alumcli/internal/config"
	"alumcli/internal/dataprocessing"
	"alumcli/internal/exporter"
	"alumcli/internal/infrastructure"
	"alumcli/internal/validation"
)

func main() {
	dataDir := flag.String("data", "", "base data directory (defaults to the executable directory)")
	surveyDir := flag.String("surveys", "", "survey export directory (defaults to data/encuestas)")
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
		cfg.Logging.FilePath = paths.GetLogPath("directive.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "Starting directive-role analysis",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("survey_dir", *surveyDir),
		slog.Int("keywords", len(cfg.Analysis.DirectiveKeywords)))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(*surveyDir, ""); err != nil {
		logger.ErrorContext(ctx, "Survey directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.DirectiveReportsDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := dataprocessing.NewSurveyLoader(logger)
	responses, err := loader.LoadDir(ctx, *surveyDir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load survey responses", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// One hit set per report row, so the keyword distribution always
	// agrees with the detail table.
	var entries []exporter.DirectiveEntry
	var keywordHits [][]string
	for _, response := range responses {
		hits, ok := loader.IsDirectiveRole(response.JobTitle, cfg.Analysis.DirectiveKeywords)
		if !ok {
			continue
		}
		entries = append(entries, exporter.DirectiveEntry{Response: response, Keywords: hits})
		keywordHits = append(keywordHits, hits)
	}

	aggregator := dataprocessing.NewAggregator(logger)
	keywordCounts := aggregator.CountKeywords(keywordHits)

	directiveTable := exporter.DirectiveTable(entries)
	keywordTable := exporter.KeywordTable(keywordCounts)

	csvWriter := exporter.NewCSVWriter(paths)
	if err := csvWriter.WriteReport(paths.DirectiveCSV, directiveTable.Headers, directiveTable.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write directive report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	excelWriter := exporter.NewExcelWriter(paths)
	err = excelWriter.WriteWorkbook(paths.DirectiveXLSX, []exporter.Sheet{
		directiveTable.Sheet("Cargos_Directivos"),
		keywordTable.Sheet("Palabras_Clave"),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write directive workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Directive-role analysis completed",
		slog.Int("responses", len(responses)),
		slog.Int("directive_roles", len(entries)))
	fmt.Printf("Directive analysis complete: %d of %d responses hold leadership roles\n",
		len(entries), len(responses))
}

func resolvePaths(dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.PathsFromBase(dataDir), nil
	}
	return config.GetPaths()
}
