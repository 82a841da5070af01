// cleanenroll turns the raw yearly postgraduate enrollment exports into
// flat cleaned CSVs, one "<year>-Posgrados-limpio.csv" per input file plus
// a consolidated file covering every year.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"alumcli/internal/config"
	"alumcli/internal/dataprocessing"
	"alumcli/internal/exporter"
	"alumcli/internal/files"
	"alumcli/internal/infrastructure"
	"alumcli/internal/validation"
)

func main() {
	dataDir := flag.String("data", "", "base data directory (defaults to the executable directory)")
	firstYear := flag.Int("first-year", 0, "first enrollment year to process (defaults to config)")
	lastYear := flag.Int("last-year", 0, "last enrollment year to process (defaults to config)")
	flag.Parse()

	paths, err := resolvePaths(*dataDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("cleanenroll.log")
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
	logger.InfoContext(ctx, "Starting enrollment cleaning",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("input_dir", paths.EnrollmentDir),
		slog.String("output_dir", paths.CleanDir),
		slog.Int("first_year", cfg.Analysis.FirstYear),
		slog.Int("last_year", cfg.Analysis.LastYear))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.EnrollmentDir, "*-Posgrados.csv"); err != nil {
		logger.ErrorContext(ctx, "Input directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.CleanDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	discovery := files.NewDiscovery(paths.ExecutableDir)
	yearly, err := discovery.FindEnrollmentFiles(paths.EnrollmentDir, cfg.Analysis.FirstYear, cfg.Analysis.LastYear)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to scan enrollment directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(yearly) == 0 {
		logger.InfoContext(ctx, "No enrollment files to process")
		fmt.Println("No enrollment files found")
		return
	}

	parser := dataprocessing.NewEnrollmentParser(logger)
	csvWriter := exporter.NewCSVWriter(paths)

	// All years also stream into one consolidated file.
	consolidatedPath := filepath.Join(paths.CleanDir, "Posgrados-limpio-consolidado.csv")
	consolidated, err := csvWriter.CreateStreamWriter(consolidatedPath, exporter.CleanEnrollmentTable(nil).Headers)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create consolidated file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	totalStudents := 0
	for _, file := range yearly {
		records, err := parser.ParseRaw(ctx, file.Path, file.Year)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to parse enrollment file",
				slog.String("file", filepath.Base(file.Path)),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		table := exporter.CleanEnrollmentTable(records)
		outPath := filepath.Join(paths.CleanDir, fmt.Sprintf("%d-Posgrados-limpio.csv", file.Year))
		if err := csvWriter.WriteReport(outPath, table.Headers, table.Records); err != nil {
			logger.ErrorContext(ctx, "Failed to write cleaned file",
				slog.String("file", outPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		for _, record := range table.Records {
			if err := consolidated.WriteRecord(record); err != nil {
				logger.ErrorContext(ctx, "Failed to write consolidated file", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		totalStudents += len(records)
		fmt.Printf("Cleaned %d: %d students\n", file.Year, len(records))
	}

	if err := consolidated.Close(); err != nil {
		logger.ErrorContext(ctx, "Failed to close consolidated file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Enrollment cleaning completed",
		slog.Int("files", len(yearly)),
		slog.Int("students", totalStudents))
	fmt.Printf("Cleaning complete: %d files, %d students\n", len(yearly), totalStudents)
}

func resolvePaths(dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.PathsFromBase(dataDir), nil
	}
	return config.GetPaths()
}
