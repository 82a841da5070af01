// gradmatch matches the postgraduate enrollment cohorts against the
// graduate registry and writes the per-student detail plus program/year
// summaries, as CSV and as a multi-sheet workbook.
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
	"alumcli/pkg/contracts/domain"
)

func main() {
	dataDir := flag.String("data", "", "base data directory (defaults to the executable directory)")
	registry := flag.String("registry", "", "graduate registry file (defaults to data/registro_egresados.csv)")
	priorDegree := flag.Bool("prior-degree", false, "count only graduates holding a prior degree from another program")
	flag.Parse()

	paths, err := resolvePaths(*dataDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *registry == "" {
		*registry = paths.RegistryFile
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("gradmatch.log")
	}
	if *priorDegree {
		cfg.Analysis.RequirePriorDegree = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "Starting graduate matching",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("registry", *registry),
		slog.Bool("require_prior_degree", cfg.Analysis.RequirePriorDegree),
		slog.Int("first_year", cfg.Analysis.FirstYear),
		slog.Int("last_year", cfg.Analysis.LastYear))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateRegistryFile(*registry); err != nil {
		logger.ErrorContext(ctx, "Registry validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.MatchReportsDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	index, err := dataprocessing.NewRegistryLoader(logger).Load(ctx, *registry)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load graduate registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	records, err := loadEnrollments(ctx, logger, paths, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load enrollment records", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.InfoContext(ctx, "No enrollment records to match")
		fmt.Println("No enrollment records found")
		return
	}

	matcher := dataprocessing.NewMatcher(logger, index, dataprocessing.MatcherConfig{
		RequirePriorDegree: cfg.Analysis.RequirePriorDegree,
	})
	matches, stats := matcher.MatchAll(ctx, records)

	aggregator := dataprocessing.NewAggregator(logger)
	byProgramYear := aggregator.ByProgramYear(ctx, matches)
	byYear := aggregator.ByYear(ctx, matches)

	csvWriter := exporter.NewCSVWriter(paths)
	detail := exporter.MatchDetailTable(matches)
	if err := csvWriter.WriteReport(paths.MatchDetailCSV, detail.Headers, detail.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write match detail", slog.String("error", err.Error()))
		os.Exit(1)
	}

	summary := exporter.YearTable(byYear)
	if err := csvWriter.WriteReport(paths.MatchSummaryCSV, summary.Headers, summary.Records); err != nil {
		logger.ErrorContext(ctx, "Failed to write year summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, yearRow := range byYear {
		var yearMatches []domain.MatchedRecord
		for _, match := range matches {
			if match.Enrollment.Year == yearRow.Year {
				yearMatches = append(yearMatches, match)
			}
		}
		yearDetail := exporter.MatchDetailTable(yearMatches)
		yearCSV := filepath.Join(paths.MatchReportsDir, fmt.Sprintf("estudiantes_posgrados_%d.csv", yearRow.Year))
		if err := csvWriter.WriteReport(yearCSV, yearDetail.Headers, yearDetail.Records); err != nil {
			logger.ErrorContext(ctx, "Failed to write yearly detail",
				slog.Int("year", yearRow.Year),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	programs := exporter.ProgramYearTable(byProgramYear)
	excelWriter := exporter.NewExcelWriter(paths)
	err = excelWriter.WriteWorkbook(paths.MatchXLSX, []exporter.Sheet{
		summary.Sheet("Resumen_General"),
		programs.Sheet("Por_Programa"),
		detail.Sheet("Detalle"),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write match workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Graduate matching completed",
		slog.Int("students", stats.Total),
		slog.Int("matched", stats.Matched()),
		slog.Int("ambiguous", stats.Ambiguous))
	fmt.Printf("Matching complete: %d students, %d graduates (%d exact, %d by name, %d ambiguous)\n",
		stats.Total, stats.Matched(), stats.Exact, stats.Name, stats.Ambiguous)
}

// loadEnrollments prefers the cleaned per-year CSVs and falls back to
// parsing the raw exports for years without a cleaned file.
func loadEnrollments(ctx context.Context, logger *slog.Logger, paths *config.Paths, cfg *config.Config) ([]domain.EnrollmentRecord, error) {
	discovery := files.NewDiscovery(paths.ExecutableDir)
	parser := dataprocessing.NewEnrollmentParser(logger)

	// A missing or empty clean directory just means nothing was cleaned yet.
	clean, err := discovery.FindEnrollmentFiles(paths.CleanDir, cfg.Analysis.FirstYear, cfg.Analysis.LastYear)
	if err != nil {
		clean = nil
	}
	cleanYears := make(map[int]bool)

	var records []domain.EnrollmentRecord
	for _, file := range clean {
		loaded, err := parser.LoadClean(ctx, file.Path)
		if err != nil {
			return nil, err
		}
		cleanYears[file.Year] = true
		records = append(records, loaded...)
	}

	raw, err := discovery.FindEnrollmentFiles(paths.EnrollmentDir, cfg.Analysis.FirstYear, cfg.Analysis.LastYear)
	if err != nil {
		if len(records) > 0 {
			return records, nil
		}
		return nil, err
	}
	for _, file := range raw {
		if cleanYears[file.Year] {
			continue
		}
		logger.InfoContext(ctx, "No cleaned file for year, parsing raw export",
			slog.Int("year", file.Year),
			slog.String("file", filepath.Base(file.Path)))
		loaded, err := parser.ParseRaw(ctx, file.Path, file.Year)
		if err != nil {
			return nil, err
		}
		records = append(records, loaded...)
	}

	return records, nil
}

func resolvePaths(dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.PathsFromBase(dataDir), nil
	}
	return config.GetPaths()
}
