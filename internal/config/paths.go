package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	EnrollmentDir string
	CleanDir      string
	SurveyDir     string
	ReportsDir    string
	LogsDir       string

	// Input files
	RegistryFile string

	// Report subdirectories, one per analysis
	DirectiveReportsDir string
	CohortReportsDir    string
	MatchReportsDir     string

	// Well-known report files
	DirectiveCSV    string
	DirectiveXLSX   string
	MatchDetailCSV  string
	MatchSummaryCSV string
	MatchXLSX       string
	CohortCSV       string
	CohortXLSX      string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory, so the tools behave the same no matter where
// they are invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return pathsFromBase(filepath.Dir(exe)), nil
}

// PathsFromBase builds the path set from an explicit base directory.
// Used by tests and by tools that accept a -data flag.
func PathsFromBase(baseDir string) *Paths {
	return pathsFromBase(baseDir)
}

func pathsFromBase(baseDir string) *Paths {
	// Directory structure:
	// <base>/
	//   ├── data/
	//   │   ├── posgrados/          (raw yearly enrollment exports)
	//   │   ├── posgrados_limpios/  (cleaned enrollment CSVs)
	//   │   ├── encuestas/          (alumni survey exports)
	//   │   └── registro_egresados.csv
	//   ├── output/                 (generated reports)
	//   └── logs/
	dataDir := filepath.Join(baseDir, DefaultDataDir)
	reportsDir := filepath.Join(baseDir, DefaultReportsDir)

	directiveReportsDir := filepath.Join(reportsDir, "cargos-directivos")
	cohortReportsDir := filepath.Join(reportsDir, "todos-egresados")
	matchReportsDir := filepath.Join(reportsDir, "egresados-posgrados")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		EnrollmentDir: filepath.Join(baseDir, DefaultEnrollmentDir),
		CleanDir:      filepath.Join(baseDir, DefaultCleanDir),
		SurveyDir:     filepath.Join(baseDir, DefaultSurveyDir),
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(baseDir, DefaultLogsDir),

		RegistryFile: filepath.Join(dataDir, DefaultRegistryFile),

		DirectiveReportsDir: directiveReportsDir,
		CohortReportsDir:    cohortReportsDir,
		MatchReportsDir:     matchReportsDir,

		DirectiveCSV:    filepath.Join(directiveReportsDir, "cargos_directivos_analisis.csv"),
		DirectiveXLSX:   filepath.Join(directiveReportsDir, "cargos_directivos_analisis.xlsx"),
		MatchDetailCSV:  filepath.Join(matchReportsDir, "estudiantes_posgrados_completo.csv"),
		MatchSummaryCSV: filepath.Join(matchReportsDir, "resumen_general_por_ano.csv"),
		MatchXLSX:       filepath.Join(matchReportsDir, "egresados_posgrados_por_ano.xlsx"),
		CohortCSV:       filepath.Join(cohortReportsDir, "todos_egresados_por_programa_ano.csv"),
		CohortXLSX:      filepath.Join(cohortReportsDir, "todos_egresados_por_programa_ano.xlsx"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	// Report subdirectories are created by their respective tools; this
	// only creates the base directories needed by all of them.
	directories := []string{
		p.DataDir,
		p.EnrollmentDir,
		p.CleanDir,
		p.SurveyDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetReportPath returns a path inside the reports directory.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
