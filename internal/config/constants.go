package config

// Application constants shared by all analysis executables.
const (
	// Application Info
	AppName    = "Alumni Analysis Toolkit"
	AppVersion = "1.2.0"

	// Analysis window: enrollment and survey exports cover these cohorts.
	DefaultFirstYear = 2021
	DefaultLastYear  = 2025

	// Institutional 5-digit program code prefixes.
	ProgramCodePrefixSpecialization = "32"
	ProgramCodePrefixMasters        = "34"

	// File Paths (relative to executable)
	DefaultDataDir       = "data"
	DefaultLogsDir       = "logs"
	DefaultReportsDir    = "output"
	DefaultEnrollmentDir = "data/posgrados"
	DefaultCleanDir      = "data/posgrados_limpios"
	DefaultSurveyDir     = "data/encuestas"

	// Registry export default file name
	DefaultRegistryFile = "registro_egresados.csv"

	// Identifier bounds: national IDs and student codes are 6-12 digits;
	// anything shorter or longer in a numeric cell is something else
	// (period markers, group numbers, row counters).
	MinIdentifierDigits = 6
	MaxIdentifierDigits = 12
)

// DefaultDirectiveKeywords identify leadership job titles in survey
// responses. Matching is done on normalized (accent-stripped, upper-cased)
// text.
var DefaultDirectiveKeywords = []string{
	"GERENTE", "DIRECTOR", "JEFE", "COORDINADOR", "SUPERVISOR",
	"PRESIDENTE", "VICEPRESIDENTE", "SUBDIRECTOR", "SUBGERENTE",
	"JUEZ", "RECTOR", "JURIDICO", "LIDER", "ADMINISTRADOR",
	"EJECUTIVO", "MANAGER", "CHIEF",
}
