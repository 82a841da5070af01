package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"alumcli/internal/config"
	apperrors "alumcli/internal/errors"
	"alumcli/internal/files"
	"alumcli/pkg/contracts/domain"
)

// header cells that mark administrative rows inside the sectioned export
var administrativeCells = map[string]bool{
	"PENSUM":   true,
	"NIVEL":    true,
	"NOMBRE":   true,
	"FACULTAD": true,
	"PROGRAMA": true,
	"PERIODO":  true,
}

// EnrollmentParser reads the raw postgraduate enrollment exports. The raw
// files are not flat tables: faculty and program header lines open a
// section, followed by student rows, interleaved with resolution/pensum
// metadata and repeated column headers. The parser walks the rows once,
// tracking the current section, and emits one EnrollmentRecord per student
// row.
type EnrollmentParser struct {
	logger     *slog.Logger
	normalizer *Normalizer
}

// NewEnrollmentParser creates an enrollment parser.
func NewEnrollmentParser(logger *slog.Logger) *EnrollmentParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentParser{
		logger:     logger,
		normalizer: NewNormalizer(),
	}
}

// ParseRaw parses one yearly raw export into flat enrollment records.
// Records are deduplicated by identifier × program within the file.
func (p *EnrollmentParser) ParseRaw(ctx context.Context, path string, year int) ([]domain.EnrollmentRecord, error) {
	rows, err := files.ReadDelimited(path, ';')
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read enrollment file", err).
			WithContext("file", path)
	}

	var (
		records     []domain.EnrollmentRecord
		faculty     string
		programCode string
		programName string
		seen        = make(map[string]bool)
	)

	for _, row := range rows {
		first := strings.TrimSpace(cell(row, 0))
		second := strings.TrimSpace(cell(row, 1))

		// Section headers
		if first == "Facultad" {
			faculty = second
			continue
		}
		if first == "Programa" {
			programCode = ExtractProgramCode(second)
			programName = CleanProgramName(second)
			continue
		}

		// Some export revisions put the program line directly in a data
		// cell instead of behind a "Programa" label.
		if code, name, ok := inlineProgramHeader(first, second); ok {
			programCode = code
			programName = name
			continue
		}

		// Administrative noise: repeated column headers, pensum and
		// resolution lines.
		if first == "" || administrativeCells[strings.ToUpper(first)] {
			continue
		}
		if strings.Contains(strings.ToUpper(first), "RESOLUCION") ||
			strings.Contains(strings.ToUpper(first), "RESOLUCIÓN") {
			continue
		}

		// Student rows carry the name in the first cell.
		if !looksLikeStudentName(first) {
			continue
		}

		identifier, studentCode, group := scanStudentCells(row)
		if identifier == "" {
			continue
		}

		key := identifier + "_" + programCode
		if seen[key] {
			continue
		}
		seen[key] = true

		records = append(records, domain.EnrollmentRecord{
			Year:        year,
			Faculty:     faculty,
			ProgramCode: programCode,
			ProgramName: programName,
			StudentName: first,
			Identifier:  identifier,
			StudentCode: studentCode,
			Group:       group,
		})
	}

	p.logger.InfoContext(ctx, "parsed raw enrollment file",
		slog.String("file", filepath.Base(path)),
		slog.Int("year", year),
		slog.Int("students", len(records)))

	return records, nil
}

// LoadClean reads a flat cleaned enrollment CSV (the output of the
// cleanenroll tool) back into records.
func (p *EnrollmentParser) LoadClean(ctx context.Context, path string) ([]domain.EnrollmentRecord, error) {
	rows, err := files.ReadDelimited(path, ';')
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read clean enrollment file", err).
			WithContext("file", path)
	}
	if len(rows) < 1 {
		return nil, apperrors.NewLoadError("clean enrollment file is empty", nil).
			WithContext("file", path)
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"Año", "Cedula", "Codigo_Programa", "Nombre_Estudiante"} {
		if _, ok := col[required]; !ok {
			return nil, apperrors.NewLoadError(
				fmt.Sprintf("required column %q missing from clean enrollment file", required), nil).
				WithContext("file", path)
		}
	}

	var records []domain.EnrollmentRecord
	for _, row := range rows[1:] {
		year, _ := strconv.Atoi(strings.TrimSpace(cell(row, col["Año"])))
		if year == 0 {
			continue
		}
		records = append(records, domain.EnrollmentRecord{
			Year:        year,
			Faculty:     strings.TrimSpace(cell(row, col["Facultad"])),
			ProgramCode: strings.TrimSpace(cell(row, col["Codigo_Programa"])),
			ProgramName: strings.TrimSpace(cell(row, col["Nombre_Programa"])),
			StudentName: strings.TrimSpace(cell(row, col["Nombre_Estudiante"])),
			Identifier:  p.normalizer.Identifier(cell(row, col["Cedula"])),
			StudentCode: strings.TrimSpace(cell(row, col["Codigo_Estudiante"])),
			Group:       strings.TrimSpace(cell(row, col["Grupo"])),
		})
	}

	p.logger.InfoContext(ctx, "loaded clean enrollment file",
		slog.String("file", filepath.Base(path)),
		slog.Int("students", len(records)))

	return records, nil
}

// inlineProgramHeader detects program header lines embedded in data cells:
// a long cell starting with the 5-digit code and naming a postgraduate
// level. Pure resolution or pensum metadata lines never start with the
// code, so the leading-digits check filters them.
func inlineProgramHeader(first, second string) (code, name string, ok bool) {
	for _, candidate := range []string{first, second} {
		if len(candidate) < 20 || !isAllDigits(candidate[:5]) {
			continue
		}
		upper := strings.ToUpper(candidate)
		if !strings.Contains(upper, "ESPECIALIZACION") && !strings.Contains(upper, "MAESTRIA") &&
			!strings.Contains(upper, "MAESTRÍA") && !strings.Contains(upper, "DOCTORADO") &&
			!strings.Contains(upper, "ESPECIALIZACIÓN") {
			continue
		}
		return ExtractProgramCode(candidate), CleanProgramName(candidate), true
	}
	return "", "", false
}

// looksLikeStudentName filters out cells that cannot be a person's name:
// too short, no letters, or a known administrative label.
func looksLikeStudentName(s string) bool {
	if len(s) <= 5 {
		return false
	}
	if administrativeCells[strings.ToUpper(s)] {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// scanStudentCells extracts the identifier, student code and group from a
// student row. The identifier comes before the student code in the export,
// so the first plausible numeric cell is the cédula and the second the
// code; 1-3 digit cells are group numbers.
func scanStudentCells(row []string) (identifier, studentCode, group string) {
	for _, raw := range row {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		// Period markers ("20231") and program codes are 5 digits and fall
		// outside the identifier length bounds.
		if IsPlausibleIdentifier(value, config.MinIdentifierDigits, config.MaxIdentifierDigits) {
			if identifier == "" {
				identifier = value
			} else if studentCode == "" {
				studentCode = value
			}
			continue
		}

		if len(value) >= 1 && len(value) <= 3 && isAllDigits(value) {
			group = value
		}
	}
	return identifier, studentCode, group
}
