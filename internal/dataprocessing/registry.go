package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "alumcli/internal/errors"
	"alumcli/internal/files"
	"alumcli/pkg/contracts/domain"
)

// RegistryIndex is the in-memory index over the graduate registry: O(1)
// identifier lookup plus a normalized-name index for the fallback match.
// Built once per run from the normalized registry and never mutated after.
type RegistryIndex struct {
	byID   map[string]*registryEntry
	byName map[string][]string

	// DuplicateIDs counts registry rows whose identifier had already been
	// seen with an identical credential. Surfaced as a data-quality signal,
	// never silently resolved into extra matches.
	DuplicateIDs int
}

type registryEntry struct {
	record      domain.GraduateRecord
	credentials []domain.Credential
}

// Size returns the number of distinct identifiers in the index.
func (idx *RegistryIndex) Size() int {
	return len(idx.byID)
}

// LookupID returns the graduate record and credential list for a
// normalized identifier.
func (idx *RegistryIndex) LookupID(id string) (*domain.GraduateRecord, []domain.Credential, bool) {
	entry, ok := idx.byID[id]
	if !ok {
		return nil, nil, false
	}
	return &entry.record, entry.credentials, true
}

// LookupName returns the identifiers of all graduates sharing a normalized
// full name.
func (idx *RegistryIndex) LookupName(name string) []string {
	return idx.byName[name]
}

// RegistryLoader reads the institutional graduate registry export and
// builds the match index.
type RegistryLoader struct {
	logger     *slog.Logger
	normalizer *Normalizer
}

// NewRegistryLoader creates a registry loader.
func NewRegistryLoader(logger *slog.Logger) *RegistryLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistryLoader{
		logger:     logger,
		normalizer: NewNormalizer(),
	}
}

// Load reads the registry file (semicolon CSV or XLSX) and builds the
// index. The identifier column is located by header name; its absence is a
// fatal load error.
func (l *RegistryLoader) Load(ctx context.Context, path string) (*RegistryIndex, error) {
	rows, err := l.readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, apperrors.NewLoadError("registry file has no data rows", nil).
			WithContext("file", path)
	}

	cols, err := detectRegistryColumns(rows[0])
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loading graduate registry",
		slog.String("file", filepath.Base(path)),
		slog.Int("rows", len(rows)-1),
		slog.String("identifier_column", rows[0][cols.identifier]))

	idx := &RegistryIndex{
		byID:   make(map[string]*registryEntry),
		byName: make(map[string][]string),
	}

	for _, row := range rows[1:] {
		id := l.normalizer.Identifier(cell(row, cols.identifier))
		if id == "" || strings.EqualFold(id, "NAN") {
			continue
		}

		cred := domain.Credential{
			Title: l.normalizer.Text(cell(row, cols.title)),
			Year:  graduationYear(cell(row, cols.date)),
		}

		entry, seen := idx.byID[id]
		if !seen {
			record := domain.GraduateRecord{
				Identifier:     id,
				FullName:       l.normalizer.Text(cell(row, cols.name)),
				Program:        cred.Title,
				GraduationYear: cred.Year,
				Level:          ClassifyDegreeLevel(cred.Title),
				Campus:         strings.TrimSpace(cell(row, cols.campus)),
			}
			entry = &registryEntry{record: record}
			idx.byID[id] = entry
			if record.FullName != "" {
				idx.byName[record.FullName] = append(idx.byName[record.FullName], id)
			}
		}

		if cred.Title == "" || hasCredential(entry.credentials, cred) {
			if seen {
				idx.DuplicateIDs++
			}
			continue
		}
		entry.credentials = append(entry.credentials, cred)
	}

	multiTitle := 0
	for _, entry := range idx.byID {
		if len(entry.credentials) > 1 {
			multiTitle++
		}
	}

	l.logger.InfoContext(ctx, "graduate registry loaded",
		slog.Int("graduates", idx.Size()),
		slog.Int("multi_title", multiTitle),
		slog.Int("duplicate_rows", idx.DuplicateIDs))

	if idx.DuplicateIDs > 0 {
		l.logger.WarnContext(ctx, "registry contains duplicate identifier rows",
			slog.Int("duplicate_rows", idx.DuplicateIDs))
	}

	return idx, nil
}

// readRows loads the raw registry rows from CSV or Excel.
func (l *RegistryLoader) readRows(path string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, apperrors.NewLoadError("failed to open registry workbook", err).
				WithContext("file", path)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewLoadError("registry workbook has no sheets", nil).
				WithContext("file", path)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, apperrors.NewLoadError("failed to read registry sheet", err).
				WithContext("file", path)
		}
		return rows, nil
	}

	rows, err := files.ReadDelimited(path, ';')
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read registry file", err).
			WithContext("file", path)
	}
	return rows, nil
}

// registryColumns holds the detected column positions. Only the
// identifier column is mandatory; -1 marks an absent optional column.
type registryColumns struct {
	identifier int
	name       int
	title      int
	date       int
	campus     int
}

// detectRegistryColumns maps header names to positions. Registry exports
// vary in column naming across years, so detection is by substring on the
// upper-cased header.
func detectRegistryColumns(header []string) (registryColumns, error) {
	cols := registryColumns{identifier: -1, name: -1, title: -1, date: -1, campus: -1}

	for i, h := range header {
		hUpper := strings.ToUpper(strings.TrimSpace(h))
		switch {
		case cols.identifier == -1 &&
			(strings.Contains(hUpper, "IDENTIFICACI") || strings.Contains(hUpper, "CEDULA") || strings.Contains(hUpper, "DOCUMENTO")):
			cols.identifier = i
		case cols.name == -1 && strings.Contains(hUpper, "NOMBRE"):
			cols.name = i
		case cols.title == -1 &&
			(strings.Contains(hUpper, "TITULO") || strings.Contains(hUpper, "PROGRAMA") || strings.Contains(hUpper, "CARRERA")):
			cols.title = i
		case cols.date == -1 && strings.Contains(hUpper, "FECHA") && strings.Contains(hUpper, "GRADO"):
			cols.date = i
		case cols.campus == -1 && strings.Contains(hUpper, "SECCIONAL"):
			cols.campus = i
		}
	}

	if cols.identifier == -1 {
		return cols, apperrors.NewLoadError("identifier column not found in registry header", nil).
			WithContext("header", strings.Join(header, ";"))
	}
	return cols, nil
}

// graduationYear extracts the year from the grade date cell. Registry
// exports use DD/MM/YYYY or YYYY-MM-DD; 0 means unknown.
func graduationYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	var candidate string
	switch {
	case strings.Contains(s, "/"):
		parts := strings.Split(s, "/")
		candidate = parts[len(parts)-1]
	case strings.Contains(s, "-"):
		candidate = strings.Split(s, "-")[0]
	default:
		candidate = s
	}

	year, err := strconv.Atoi(strings.TrimSpace(candidate))
	if err != nil || year < 1900 || year > 2100 {
		return 0
	}
	return year
}

// cell returns row[i] or "" when the column is absent or the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// hasCredential reports whether an identical credential is already listed.
func hasCredential(creds []domain.Credential, c domain.Credential) bool {
	for _, existing := range creds {
		if existing == c {
			return true
		}
	}
	return false
}
