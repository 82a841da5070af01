package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "alumcli/internal/errors"
	"alumcli/internal/files"
	"alumcli/pkg/contracts/domain"
)

// graduationDateRe matches the "( YYYY-MM-DD )" suffix that closes each
// program segment in the PROGRAMA(S) field.
var graduationDateRe = regexp.MustCompile(`\(\s*(\d{4})-(\d{2})-(\d{2})\s*\)`)

// parentheticalRe captures any parenthesized group inside a segment.
var parentheticalRe = regexp.MustCompile(`\(([^()]*)\)`)

// surveyDateLayouts are the date formats seen in FECHA ENCUESTA cells.
var surveyDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2/01/2006",
	"02/01/2006",
	"2/1/2006",
}

// SurveyLoader reads alumni employment survey exports. Exports arrive as
// semicolon CSV or as Excel workbooks, with a preamble of filter rows
// before the real header, so the loader scans for the header row instead
// of assuming it comes first.
type SurveyLoader struct {
	logger     *slog.Logger
	normalizer *Normalizer
}

// NewSurveyLoader creates a survey loader.
func NewSurveyLoader(logger *slog.Logger) *SurveyLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurveyLoader{
		logger:     logger,
		normalizer: NewNormalizer(),
	}
}

// LoadDir loads every survey export found in dir, CSV and Excel alike,
// concatenating the responses in file-name order.
func (l *SurveyLoader) LoadDir(ctx context.Context, dir string) ([]domain.SurveyResponse, error) {
	discovery := files.NewDiscovery(dir)

	csvFiles, err := discovery.FindCSVFiles(".")
	if err != nil {
		return nil, apperrors.NewLoadError("failed to scan survey directory", err).
			WithContext("dir", dir)
	}
	excelFiles, err := discovery.FindExcelFiles(".")
	if err != nil {
		return nil, apperrors.NewLoadError("failed to scan survey directory", err).
			WithContext("dir", dir)
	}

	found := append(csvFiles, excelFiles...)
	if len(found) == 0 {
		return nil, apperrors.NewNotFoundError("survey files").
			WithContext("dir", dir)
	}

	var responses []domain.SurveyResponse
	for _, file := range found {
		loaded, err := l.LoadFile(ctx, file.Path)
		if err != nil {
			return nil, err
		}
		responses = append(responses, loaded...)
	}

	l.logger.InfoContext(ctx, "loaded survey responses",
		slog.Int("files", len(found)),
		slog.Int("responses", len(responses)))

	return responses, nil
}

// LoadFile loads a single survey export.
func (l *SurveyLoader) LoadFile(ctx context.Context, path string) ([]domain.SurveyResponse, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		rows, err = l.readExcelRows(path)
	default:
		rows, err = files.ReadDelimited(path, ';')
	}
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read survey file", err).
			WithContext("file", path)
	}

	headerIdx, cols := l.findHeader(rows)
	if headerIdx < 0 {
		return nil, apperrors.NewParsingError("survey header row not found", nil).
			WithContext("file", path)
	}

	base := filepath.Base(path)
	var responses []domain.SurveyResponse
	for _, row := range rows[headerIdx+1:] {
		document := strings.TrimSpace(cell(row, cols.document))
		name := strings.TrimSpace(cell(row, cols.name))
		if document == "" && name == "" {
			continue
		}

		responses = append(responses, domain.SurveyResponse{
			SourceFile: base,
			Document:   l.normalizer.Identifier(document),
			FullName:   name,
			Programs:   strings.TrimSpace(cell(row, cols.programs)),
			Occupation: strings.TrimSpace(cell(row, cols.occupation)),
			JobTitle:   strings.TrimSpace(cell(row, cols.jobTitle)),
			Company:    strings.TrimSpace(cell(row, cols.company)),
			SurveyDate: parseSurveyDate(cell(row, cols.surveyDate)),
		})
	}

	l.logger.InfoContext(ctx, "parsed survey file",
		slog.String("file", base),
		slog.Int("responses", len(responses)))

	return responses, nil
}

// DedupResponses keeps one response per person, preferring the most
// recent survey date. Identity is the normalized document, falling back
// to the normalized full name when the document is missing; responses
// with neither are kept as-is.
func (l *SurveyLoader) DedupResponses(responses []domain.SurveyResponse) []domain.SurveyResponse {
	seen := make(map[string]int)
	out := make([]domain.SurveyResponse, 0, len(responses))

	for _, response := range responses {
		key := response.Document
		if key == "" {
			key = l.normalizer.Text(response.FullName)
		}
		if key == "" {
			out = append(out, response)
			continue
		}

		idx, ok := seen[key]
		if !ok {
			seen[key] = len(out)
			out = append(out, response)
			continue
		}
		if response.SurveyDate.After(out[idx].SurveyDate) {
			out[idx] = response
		}
	}
	return out
}

// surveyColumns holds the detected column indexes; -1 marks a column the
// export does not carry.
type surveyColumns struct {
	document   int
	name       int
	programs   int
	occupation int
	jobTitle   int
	company    int
	surveyDate int
}

// findHeader scans for the first row naming both the document and name
// columns and resolves the remaining columns from it.
func (l *SurveyLoader) findHeader(rows [][]string) (int, surveyColumns) {
	for i, row := range rows {
		cols := surveyColumns{
			document: -1, name: -1, programs: -1,
			occupation: -1, jobTitle: -1, company: -1, surveyDate: -1,
		}
		for j, raw := range row {
			header := l.normalizer.Text(raw)
			switch {
			case strings.Contains(header, "DOCUMENTO") && cols.document < 0:
				cols.document = j
			case strings.Contains(header, "NOMBRE") && cols.name < 0:
				cols.name = j
			case strings.Contains(header, "PROGRAMA") && cols.programs < 0:
				cols.programs = j
			// Raw exports say "CARGO QUE DESEMPEÑA"; the directive report
			// re-read by programyear says just "Cargo".
			case (strings.Contains(header, "DESEMPE") || header == "CARGO") && cols.jobTitle < 0:
				cols.jobTitle = j
			case strings.Contains(header, "OCUPACION") && cols.occupation < 0:
				cols.occupation = j
			case strings.Contains(header, "EMPRESA") && cols.company < 0:
				cols.company = j
			case strings.Contains(header, "FECHA") && strings.Contains(header, "ENCUESTA") && cols.surveyDate < 0:
				cols.surveyDate = j
			}
		}
		if cols.document >= 0 && cols.name >= 0 {
			return i, cols
		}
	}
	return -1, surveyColumns{}
}

func (l *SurveyLoader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil)
	}
	return f.GetRows(sheets[0])
}

// ExtractGraduationEvents parses the PROGRAMA(S) field of a response into
// one event per program completion. Segments look like
// "TITLE( CAMPUS )( YYYY-MM-DD )" joined by " - "; the closing date
// delimits each segment, which keeps titles containing " - " intact.
// Events outside [firstYear, lastYear] are dropped.
func (l *SurveyLoader) ExtractGraduationEvents(response domain.SurveyResponse, firstYear, lastYear int) []domain.GraduationEvent {
	programs := response.Programs
	matches := graduationDateRe.FindAllStringSubmatchIndex(programs, -1)
	if len(matches) == 0 {
		return nil
	}

	var events []domain.GraduationEvent
	start := 0
	for _, m := range matches {
		segment := programs[start:m[1]]
		start = m[1]

		year, _ := strconv.Atoi(programs[m[2]:m[3]])
		if year < firstYear || year > lastYear {
			continue
		}

		title, campus := splitSegment(segment)
		if title == "" {
			continue
		}

		events = append(events, domain.GraduationEvent{
			Program:        title,
			Campus:         campus,
			Level:          ClassifyDegreeLevel(title),
			GraduationYear: year,
			GraduationDate: programs[m[2]:m[3]] + "-" + programs[m[4]:m[5]] + "-" + programs[m[6]:m[7]],
		})
	}
	return events
}

// IsDirectiveRole reports whether a job title names a leadership position,
// returning the keywords it matched. Comparison runs on normalized text so
// "Súbdirector" and "SUBDIRECTOR" both count.
func (l *SurveyLoader) IsDirectiveRole(jobTitle string, keywords []string) ([]string, bool) {
	title := l.normalizer.Text(jobTitle)
	if title == "" {
		return nil, false
	}

	var hits []string
	for _, keyword := range keywords {
		if strings.Contains(title, keyword) {
			hits = append(hits, keyword)
		}
	}
	return hits, len(hits) > 0
}

// splitSegment separates a program segment into its title and campus. The
// title is everything before the first parenthesis; the campus is the
// first parenthesized group that is not a graduation date.
func splitSegment(segment string) (title, campus string) {
	segment = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(segment), "-"))

	if idx := strings.Index(segment, "("); idx >= 0 {
		title = strings.TrimSpace(segment[:idx])
	} else {
		title = segment
	}

	for _, group := range parentheticalRe.FindAllStringSubmatch(segment, -1) {
		inner := strings.TrimSpace(group[1])
		if graduationDateRe.MatchString(group[0]) {
			continue
		}
		if inner != "" {
			campus = inner
			break
		}
	}
	return title, campus
}

func parseSurveyDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range surveyDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
