package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"alumcli/pkg/contracts/domain"
)

// Aggregator groups match results and cohort entries into report rows.
// Grouping is deterministic: rows come out sorted by year and program
// code, and percentages are rounded to two decimals.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// ByProgramYear groups matched records by enrollment year × program code
// and computes per-group totals, matched counts and percentages. Records
// with ambiguous or no match count as unmatched, so Total = Matched +
// Unmatched in every row.
func (a *Aggregator) ByProgramYear(ctx context.Context, matches []domain.MatchedRecord) []domain.AggregateRow {
	type groupKey struct {
		Year int
		Code string
	}

	groups := make(map[groupKey]*domain.AggregateRow)
	var order []groupKey

	for _, m := range matches {
		k := groupKey{Year: m.Enrollment.Year, Code: m.Enrollment.ProgramCode}
		row, ok := groups[k]
		if !ok {
			row = &domain.AggregateRow{
				Year:        k.Year,
				ProgramCode: k.Code,
				ProgramName: m.Enrollment.ProgramName,
			}
			groups[k] = row
			order = append(order, k)
		}
		row.Total++
		if m.Confidence.IsMatched() {
			row.Matched++
		} else {
			row.Unmatched++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Year != order[j].Year {
			return order[i].Year < order[j].Year
		}
		return order[i].Code < order[j].Code
	})

	rows := make([]domain.AggregateRow, 0, len(order))
	for _, k := range order {
		row := groups[k]
		row.Percentage = percentage(row.Matched, row.Total)
		rows = append(rows, *row)
	}

	a.logger.DebugContext(ctx, "aggregated matches by program and year",
		slog.Int("groups", len(rows)))

	return rows
}

// ByYear groups matched records by enrollment year only.
func (a *Aggregator) ByYear(ctx context.Context, matches []domain.MatchedRecord) []domain.AggregateRow {
	groups := make(map[int]*domain.AggregateRow)
	var years []int

	for _, m := range matches {
		row, ok := groups[m.Enrollment.Year]
		if !ok {
			row = &domain.AggregateRow{Year: m.Enrollment.Year}
			groups[m.Enrollment.Year] = row
			years = append(years, m.Enrollment.Year)
		}
		row.Total++
		if m.Confidence.IsMatched() {
			row.Matched++
		} else {
			row.Unmatched++
		}
	}

	sort.Ints(years)

	rows := make([]domain.AggregateRow, 0, len(years))
	for _, year := range years {
		row := groups[year]
		row.Percentage = percentage(row.Matched, row.Total)
		rows = append(rows, *row)
	}
	return rows
}

// CohortEntry ties one survey response to one of its graduation events.
type CohortEntry struct {
	Response domain.SurveyResponse
	Event    domain.GraduationEvent
}

// CohortsByYear counts cohort entries per graduation year. Percentage is
// the share of the overall entry count.
func (a *Aggregator) CohortsByYear(entries []CohortEntry) []domain.AggregateRow {
	groups := make(map[int]int)
	var years []int

	for _, e := range entries {
		if _, ok := groups[e.Event.GraduationYear]; !ok {
			years = append(years, e.Event.GraduationYear)
		}
		groups[e.Event.GraduationYear]++
	}
	sort.Ints(years)

	rows := make([]domain.AggregateRow, 0, len(years))
	for _, year := range years {
		rows = append(rows, domain.AggregateRow{
			Year:       year,
			Total:      groups[year],
			Percentage: percentage(groups[year], len(entries)),
		})
	}
	return rows
}

// CohortsByProgram counts cohort entries per program, most numerous first.
func (a *Aggregator) CohortsByProgram(entries []CohortEntry) []domain.AggregateRow {
	groups := make(map[string]int)
	var programs []string

	for _, e := range entries {
		if _, ok := groups[e.Event.Program]; !ok {
			programs = append(programs, e.Event.Program)
		}
		groups[e.Event.Program]++
	}

	sort.Slice(programs, func(i, j int) bool {
		if groups[programs[i]] != groups[programs[j]] {
			return groups[programs[i]] > groups[programs[j]]
		}
		return programs[i] < programs[j]
	})

	rows := make([]domain.AggregateRow, 0, len(programs))
	for _, program := range programs {
		rows = append(rows, domain.AggregateRow{
			ProgramName: program,
			Total:       groups[program],
			Percentage:  percentage(groups[program], len(entries)),
		})
	}
	return rows
}

// CohortsByYearProgram counts cohort entries per year × program, sorted by
// year then program name.
func (a *Aggregator) CohortsByYearProgram(entries []CohortEntry) []domain.AggregateRow {
	type groupKey struct {
		Year    int
		Program string
	}

	groups := make(map[groupKey]int)
	var order []groupKey

	for _, e := range entries {
		k := groupKey{Year: e.Event.GraduationYear, Program: e.Event.Program}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k]++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Year != order[j].Year {
			return order[i].Year < order[j].Year
		}
		return order[i].Program < order[j].Program
	})

	rows := make([]domain.AggregateRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, domain.AggregateRow{
			Year:        k.Year,
			ProgramName: k.Program,
			Total:       groups[k],
			Percentage:  percentage(groups[k], len(entries)),
		})
	}
	return rows
}

// CountKeywords counts how many directive-role rows matched each keyword.
// Every row counts, repeat respondents included; a row naming several
// keywords counts once per keyword.
func (a *Aggregator) CountKeywords(matched [][]string) []domain.KeywordCount {
	counts := make(map[string]int)
	var keywords []string

	for _, hits := range matched {
		for _, keyword := range hits {
			if _, ok := counts[keyword]; !ok {
				keywords = append(keywords, keyword)
			}
			counts[keyword]++
		}
	}

	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	rows := make([]domain.KeywordCount, 0, len(keywords))
	for _, keyword := range keywords {
		rows = append(rows, domain.KeywordCount{Keyword: keyword, Count: counts[keyword]})
	}
	return rows
}

// percentage returns matched/total as a percentage rounded to 2 decimals.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
