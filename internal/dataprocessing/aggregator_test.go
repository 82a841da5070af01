package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumcli/pkg/contracts/domain"
)

func matchedRecord(year int, code, name string, confidence domain.MatchConfidence) domain.MatchedRecord {
	return domain.MatchedRecord{
		Enrollment: domain.EnrollmentRecord{
			Year:        year,
			ProgramCode: code,
			ProgramName: name,
		},
		Confidence: confidence,
	}
}

func TestAggregatorByProgramYear(t *testing.T) {
	agg := NewAggregator(testLogger())

	matches := []domain.MatchedRecord{
		matchedRecord(2021, "32101", "ESPECIALIZACION EN DERECHO ADMINISTRATIVO", domain.MatchExact),
		matchedRecord(2021, "32101", "ESPECIALIZACION EN DERECHO ADMINISTRATIVO", domain.MatchNone),
		matchedRecord(2021, "32101", "ESPECIALIZACION EN DERECHO ADMINISTRATIVO", domain.MatchAmbiguous),
		matchedRecord(2021, "34205", "MAESTRIA EN EDUCACION", domain.MatchName),
		matchedRecord(2022, "32101", "ESPECIALIZACION EN DERECHO ADMINISTRATIVO", domain.MatchExact),
	}

	rows := agg.ByProgramYear(context.Background(), matches)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, "32101", first.ProgramCode)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 1, first.Matched)
	assert.Equal(t, 2, first.Unmatched, "ambiguous counts as unmatched")
	assert.InDelta(t, 33.33, first.Percentage, 0.001)

	assert.Equal(t, "34205", rows[1].ProgramCode, "rows sorted by year then program code")
	assert.Equal(t, 2022, rows[2].Year)
	assert.InDelta(t, 100.0, rows[2].Percentage, 0.001)

	for _, row := range rows {
		assert.Equal(t, row.Total, row.Matched+row.Unmatched)
	}
}

func TestAggregatorByYear(t *testing.T) {
	agg := NewAggregator(testLogger())

	matches := []domain.MatchedRecord{
		matchedRecord(2022, "34205", "MAESTRIA EN EDUCACION", domain.MatchExact),
		matchedRecord(2021, "32101", "ESPECIALIZACION", domain.MatchNone),
		matchedRecord(2021, "34205", "MAESTRIA EN EDUCACION", domain.MatchName),
	}

	rows := agg.ByYear(context.Background(), matches)
	require.Len(t, rows, 2)
	assert.Equal(t, 2021, rows[0].Year)
	assert.Equal(t, 2, rows[0].Total)
	assert.InDelta(t, 50.0, rows[0].Percentage, 0.001)
	assert.Equal(t, 2022, rows[1].Year)
	assert.InDelta(t, 100.0, rows[1].Percentage, 0.001)
}

func TestAggregatorByProgramYearEmpty(t *testing.T) {
	agg := NewAggregator(testLogger())
	assert.Empty(t, agg.ByProgramYear(context.Background(), nil))
	assert.Empty(t, agg.ByYear(context.Background(), nil))
}

func cohortEntry(year int, program string) CohortEntry {
	return CohortEntry{
		Event: domain.GraduationEvent{Program: program, GraduationYear: year},
	}
}

func TestAggregatorCohortsByYear(t *testing.T) {
	agg := NewAggregator(testLogger())

	entries := []CohortEntry{
		cohortEntry(2022, "MAESTRIA EN EDUCACION"),
		cohortEntry(2021, "ESPECIALIZACION EN DERECHO PENAL"),
		cohortEntry(2021, "MAESTRIA EN EDUCACION"),
		cohortEntry(2023, "DOCTORADO EN DERECHO"),
	}

	rows := agg.CohortsByYear(entries)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{2021, 2022, 2023}, []int{rows[0].Year, rows[1].Year, rows[2].Year})
	assert.Equal(t, 2, rows[0].Total)
	assert.InDelta(t, 50.0, rows[0].Percentage, 0.001)

	sum := 0
	for _, row := range rows {
		sum += row.Total
	}
	assert.Equal(t, len(entries), sum)
}

func TestAggregatorCohortsByProgram(t *testing.T) {
	agg := NewAggregator(testLogger())

	entries := []CohortEntry{
		cohortEntry(2021, "MAESTRIA EN EDUCACION"),
		cohortEntry(2022, "MAESTRIA EN EDUCACION"),
		cohortEntry(2021, "ESPECIALIZACION EN DERECHO PENAL"),
	}

	rows := agg.CohortsByProgram(entries)
	require.Len(t, rows, 2)
	assert.Equal(t, "MAESTRIA EN EDUCACION", rows[0].ProgramName, "most numerous program first")
	assert.Equal(t, 2, rows[0].Total)
	assert.InDelta(t, 66.67, rows[0].Percentage, 0.001)
}

func TestAggregatorCohortsByYearProgram(t *testing.T) {
	agg := NewAggregator(testLogger())

	entries := []CohortEntry{
		cohortEntry(2022, "MAESTRIA EN EDUCACION"),
		cohortEntry(2021, "MAESTRIA EN EDUCACION"),
		cohortEntry(2021, "ESPECIALIZACION EN DERECHO PENAL"),
	}

	rows := agg.CohortsByYearProgram(entries)
	require.Len(t, rows, 3)
	assert.Equal(t, 2021, rows[0].Year)
	assert.Equal(t, "ESPECIALIZACION EN DERECHO PENAL", rows[0].ProgramName)
	assert.Equal(t, 2021, rows[1].Year)
	assert.Equal(t, "MAESTRIA EN EDUCACION", rows[1].ProgramName)
	assert.Equal(t, 2022, rows[2].Year)
}

func TestAggregatorCountKeywords(t *testing.T) {
	agg := NewAggregator(testLogger())

	matched := [][]string{
		{"DIRECTOR"},
		{"GERENTE", "DIRECTOR"},
		{"DIRECTOR"},
	}

	rows := agg.CountKeywords(matched)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.KeywordCount{Keyword: "DIRECTOR", Count: 3}, rows[0])
	assert.Equal(t, domain.KeywordCount{Keyword: "GERENTE", Count: 1}, rows[1])
}

func TestAggregatorCountKeywordsRepeatRespondent(t *testing.T) {
	agg := NewAggregator(testLogger())

	// The same person answering twice with different titles contributes
	// one row per response, so neither hit shadows the other.
	rows := agg.CountKeywords([][]string{
		{"DIRECTOR"},
		{"GERENTE"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, domain.KeywordCount{Keyword: "DIRECTOR", Count: 1}, rows[0])
	assert.Equal(t, domain.KeywordCount{Keyword: "GERENTE", Count: 1}, rows[1])
}

func TestPercentageRounding(t *testing.T) {
	assert.InDelta(t, 33.33, percentage(1, 3), 0.001)
	assert.InDelta(t, 66.67, percentage(2, 3), 0.001)
	assert.InDelta(t, 0.0, percentage(0, 0), 0.001)
	assert.InDelta(t, 100.0, percentage(5, 5), 0.001)
}
