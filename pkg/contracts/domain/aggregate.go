package domain

// AggregateRow is one row of a program/year summary report: total records
// in the group, how many matched the graduate registry, and the matched
// percentage rounded to two decimals.
type AggregateRow struct {
	Year        int     `json:"year,omitempty"`
	ProgramCode string  `json:"program_code,omitempty"`
	ProgramName string  `json:"program_name,omitempty"`
	Total       int     `json:"total"`
	Matched     int     `json:"matched"`
	Unmatched   int     `json:"unmatched"`
	Percentage  float64 `json:"percentage"`
}

// KeywordCount is one row of the directive-role keyword distribution.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
