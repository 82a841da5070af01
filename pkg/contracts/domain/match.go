package domain

// MatchConfidence classifies how an enrollment record was associated with
// the graduate registry.
type MatchConfidence string

const (
	// MatchExact means the normalized identifier was found in the registry.
	MatchExact MatchConfidence = "exact"
	// MatchName means the identifier missed but exactly one registry entry
	// shares the normalized full name.
	MatchName MatchConfidence = "name"
	// MatchAmbiguous means several registry entries share the normalized
	// name; the record is treated as unmatched rather than guessed.
	MatchAmbiguous MatchConfidence = "ambiguous"
	// MatchNone means no registry entry matched by identifier or name.
	MatchNone MatchConfidence = "none"
)

// IsMatched reports whether the confidence counts as a positive match.
func (c MatchConfidence) IsMatched() bool {
	return c == MatchExact || c == MatchName
}

// MatchedRecord pairs one enrollment record with at most one graduate
// registry entry. Graduate is nil unless Confidence is exact or name.
// PriorDegrees lists the matched graduate's credentials that qualified the
// match when prior-degree filtering is active.
type MatchedRecord struct {
	Enrollment   EnrollmentRecord `json:"enrollment"`
	Graduate     *GraduateRecord  `json:"graduate,omitempty"`
	Confidence   MatchConfidence  `json:"confidence"`
	PriorDegrees []Credential     `json:"prior_degrees,omitempty"`
}

// MatchStats partitions a batch of match results. Exact+Name+Ambiguous+None
// always equals Total.
type MatchStats struct {
	Total     int `json:"total"`
	Exact     int `json:"exact"`
	Name      int `json:"name"`
	Ambiguous int `json:"ambiguous"`
	None      int `json:"none"`
}

// Matched returns the number of positively matched records.
func (s MatchStats) Matched() int {
	return s.Exact + s.Name
}
