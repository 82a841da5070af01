package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"alumcli/pkg/contracts/domain"
)

// MatcherConfig holds the matching policy options.
type MatcherConfig struct {
	// RequirePriorDegree restricts exact matches to graduates holding a
	// credential from a different program, earned strictly before the
	// enrollment year. Used to distinguish "already a graduate of the
	// institution" from "graduating from the very program being pursued".
	RequirePriorDegree bool
}

// Matcher associates enrollment records with the graduate registry.
// Policy: exact identifier first, normalized-name fallback second, and an
// ambiguous name (shared by several graduates) is never guessed; the
// record goes to the unmatched bucket with the ambiguous tag.
type Matcher struct {
	logger     *slog.Logger
	normalizer *Normalizer
	index      *RegistryIndex
	cfg        MatcherConfig
}

// NewMatcher creates a matcher over a loaded registry index.
func NewMatcher(logger *slog.Logger, index *RegistryIndex, cfg MatcherConfig) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{
		logger:     logger,
		normalizer: NewNormalizer(),
		index:      index,
		cfg:        cfg,
	}
}

// MatchAll matches every enrollment record and returns the results with
// the partition stats. One result is produced per input record, so
// Exact+Name+Ambiguous+None always equals len(records).
func (m *Matcher) MatchAll(ctx context.Context, records []domain.EnrollmentRecord) ([]domain.MatchedRecord, domain.MatchStats) {
	results := make([]domain.MatchedRecord, 0, len(records))
	var stats domain.MatchStats

	for _, record := range records {
		matched := m.Match(record)
		results = append(results, matched)

		stats.Total++
		switch matched.Confidence {
		case domain.MatchExact:
			stats.Exact++
		case domain.MatchName:
			stats.Name++
		case domain.MatchAmbiguous:
			stats.Ambiguous++
		default:
			stats.None++
		}
	}

	m.logger.InfoContext(ctx, "matching complete",
		slog.Int("total", stats.Total),
		slog.Int("exact", stats.Exact),
		slog.Int("by_name", stats.Name),
		slog.Int("ambiguous", stats.Ambiguous),
		slog.Int("unmatched", stats.None))

	return results, stats
}

// Match resolves a single enrollment record against the registry.
func (m *Matcher) Match(record domain.EnrollmentRecord) domain.MatchedRecord {
	result := domain.MatchedRecord{
		Enrollment: record,
		Confidence: domain.MatchNone,
	}

	if id := m.normalizer.Identifier(record.Identifier); id != "" {
		if graduate, credentials, ok := m.index.LookupID(id); ok {
			if !m.cfg.RequirePriorDegree {
				result.Graduate = graduate
				result.Confidence = domain.MatchExact
				return result
			}

			if prior := m.priorDegrees(record, credentials); len(prior) > 0 {
				result.Graduate = graduate
				result.Confidence = domain.MatchExact
				result.PriorDegrees = prior
				return result
			}
			// Identifier is in the registry but only for this same program
			// or for later degrees: not a prior graduate.
			return result
		}
	}

	// Name fallback, only when the identifier found nothing.
	name := m.normalizer.Text(record.StudentName)
	if name == "" {
		return result
	}

	switch ids := m.index.LookupName(name); len(ids) {
	case 0:
		// unmatched
	case 1:
		if graduate, _, ok := m.index.LookupID(ids[0]); ok {
			result.Graduate = graduate
			result.Confidence = domain.MatchName
		}
	default:
		// Several graduates share this normalized name: never guess.
		result.Confidence = domain.MatchAmbiguous
	}

	return result
}

// priorDegrees returns the credentials that qualify the graduate as a
// prior alumnus relative to the enrollment: a different program, completed
// strictly before the enrollment year. Credentials without a graduation
// year are excluded since they could postdate the enrollment.
func (m *Matcher) priorDegrees(record domain.EnrollmentRecord, credentials []domain.Credential) []domain.Credential {
	currentLevel := ClassifyProgramLevel(record.ProgramCode, record.ProgramName)
	currentName := m.strippedProgramName(currentLevel, record.ProgramName)

	var prior []domain.Credential
	for _, cred := range credentials {
		if cred.Year == 0 || cred.Year >= record.Year {
			continue
		}
		if m.sameProgram(currentLevel, currentName, cred.Title) {
			continue
		}
		prior = append(prior, cred)
	}
	return prior
}

// sameProgram reports whether a registry credential names the same program
// as the current enrollment: same degree level and one title containing
// the other once the level words are stripped.
func (m *Matcher) sameProgram(currentLevel domain.DegreeLevel, currentName, credTitle string) bool {
	title := m.normalizer.Text(credTitle)
	if currentLevel == domain.DegreeLevelUndergraduate || !strings.Contains(title, string(currentLevel)) {
		return false
	}

	credName := m.strippedProgramName(currentLevel, title)
	if credName == "" || currentName == "" {
		return false
	}
	return strings.Contains(credName, currentName) || strings.Contains(currentName, credName)
}

// strippedProgramName removes the degree-level words from a program title,
// leaving the discipline part used for same-program comparison.
func (m *Matcher) strippedProgramName(level domain.DegreeLevel, title string) string {
	s := m.normalizer.Text(title)
	s = strings.ReplaceAll(s, string(level), "")
	s = strings.ReplaceAll(s, " EN ", " ")
	s = strings.TrimPrefix(strings.TrimSpace(s), "EN ")
	return strings.Join(strings.Fields(s), " ")
}
