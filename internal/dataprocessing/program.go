package dataprocessing

import (
	"strings"

	"alumcli/internal/config"
	"alumcli/pkg/contracts/domain"
)

// ExtractProgramCode returns the institutional 5-digit program code found
// in a program header cell, or "" when none is present.
// Example: "32101    ESPECIALIZACION EN DERECHO ADMINISTRATIVO" -> "32101".
func ExtractProgramCode(text string) string {
	for _, word := range strings.Fields(text) {
		if len(word) == 5 && isAllDigits(word) {
			return word
		}
	}
	return ""
}

// CleanProgramName strips the leading program code and the trailing
// resolution/pensum metadata from a program header cell, keeping only the
// program title.
func CleanProgramName(text string) string {
	s := strings.TrimSpace(text)

	// Drop the leading 5-digit code
	if parts := strings.SplitN(s, " ", 2); len(parts) == 2 &&
		len(parts[0]) == 5 && isAllDigits(parts[0]) {
		s = strings.TrimSpace(parts[1])
	}

	// Cut everything from the resolution metadata onward
	upper := strings.ToUpper(s)
	for _, marker := range []string{"RESOLUCION", "RESOLUCIÓN"} {
		if idx := strings.Index(upper, marker); idx > 0 {
			s = strings.TrimSpace(s[:idx])
			break
		}
	}

	return s
}

// ClassifyDegreeLevel classifies a program title by its degree level.
// Input may be raw or normalized; comparison is accent-insensitive.
func ClassifyDegreeLevel(title string) domain.DegreeLevel {
	upper := defaultNormalizer.Text(title)
	switch {
	case strings.Contains(upper, "ESPECIALIZACION"):
		return domain.DegreeLevelSpecialization
	case strings.Contains(upper, "MAESTRIA"):
		return domain.DegreeLevelMasters
	case strings.Contains(upper, "DOCTORADO"):
		return domain.DegreeLevelDoctorate
	default:
		return domain.DegreeLevelUndergraduate
	}
}

// ClassifyProgramLevel classifies a postgraduate program using both its
// title and code: code prefixes identify the level when the title alone
// does not.
func ClassifyProgramLevel(code, title string) domain.DegreeLevel {
	level := ClassifyDegreeLevel(title)
	if level != domain.DegreeLevelUndergraduate {
		return level
	}
	switch {
	case strings.HasPrefix(code, config.ProgramCodePrefixSpecialization):
		return domain.DegreeLevelSpecialization
	case strings.HasPrefix(code, config.ProgramCodePrefixMasters):
		return domain.DegreeLevelMasters
	}
	return level
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
