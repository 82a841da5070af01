package domain

// DegreeLevel classifies a program by the level of the degree it confers.
type DegreeLevel string

const (
	DegreeLevelUndergraduate  DegreeLevel = "PREGRADO"
	DegreeLevelSpecialization DegreeLevel = "ESPECIALIZACION"
	DegreeLevelMasters        DegreeLevel = "MAESTRIA"
	DegreeLevelDoctorate      DegreeLevel = "DOCTORADO"
)

// Credential is one degree held by a graduate: the program title plus the
// graduation year when the registry records one (0 when unknown).
type Credential struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

// GraduateRecord is one row of the institutional graduate registry.
// The registry is the authoritative reference dataset; it is loaded once
// per run and never mutated.
type GraduateRecord struct {
	Identifier     string      `json:"identifier" validate:"required"`
	FullName       string      `json:"full_name"`
	Program        string      `json:"program"`
	GraduationYear int         `json:"graduation_year,omitempty"`
	Level          DegreeLevel `json:"level,omitempty"`
	Campus         string      `json:"campus,omitempty"`
}
