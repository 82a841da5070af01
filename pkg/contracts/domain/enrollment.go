package domain

// EnrollmentRecord is one postgraduate enrollment event extracted from the
// yearly enrollment exports. ProgramCode is the institutional 5-digit code;
// ProgramName is the title with resolution/pensum metadata stripped.
type EnrollmentRecord struct {
	Year        int    `json:"year" validate:"required"`
	Faculty     string `json:"faculty,omitempty"`
	ProgramCode string `json:"program_code"`
	ProgramName string `json:"program_name"`
	StudentName string `json:"student_name" validate:"required"`
	Identifier  string `json:"identifier"`
	StudentCode string `json:"student_code,omitempty"`
	Group       string `json:"group,omitempty"`
}
