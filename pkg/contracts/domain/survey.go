package domain

import "time"

// SurveyResponse is one row of an alumni employment survey export.
// Programs holds the raw PROGRAMA(S) field, a "-"-separated list of
// "TITLE( CAMPUS )( YYYY-MM-DD )" segments.
type SurveyResponse struct {
	SourceFile string    `json:"source_file"`
	Document   string    `json:"document"`
	FullName   string    `json:"full_name"`
	Programs   string    `json:"programs"`
	Occupation string    `json:"occupation,omitempty"`
	JobTitle   string    `json:"job_title,omitempty"`
	Company    string    `json:"company,omitempty"`
	SurveyDate time.Time `json:"survey_date,omitempty"`
}

// GraduationEvent is one program completion extracted from a survey
// response's PROGRAMA(S) field.
type GraduationEvent struct {
	Program        string      `json:"program"`
	Campus         string      `json:"campus,omitempty"`
	Level          DegreeLevel `json:"level"`
	GraduationYear int         `json:"graduation_year"`
	GraduationDate string      `json:"graduation_date"`
}
