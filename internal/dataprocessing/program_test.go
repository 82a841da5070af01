package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alumcli/pkg/contracts/domain"
)

func TestExtractProgramCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "leading code",
			input:    "32101    ESPECIALIZACION EN DERECHO ADMINISTRATIVO",
			expected: "32101",
		},
		{
			name:     "masters code",
			input:    "34205 MAESTRIA EN EDUCACION",
			expected: "34205",
		},
		{
			name:     "no code",
			input:    "ESPECIALIZACION EN DERECHO PENAL",
			expected: "",
		},
		{
			name:     "four digit token ignored",
			input:    "2023 MAESTRIA EN DERECHO",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractProgramCode(tt.input))
		})
	}
}

func TestCleanProgramName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips leading code",
			input:    "32101 ESPECIALIZACION EN DERECHO ADMINISTRATIVO",
			expected: "ESPECIALIZACION EN DERECHO ADMINISTRATIVO",
		},
		{
			name:     "cuts resolution metadata",
			input:    "34205 MAESTRIA EN EDUCACION RESOLUCION 12345 DE 2019",
			expected: "MAESTRIA EN EDUCACION",
		},
		{
			name:     "accented resolution marker",
			input:    "MAESTRIA EN DERECHO RESOLUCIÓN 9 DE 2021",
			expected: "MAESTRIA EN DERECHO",
		},
		{
			name:     "plain title untouched",
			input:    "  DOCTORADO EN CIENCIAS JURIDICAS ",
			expected: "DOCTORADO EN CIENCIAS JURIDICAS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanProgramName(tt.input))
		})
	}
}

func TestClassifyDegreeLevel(t *testing.T) {
	tests := []struct {
		title    string
		expected domain.DegreeLevel
	}{
		{title: "ESPECIALIZACION EN DERECHO", expected: domain.DegreeLevelSpecialization},
		{title: "Especialización en Gestión", expected: domain.DegreeLevelSpecialization},
		{title: "MAESTRÍA EN EDUCACIÓN", expected: domain.DegreeLevelMasters},
		{title: "DOCTORADO EN DERECHO", expected: domain.DegreeLevelDoctorate},
		{title: "INGENIERIA DE SISTEMAS", expected: domain.DegreeLevelUndergraduate},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDegreeLevel(tt.title))
		})
	}
}

func TestClassifyProgramLevel(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		title    string
		expected domain.DegreeLevel
	}{
		{
			name:     "title wins",
			code:     "",
			title:    "MAESTRIA EN DERECHO",
			expected: domain.DegreeLevelMasters,
		},
		{
			name:     "specialization by code prefix",
			code:     "32101",
			title:    "DERECHO ADMINISTRATIVO",
			expected: domain.DegreeLevelSpecialization,
		},
		{
			name:     "masters by code prefix",
			code:     "34205",
			title:    "EDUCACION",
			expected: domain.DegreeLevelMasters,
		},
		{
			name:     "unknown stays undergraduate",
			code:     "11001",
			title:    "DERECHO",
			expected: domain.DegreeLevelUndergraduate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyProgramLevel(tt.code, tt.title))
		})
	}
}
