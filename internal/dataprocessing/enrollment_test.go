package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumcli/internal/errors"
)

const rawEnrollmentSample = `Facultad;DERECHO;;;
Programa;32101 ESPECIALIZACION EN DERECHO ADMINISTRATIVO RESOLUCION 4521 DE 2019;;;
PENSUM;2019;;;
NOMBRE;IDENTIFICACION;CODIGO;GRUPO;PERIODO
GARCIA LOPEZ MARIA FERNANDA;1023456789;2021101234;1;20211
MUÑOZ PEREZ JOSE;98765432;2021105678;2;20211
GARCIA LOPEZ MARIA FERNANDA;1023456789;2021101234;1;20211
;;;;
Programa;34205 MAESTRIA EN EDUCACION RESOLUCION 877 DE 2020;;;
NOMBRE;IDENTIFICACION;CODIGO;GRUPO;PERIODO
ROJAS CASTRO ANA MARIA;55443322;2021109999;1;20211
X;123;;;
`

func TestEnrollmentParserParseRaw(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "2021-Posgrados.csv", rawEnrollmentSample)

	records, err := NewEnrollmentParser(testLogger()).ParseRaw(context.Background(), path, 2021)
	require.NoError(t, err)
	require.Len(t, records, 3, "duplicates and non-student rows are dropped")

	first := records[0]
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, "DERECHO", first.Faculty)
	assert.Equal(t, "32101", first.ProgramCode)
	assert.Equal(t, "ESPECIALIZACION EN DERECHO ADMINISTRATIVO", first.ProgramName)
	assert.Equal(t, "GARCIA LOPEZ MARIA FERNANDA", first.StudentName)
	assert.Equal(t, "1023456789", first.Identifier)
	assert.Equal(t, "2021101234", first.StudentCode)
	assert.Equal(t, "1", first.Group)

	third := records[2]
	assert.Equal(t, "34205", third.ProgramCode)
	assert.Equal(t, "MAESTRIA EN EDUCACION", third.ProgramName)
	assert.Equal(t, "55443322", third.Identifier)
}

func TestEnrollmentParserInlineProgramHeader(t *testing.T) {
	content := `Facultad;EDUCACION;;
34205 MAESTRIA EN EDUCACION RESOLUCION 877 DE 2020;;;
NOMBRE;IDENTIFICACION;CODIGO;GRUPO
ROJAS CASTRO ANA MARIA;55443322;2021109999;1
`
	path := writeTestFile(t, t.TempDir(), "2022-Posgrados.csv", content)

	records, err := NewEnrollmentParser(testLogger()).ParseRaw(context.Background(), path, 2022)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "34205", records[0].ProgramCode)
	assert.Equal(t, "MAESTRIA EN EDUCACION", records[0].ProgramName)
}

func TestEnrollmentParserSamePersonTwoPrograms(t *testing.T) {
	content := `Programa;32101 ESPECIALIZACION EN DERECHO ADMINISTRATIVO;;
GARCIA LOPEZ MARIA;1023456789;2021101234;1
Programa;34205 MAESTRIA EN EDUCACION;;
GARCIA LOPEZ MARIA;1023456789;2021105678;1
`
	path := writeTestFile(t, t.TempDir(), "2023-Posgrados.csv", content)

	records, err := NewEnrollmentParser(testLogger()).ParseRaw(context.Background(), path, 2023)
	require.NoError(t, err)
	require.Len(t, records, 2, "dedup key is identifier and program, not identifier alone")
}

func TestEnrollmentParserLoadClean(t *testing.T) {
	content := "Año;Facultad;Codigo_Programa;Nombre_Programa;Nombre_Estudiante;Cedula;Codigo_Estudiante;Grupo\n" +
		"2021;DERECHO;32101;ESPECIALIZACION EN DERECHO ADMINISTRATIVO;GARCIA LOPEZ MARIA;1.023.456.789;2021101234;1\n" +
		";;;;;;;\n"
	path := writeTestFile(t, t.TempDir(), "2021-Posgrados-limpio.csv", content)

	records, err := NewEnrollmentParser(testLogger()).LoadClean(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1023456789", records[0].Identifier, "identifiers come back normalized")
	assert.Equal(t, 2021, records[0].Year)
}

func TestEnrollmentParserLoadCleanMissingColumn(t *testing.T) {
	content := "Año;Facultad;Nombre_Estudiante\n2021;DERECHO;GARCIA\n"
	path := writeTestFile(t, t.TempDir(), "limpio.csv", content)

	_, err := NewEnrollmentParser(testLogger()).LoadClean(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestScanStudentCells(t *testing.T) {
	tests := []struct {
		name       string
		row        []string
		identifier string
		code       string
		group      string
	}{
		{
			name:       "identifier then code then group",
			row:        []string{"GARCIA LOPEZ", "1023456789", "2021101234", "1", "20211"},
			identifier: "1023456789",
			code:       "2021101234",
			group:      "1",
		},
		{
			name:       "period marker skipped",
			row:        []string{"GARCIA LOPEZ", "20231", "1023456789"},
			identifier: "1023456789",
			code:       "",
			group:      "",
		},
		{
			name:       "no plausible identifier",
			row:        []string{"PENSUM", "2019"},
			identifier: "",
			code:       "",
			group:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identifier, code, group := scanStudentCells(tt.row)
			assert.Equal(t, tt.identifier, identifier)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.group, group)
		})
	}
}
