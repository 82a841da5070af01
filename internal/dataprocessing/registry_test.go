package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumcli/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryLoaderLoad(t *testing.T) {
	content := "IDENTIFICACION;NOMBRE COMPLETO;TITULO OBTENIDO;FECHA DE GRADO;SECCIONAL\n" +
		"1.023.456;José Muñoz Pérez;ESPECIALIZACION EN DERECHO PENAL;15/09/2018;BOGOTA\n" +
		"1023456;JOSE MUÑOZ PEREZ;MAESTRIA EN DERECHO;2022-03-11;BOGOTA\n" +
		"1023456;JOSE MUNOZ PEREZ;MAESTRIA EN DERECHO;2022-03-11;BOGOTA\n" +
		"98765432;Ana María Rojas;INGENIERIA DE SISTEMAS;10/12/2015;TUNJA\n" +
		";SIN DOCUMENTO;DERECHO;;\n"
	path := writeTestFile(t, t.TempDir(), "registro_egresados.csv", content)

	idx, err := NewRegistryLoader(testLogger()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Size(), "rows without identifier are skipped")
	assert.Equal(t, 1, idx.DuplicateIDs, "exact duplicate row is counted, not re-added")

	graduate, credentials, ok := idx.LookupID("1023456")
	require.True(t, ok, "identifier variants must collapse to one entry")
	assert.Equal(t, "JOSE MUNOZ PEREZ", graduate.FullName)
	require.Len(t, credentials, 2)
	assert.Equal(t, "ESPECIALIZACION EN DERECHO PENAL", credentials[0].Title)
	assert.Equal(t, 2018, credentials[0].Year)
	assert.Equal(t, "MAESTRIA EN DERECHO", credentials[1].Title)
	assert.Equal(t, 2022, credentials[1].Year)

	ids := idx.LookupName("JOSE MUNOZ PEREZ")
	assert.Equal(t, []string{"1023456"}, ids)

	_, _, ok = idx.LookupID("55555555")
	assert.False(t, ok)
}

func TestRegistryLoaderMissingIdentifierColumn(t *testing.T) {
	content := "NOMBRE;TITULO;FECHA GRADO\nJose Perez;DERECHO;2020-01-01\n"
	path := writeTestFile(t, t.TempDir(), "registro.csv", content)

	_, err := NewRegistryLoader(testLogger()).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestRegistryLoaderEmptyFile(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "registro.csv", "IDENTIFICACION;NOMBRE\n")

	_, err := NewRegistryLoader(testLogger()).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestDetectRegistryColumns(t *testing.T) {
	cols, err := detectRegistryColumns([]string{
		"No", "CEDULA DE CIUDADANIA", "NOMBRES Y APELLIDOS", "PROGRAMA ACADEMICO", "FECHA DE GRADO",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cols.identifier)
	assert.Equal(t, 2, cols.name)
	assert.Equal(t, 3, cols.title)
	assert.Equal(t, 4, cols.date)
	assert.Equal(t, -1, cols.campus)
}

func TestGraduationYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "slash format", input: "15/09/2018", expected: 2018},
		{name: "iso format", input: "2022-03-11", expected: 2022},
		{name: "bare year", input: "2019", expected: 2019},
		{name: "empty", input: "", expected: 0},
		{name: "garbage", input: "sin fecha", expected: 0},
		{name: "out of range", input: "15/09/1820", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, graduationYear(tt.input))
		})
	}
}
