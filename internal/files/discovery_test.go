package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestDiscovery_FindEnrollmentFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2023-Posgrados.csv", []byte("x"))
	writeFile(t, dir, "2021-Posgrados.csv", []byte("x"))
	writeFile(t, dir, "2019-Posgrados.csv", []byte("x")) // outside window
	writeFile(t, dir, "2022-Pregrados.csv", []byte("x")) // wrong name
	writeFile(t, dir, "notas.txt", []byte("x"))

	d := NewDiscovery(dir)
	files, err := d.FindEnrollmentFiles(".", 2021, 2025)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, 2021, files[0].Year, "ascending year order")
	assert.Equal(t, 2023, files[1].Year)
}

func TestDiscovery_FindEnrollmentFiles_CleanVariant(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-Posgrados-limpio.csv", []byte("x"))

	files, err := NewDiscovery(dir).FindEnrollmentFiles(".", 2021, 2025)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 2024, files[0].Year)
}

func TestDiscovery_FindEnrollmentFiles_MissingDir(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindEnrollmentFiles("nope", 2021, 2025)
	assert.Error(t, err)
}

func TestDiscovery_FindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", []byte("x"))
	writeFile(t, dir, "a.CSV", []byte("x"))
	writeFile(t, dir, "c.xlsx", []byte("x"))

	files, err := NewDiscovery(dir).FindCSVFiles(".")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.CSV", files[0].Name, "sorted by name")
}

func TestReadTextFile_EncodingFallback(t *testing.T) {
	dir := t.TempDir()

	t.Run("utf8 with BOM", func(t *testing.T) {
		path := writeFile(t, dir, "bom.csv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("AÑO;NOMBRE")...))
		data, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "AÑO;NOMBRE", string(data))
	})

	t.Run("windows-1252", func(t *testing.T) {
		// "AÑO" with Ñ encoded as 0xD1
		path := writeFile(t, dir, "legacy.csv", []byte{'A', 0xD1, 'O'})
		data, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "AÑO", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadTextFile(filepath.Join(dir, "missing.csv"))
		assert.Error(t, err)
	})
}

func TestReadDelimited(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", []byte("a;b;c\nd;e\nf;g;h;i\n"))

	rows, err := ReadDelimited(path, ';')
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"d", "e"}, rows[1], "ragged rows are allowed")
}
