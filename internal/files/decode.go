package files

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTextFile reads a file and returns its content decoded to UTF-8.
// Valid UTF-8 (with or without BOM) is returned as-is; anything else is
// decoded as Windows-1252, which is byte-complete and covers the Latin-1
// exports too.
func ReadTextFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", path, err)
	}
	return decoded, nil
}

// ReadDelimited reads a delimited text file into rows, decoding legacy
// encodings first. Rows may have varying field counts; quoting is lax
// because the exports are not strictly RFC 4180.
func ReadDelimited(path string, comma rune) ([][]string, error) {
	data, err := ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}
