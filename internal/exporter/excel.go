package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"alumcli/internal/config"
	apperrors "alumcli/internal/errors"
)

// Sheet is one worksheet of a report workbook.
type Sheet struct {
	Name    string
	Headers []string
	Records [][]string
}

// ExcelWriter writes multi-sheet Excel report workbooks.
type ExcelWriter struct {
	paths *config.Paths
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(paths *config.Paths) *ExcelWriter {
	return &ExcelWriter{paths: paths}
}

// WriteWorkbook writes the sheets into one workbook. Sheet order is
// preserved and the first sheet replaces the default one.
func (w *ExcelWriter) WriteWorkbook(filePath string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return apperrors.NewStorageError("workbook needs at least one sheet", nil).
			WithContext("file", filePath)
	}

	fullPath := filePath
	if !filepath.IsAbs(fullPath) {
		fullPath = w.paths.GetReportPath(fullPath)
	}

	slog.Info("Writing Excel report",
		slog.String("full_path", fullPath),
		slog.Int("sheets", len(sheets)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err).
			WithContext("dir", filepath.Dir(fullPath))
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return apperrors.NewStorageError("failed to rename sheet", err).
					WithContext("sheet", sheet.Name)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return apperrors.NewStorageError("failed to create sheet", err).
					WithContext("sheet", sheet.Name)
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).
			WithContext("file", fullPath)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	rowIdx := 1
	write := func(row []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return apperrors.NewStorageError("failed to build cell coordinate", err).
				WithContext("sheet", sheet.Name)
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write sheet row", err).
				WithContext("sheet", sheet.Name)
		}
		rowIdx++
		return nil
	}

	if len(sheet.Headers) > 0 {
		if err := write(sheet.Headers); err != nil {
			return err
		}
	}
	for _, record := range sheet.Records {
		if err := write(record); err != nil {
			return err
		}
	}
	return nil
}
