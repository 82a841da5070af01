package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// YearlyFile is an input file tied to one enrollment cohort year.
type YearlyFile struct {
	Path string
	Year int
}

// enrollment exports are named like "2021-Posgrados.csv"
var enrollmentFileRe = regexp.MustCompile(`^(\d{4})-Posgrados(?:-limpio)?\.csv$`)

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindEnrollmentFiles finds the yearly postgraduate enrollment exports in
// the given directory, restricted to the [firstYear, lastYear] window, in
// ascending year order.
func (d *Discovery) FindEnrollmentFiles(dir string, firstYear, lastYear int) ([]YearlyFile, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []YearlyFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := enrollmentFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		if year < firstYear || year > lastYear {
			continue
		}
		files = append(files, YearlyFile{
			Path: filepath.Join(fullPath, entry.Name()),
			Year: year,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Year < files[j].Year })

	return files, nil
}

// FindCSVFiles finds all CSV files in the specified directory, sorted by
// name for deterministic processing order.
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".csv")
}

// FindExcelFiles finds all Excel files in the specified directory.
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	files, err := d.findByExtension(dir, ".xlsx")
	if err != nil {
		return nil, err
	}
	xls, err := d.findByExtension(dir, ".xls")
	if err != nil {
		return nil, err
	}
	files = append(files, xls...)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (d *Discovery) findByExtension(dir, ext string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
