// Package exporter writes the analysis reports.
//
// CSVWriter emits semicolon-delimited CSV with a UTF-8 BOM so the files
// open correctly in Excel, the format the accreditation office works in.
// ExcelWriter builds multi-sheet report workbooks. The table builders in
// reports.go turn domain records into the named report layouts shared by
// both formats.
package exporter
