package exporter

import (
	"strconv"
	"strings"

	"alumcli/pkg/contracts/domain"
)

// Table is a report table ready for CSV or Excel output.
type Table struct {
	Headers []string
	Records [][]string
}

// Sheet converts the table into a named workbook sheet.
func (t Table) Sheet(name string) Sheet {
	return Sheet{Name: name, Headers: t.Headers, Records: t.Records}
}

// CleanEnrollmentTable renders flat enrollment records in the cleaned
// export format. The column names are what LoadClean expects back.
func CleanEnrollmentTable(records []domain.EnrollmentRecord) Table {
	table := Table{
		Headers: []string{
			"Año", "Facultad", "Codigo_Programa", "Nombre_Programa",
			"Nombre_Estudiante", "Cedula", "Codigo_Estudiante", "Grupo",
		},
	}
	for _, r := range records {
		table.Records = append(table.Records, []string{
			strconv.Itoa(r.Year), r.Faculty, r.ProgramCode, r.ProgramName,
			r.StudentName, r.Identifier, r.StudentCode, r.Group,
		})
	}
	return table
}

// MatchDetailTable renders one row per enrollment with its match outcome.
func MatchDetailTable(matches []domain.MatchedRecord) Table {
	table := Table{
		Headers: []string{
			"Año", "Cedula", "Nombre_Estudiante", "Codigo_Programa",
			"Nombre_Programa", "Es_Egresado", "Tipo_Match", "Titulos_Previos",
		},
	}
	for _, m := range matches {
		esEgresado := "NO"
		if m.Confidence.IsMatched() {
			esEgresado = "SI"
		}

		var titles []string
		for _, cred := range m.PriorDegrees {
			titles = append(titles, cred.Title)
		}

		table.Records = append(table.Records, []string{
			strconv.Itoa(m.Enrollment.Year),
			m.Enrollment.Identifier,
			m.Enrollment.StudentName,
			m.Enrollment.ProgramCode,
			m.Enrollment.ProgramName,
			esEgresado,
			string(m.Confidence),
			strings.Join(titles, " | "),
		})
	}
	return table
}

// ProgramYearTable renders match aggregates grouped by program and year.
func ProgramYearTable(rows []domain.AggregateRow) Table {
	table := Table{
		Headers: []string{
			"Año", "Codigo_Programa", "Nombre_Programa",
			"Total_Estudiantes", "Egresados", "No_Egresados", "Porcentaje_Egresados",
		},
	}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			strconv.Itoa(row.Year), row.ProgramCode, row.ProgramName,
			strconv.Itoa(row.Total), strconv.Itoa(row.Matched),
			strconv.Itoa(row.Unmatched), formatPercentage(row.Percentage),
		})
	}
	return table
}

// YearTable renders match aggregates grouped by year only.
func YearTable(rows []domain.AggregateRow) Table {
	table := Table{
		Headers: []string{
			"Año", "Total_Estudiantes", "Egresados", "No_Egresados", "Porcentaje_Egresados",
		},
	}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			strconv.Itoa(row.Year), strconv.Itoa(row.Total),
			strconv.Itoa(row.Matched), strconv.Itoa(row.Unmatched),
			formatPercentage(row.Percentage),
		})
	}
	return table
}

// DirectiveEntry is one survey response classified as a leadership role.
type DirectiveEntry struct {
	Response domain.SurveyResponse
	Keywords []string
}

// DirectiveTable renders the responses holding leadership positions.
func DirectiveTable(entries []DirectiveEntry) Table {
	table := Table{
		Headers: []string{
			"Documento", "Nombre", "Programa(s)", "Ocupacion",
			"Cargo", "Empresa", "Palabras_Clave",
		},
	}
	for _, e := range entries {
		table.Records = append(table.Records, []string{
			e.Response.Document, e.Response.FullName, e.Response.Programs,
			e.Response.Occupation, e.Response.JobTitle, e.Response.Company,
			strings.Join(e.Keywords, ", "),
		})
	}
	return table
}

// KeywordTable renders the directive keyword distribution.
func KeywordTable(rows []domain.KeywordCount) Table {
	table := Table{Headers: []string{"Palabra_Clave", "Total"}}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			row.Keyword, strconv.Itoa(row.Count),
		})
	}
	return table
}

// CohortYearTable renders graduation counts per year.
func CohortYearTable(rows []domain.AggregateRow) Table {
	table := Table{Headers: []string{"Año_Grado", "Total", "Porcentaje"}}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			strconv.Itoa(row.Year), strconv.Itoa(row.Total), formatPercentage(row.Percentage),
		})
	}
	return table
}

// CohortProgramTable renders graduation counts per program.
func CohortProgramTable(rows []domain.AggregateRow) Table {
	table := Table{Headers: []string{"Programa", "Total", "Porcentaje"}}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			row.ProgramName, strconv.Itoa(row.Total), formatPercentage(row.Percentage),
		})
	}
	return table
}

// CohortYearProgramTable renders graduation counts per year × program.
func CohortYearProgramTable(rows []domain.AggregateRow) Table {
	table := Table{Headers: []string{"Año_Grado", "Programa", "Total", "Porcentaje"}}
	for _, row := range rows {
		table.Records = append(table.Records, []string{
			strconv.Itoa(row.Year), row.ProgramName,
			strconv.Itoa(row.Total), formatPercentage(row.Percentage),
		})
	}
	return table
}

// CohortDetail is one graduation event tied back to the person reporting it.
type CohortDetail struct {
	Document string
	FullName string
	Event    domain.GraduationEvent
}

// GraduationEventTable renders the per-event cohort detail.
func GraduationEventTable(entries []CohortDetail) Table {
	table := Table{
		Headers: []string{
			"Documento", "Nombre", "Programa", "Nivel", "Seccional", "Fecha_Grado", "Año_Grado",
		},
	}
	for _, e := range entries {
		table.Records = append(table.Records, []string{
			e.Document, e.FullName, e.Event.Program, string(e.Event.Level),
			e.Event.Campus, e.Event.GraduationDate, strconv.Itoa(e.Event.GraduationYear),
		})
	}
	return table
}

func formatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
