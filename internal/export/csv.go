// Package export renders the aggregation matrix into the two artifact
// formats and delivers them through the host capability.
package export

import (
	"strings"

	"secview/internal/domain"
	"secview/internal/overview"
)

// CSV format constants. Every field is wrapped in double quotes; embedded
// quotes and commas are NOT escaped beyond the wrapping. This mirrors the
// exact, literal behavior consumers of these artifacts already rely on. The
// byte-order mark makes spreadsheet tools that sniff encoding open the file
// as UTF-8.
const (
	csvBOM         = "\uFEFF"
	csvRowSep      = "\r\n"
	presenceMarker = "X"
	noBusinessUnit = "N/A"
)

// RenderCSV serializes the matrix: a header row of fixed descriptive
// columns followed by one kind-prefixed column per matrix column, then one
// row per principal with presence markers for held attributes.
func RenderCSV(m *overview.Matrix) string {
	var lines []string

	header := fixedHeader(m)
	for _, col := range m.Columns {
		header = append(header, string(col.Kind)+": "+col.Name)
	}
	lines = append(lines, csvLine(header))

	for _, row := range m.Rows {
		fields := fixedFields(row)
		for _, col := range m.Columns {
			if row.HasAttribute(col) {
				fields = append(fields, presenceMarker)
			} else {
				fields = append(fields, "")
			}
		}
		lines = append(lines, csvLine(fields))
	}

	return csvBOM + strings.Join(lines, csvRowSep)
}

func fixedHeader(m *overview.Matrix) []string {
	if m.Kind == domain.KindTeam {
		return []string{"Team Name", "Team Type", "Business Unit"}
	}
	return []string{"User Name", "Domain Name", "Business Unit", "Status"}
}

func fixedFields(row overview.Row) []string {
	if row.Team != nil {
		t := row.Team
		return []string{t.Name, t.Type.Label(), t.BusinessUnit.DisplayName(noBusinessUnit)}
	}
	u := row.User
	return []string{u.FullName, u.DomainName, u.BusinessUnit.DisplayName(noBusinessUnit), u.StatusLabel()}
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}
