// Package output provides haplotype map output formatters.
package output

import (
	"strings"

	"github.com/inodb/hapmap/internal/snp"
)

// ColumnSeparator joins fields in the aligned report.
const ColumnSeparator = "  "

// HapmapHeader is the header row of a haplotype map.
var HapmapHeader = []string{
	"Chromosome",
	"Position",
	"Alleles",
	"MajorAllele",
	"MinorAllele",
	"MinorFreq",
}

// SiteWriter defines the interface for writing variant sites.
type SiteWriter interface {
	WriteHeader() error
	Write(s *snp.Site) error
	Flush() error
}

// SiteRows renders sites as report rows.
func SiteRows(sites []snp.Site) [][]string {
	rows := make([][]string, len(sites))
	for i := range sites {
		rows[i] = sites[i].Fields()
	}
	return rows
}

// ColumnWidths returns the maximum field length per column over header and rows.
func ColumnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, f := range row {
			if i < len(widths) && len(f) > widths[i] {
				widths[i] = len(f)
			}
		}
	}
	return widths
}

// FormatTable left-justifies every field to its column width, joins fields with
// two spaces and rows with newlines. There is no trailing newline. Fields past
// the header's column count are dropped.
func FormatTable(header []string, rows [][]string) string {
	widths := ColumnWidths(header, rows)

	var sb strings.Builder
	writeRow(&sb, header, widths)
	for _, row := range rows {
		sb.WriteByte('\n')
		writeRow(&sb, row, widths)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(ColumnSeparator)
		}
		f := ""
		if i < len(row) {
			f = row[i]
		}
		sb.WriteString(f)
		sb.WriteString(strings.Repeat(" ", w-len(f)))
	}
}

// FormatReport renders a report as an aligned haplotype map.
func FormatReport(r *snp.Report) string {
	return FormatTable(HapmapHeader, SiteRows(r.Sites))
}
