package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/hapmap/internal/snp"
)

func testSites() []snp.Site {
	return []snp.Site{
		{
			Locus: "mtDNA", Position: 4,
			Alleles: []byte("AT"), Counts: map[byte]int{'A': 1, 'T': 2},
			Major: 'T', Minor: 'A', MinorFreq: decimal.RequireFromString("0.33"),
		},
		{
			Locus: "mtDNA", Position: 16519,
			Alleles: []byte("CT"), Counts: map[byte]int{'C': 3, 'T': 5},
			Major: 'T', Minor: 'C', MinorFreq: decimal.RequireFromString("0.38"),
		},
	}
}

func TestFormatTable_HeaderOnly(t *testing.T) {
	got := FormatTable(HapmapHeader, nil)
	assert.Equal(t, "Chromosome  Position  Alleles  MajorAllele  MinorAllele  MinorFreq", got)
}

func TestFormatTable_Aligned(t *testing.T) {
	got := FormatTable(HapmapHeader, SiteRows(testSites()))

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "mtDNA       4         A/T      T            A            0.33     ", lines[1])
	assert.Equal(t, "mtDNA       16519     C/T      T            C            0.38     ", lines[2])

	for _, l := range lines {
		assert.Len(t, l, len(lines[0]))
	}
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestFormatTable_WideValues(t *testing.T) {
	header := []string{"a", "bb"}
	rows := [][]string{{"xxxx", "y"}, {"z", "wwwww"}}

	got := FormatTable(header, rows)
	assert.Equal(t, "a     bb   \nxxxx  y    \nz     wwwww", got)
	assert.Equal(t, []int{4, 5}, ColumnWidths(header, rows))
}

func TestFormatTable_Idempotent(t *testing.T) {
	rows := SiteRows(testSites())
	assert.Equal(t, FormatTable(HapmapHeader, rows), FormatTable(HapmapHeader, rows))
}

func TestFormatReport_Empty(t *testing.T) {
	r := &snp.Report{Locus: "Y"}
	assert.True(t, r.Empty())
	assert.Equal(t, FormatTable(HapmapHeader, nil), FormatReport(r))
}

func TestAlignedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewAlignedWriter(&buf)

	r := &snp.Report{Locus: "mtDNA", Sites: testSites()}
	require.NoError(t, WriteReport(w, r))

	assert.Equal(t, FormatReport(r), buf.String())
}

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t, strings.Join(HapmapHeader, "\t")+"\n", buf.String())
}

func TestTabWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	sites := testSites()
	require.NoError(t, w.Write(&sites[1]))
	require.NoError(t, w.Flush())

	assert.Equal(t, "mtDNA\t16519\tC/T\tT\tC\t0.38\n", buf.String())
}

func TestNewSiteWriter(t *testing.T) {
	var buf bytes.Buffer

	w, ok := NewSiteWriter("aligned", &buf)
	require.True(t, ok)
	assert.IsType(t, &AlignedWriter{}, w)

	w, ok = NewSiteWriter("tab", &buf)
	require.True(t, ok)
	assert.IsType(t, &TabWriter{}, w)

	_, ok = NewSiteWriter("vcf", &buf)
	assert.False(t, ok)
}
