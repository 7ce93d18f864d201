package output

import (
	"bufio"
	"io"

	"github.com/inodb/hapmap/internal/snp"
)

// AlignedWriter writes sites as a fixed-width table. Column widths depend on
// every row, so rows are buffered and the table is written on Flush.
type AlignedWriter struct {
	w      *bufio.Writer
	header []string
	rows   [][]string
}

// NewAlignedWriter creates a new aligned table writer.
func NewAlignedWriter(w io.Writer) *AlignedWriter {
	return &AlignedWriter{w: bufio.NewWriter(w)}
}

// WriteHeader records the header row.
func (aw *AlignedWriter) WriteHeader() error {
	aw.header = HapmapHeader
	return nil
}

// Write buffers a single site.
func (aw *AlignedWriter) Write(s *snp.Site) error {
	aw.rows = append(aw.rows, s.Fields())
	return nil
}

// Flush formats the buffered rows and writes them to the underlying writer.
func (aw *AlignedWriter) Flush() error {
	header := aw.header
	if header == nil {
		header = HapmapHeader
	}
	if _, err := aw.w.WriteString(FormatTable(header, aw.rows)); err != nil {
		return err
	}
	aw.rows = nil
	return aw.w.Flush()
}
