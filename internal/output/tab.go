package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/hapmap/internal/snp"
)

// TabWriter writes sites in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: HapmapHeader,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single site.
func (tw *TabWriter) Write(s *snp.Site) error {
	_, err := tw.w.WriteString(strings.Join(s.Fields(), "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// NewSiteWriter returns the writer for the named format: "aligned" or "tab".
func NewSiteWriter(format string, w io.Writer) (SiteWriter, bool) {
	switch format {
	case "aligned", "":
		return NewAlignedWriter(w), true
	case "tab":
		return NewTabWriter(w), true
	}
	return nil, false
}

// WriteReport writes the header and every site of r, then flushes.
func WriteReport(sw SiteWriter, r *snp.Report) error {
	if err := sw.WriteHeader(); err != nil {
		return err
	}
	for i := range r.Sites {
		if err := sw.Write(&r.Sites[i]); err != nil {
			return err
		}
	}
	return sw.Flush()
}
