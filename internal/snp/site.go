// Package snp calls column-wise single nucleotide variants over a collection
// of positionally comparable sequences.
package snp

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bases lists the canonical bases in the order used for tie-breaking.
const Bases = "ACGT"

// Site is one polymorphic column of a locus.
type Site struct {
	Locus     string
	Position  int          // 1-based column index
	Alleles   []byte       // Distinct canonical bases, sorted
	Counts    map[byte]int // Occurrences per allele
	Major     byte
	Minor     byte
	MinorFreq decimal.Decimal // Minor count / total, rounded to 2 places
}

// Total returns the number of canonical-base observations at the site.
func (s *Site) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// AlleleString returns the sorted alleles joined by '/', e.g. "A/G".
func (s *Site) AlleleString() string {
	parts := make([]string, len(s.Alleles))
	for i, a := range s.Alleles {
		parts[i] = string(a)
	}
	return strings.Join(parts, "/")
}

// MinorFreqString renders the minor allele frequency with two decimals.
func (s *Site) MinorFreqString() string {
	return s.MinorFreq.StringFixed(2)
}

// Fields renders the site as [locus, position, alleles, major, minor, maf].
func (s *Site) Fields() []string {
	return []string{
		s.Locus,
		strconv.Itoa(s.Position),
		s.AlleleString(),
		string(s.Major),
		string(s.Minor),
		s.MinorFreqString(),
	}
}

// Report is the ordered list of sites for one locus.
type Report struct {
	Locus string
	Sites []Site
}

// Empty reports whether no polymorphic sites were found.
func (r *Report) Empty() bool {
	return len(r.Sites) == 0
}
