// Package profile reconstructs per-individual sequence records from a cleaned
// line stream and groups them by locus.
package profile

import "strings"

// Placeholder and missing-data symbols.
const (
	Placeholder = '?'
	Missing     = 'N'
)

// Record is one individual's sequence for a single locus.
type Record struct {
	Label    string // Individual identifier from the allow-list
	Sequence string // Raw sequence; may contain '?' until sanitized
}

// Len returns the number of symbols in the record.
func (r Record) Len() int {
	return len(r.Sequence)
}

// Collection is an ordered set of records sharing one locus.
// Record lengths may differ.
type Collection struct {
	Locus   string
	Records []Record
}

// NewCollection creates an empty collection for the given locus.
func NewCollection(locus string) *Collection {
	return &Collection{Locus: locus}
}

// Add appends a record.
func (c *Collection) Add(label, sequence string) {
	c.Records = append(c.Records, Record{Label: label, Sequence: sequence})
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.Records)
}

// MaxLen returns the length of the longest record, or 0 if there are none.
func (c *Collection) MaxLen() int {
	n := 0
	for _, r := range c.Records {
		if r.Len() > n {
			n = r.Len()
		}
	}
	return n
}

// Sanitized returns a copy of the collection with every record sanitized.
func (c *Collection) Sanitized() *Collection {
	out := &Collection{Locus: c.Locus, Records: make([]Record, len(c.Records))}
	for i, r := range c.Records {
		out.Records[i] = Record{Label: r.Label, Sequence: Sanitize(r.Sequence)}
	}
	return out
}

// Sanitize replaces every placeholder '?' with the missing-data symbol 'N'.
// All other symbols and the sequence length are left unchanged.
func Sanitize(seq string) string {
	return strings.ReplaceAll(seq, string(Placeholder), string(Missing))
}
