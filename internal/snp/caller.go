package snp

import (
	"github.com/shopspring/decimal"

	"github.com/inodb/hapmap/internal/profile"
)

// CallVariants scans every column of c and returns one Site per column with at
// least two distinct canonical bases, in ascending position order. Symbols other
// than A, C, G and T are treated as missing. An empty collection yields an empty
// result.
//
// Ties are resolved in ACGT order: the major allele is the first base with the
// highest count and the minor allele is the last base with the lowest count, so
// the two always differ.
func CallVariants(c *profile.Collection) []Site {
	return callRange(c, 0, c.MaxLen())
}

// callRange calls sites for the 0-based columns [start, end).
func callRange(c *profile.Collection, start, end int) []Site {
	sites := []Site{}
	for pos := start; pos < end; pos++ {
		if s, ok := callColumn(c, pos); ok {
			sites = append(sites, s)
		}
	}
	return sites
}

func callColumn(c *profile.Collection, pos int) (Site, bool) {
	var counts [4]int
	for _, r := range c.Records {
		// Shorter records have no observation here.
		if pos >= r.Len() {
			continue
		}
		switch r.Sequence[pos] {
		case 'A':
			counts[0]++
		case 'C':
			counts[1]++
		case 'G':
			counts[2]++
		case 'T':
			counts[3]++
		}
	}

	distinct := 0
	for _, n := range counts {
		if n > 0 {
			distinct++
		}
	}
	if distinct < 2 {
		return Site{}, false
	}

	s := Site{
		Locus:    c.Locus,
		Position: pos + 1,
		Alleles:  make([]byte, 0, distinct),
		Counts:   make(map[byte]int, distinct),
	}

	major, minor := -1, -1
	total := 0
	for i, n := range counts {
		if n == 0 {
			continue
		}
		b := Bases[i]
		s.Alleles = append(s.Alleles, b)
		s.Counts[b] = n
		total += n
		if major < 0 || n > counts[major] {
			major = i
		}
		if minor < 0 || n <= counts[minor] {
			minor = i
		}
	}

	s.Major = Bases[major]
	s.Minor = Bases[minor]
	s.MinorFreq = MinorFrequency(counts[minor], total)
	return s, true
}

// MinorFrequency returns minor/total rounded half away from zero to two places.
func MinorFrequency(minor, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minor)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
}
