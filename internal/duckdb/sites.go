package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/hapmap/internal/snp"
)

// withAppender runs fn with a DuckDB Appender for table and flushes it.
func (s *Store) withAppender(table string, fn func(a *goduckdb.Appender) error) error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	if err := fn(appender); err != nil {
		return err
	}
	return appender.Flush()
}

// WriteReport replaces the stored sites for r.Locus with r.Sites.
// Duplicate positions are written once.
func (s *Store) WriteReport(r *snp.Report) error {
	if _, err := s.db.Exec("DELETE FROM variant_sites WHERE locus=?", r.Locus); err != nil {
		return fmt.Errorf("clear sites for %s: %w", r.Locus, err)
	}
	if r.Empty() {
		return nil
	}

	seen := make(map[int]bool, len(r.Sites))
	return s.withAppender("variant_sites", func(a *goduckdb.Appender) error {
		for i := range r.Sites {
			site := &r.Sites[i]
			if seen[site.Position] {
				continue
			}
			seen[site.Position] = true

			if err := a.AppendRow(
				r.Locus, int64(site.Position), site.AlleleString(),
				string(site.Major), string(site.Minor),
				int64(site.Counts['A']), int64(site.Counts['C']),
				int64(site.Counts['G']), int64(site.Counts['T']),
				int64(site.Total()), site.MinorFreq.InexactFloat64(),
			); err != nil {
				return fmt.Errorf("append site %s:%d: %w", r.Locus, site.Position, err)
			}
		}
		return nil
	})
}

// LookupSites returns the stored report for locus, ordered by position.
// An unknown locus yields an empty report.
func (s *Store) LookupSites(locus string) (*snp.Report, error) {
	rows, err := s.db.Query(`SELECT
		position, major, minor, count_a, count_c, count_g, count_t
		FROM variant_sites
		WHERE locus=?
		ORDER BY position`, locus)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	r := &snp.Report{Locus: locus, Sites: []snp.Site{}}
	for rows.Next() {
		var pos int64
		var major, minor string
		var counts [4]int64
		if err := rows.Scan(&pos, &major, &minor,
			&counts[0], &counts[1], &counts[2], &counts[3]); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		r.Sites = append(r.Sites, newSite(locus, int(pos), major, minor, counts))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	return r, nil
}

// newSite rebuilds a site from its stored columns. The frequency is
// recomputed from the counts so it round-trips exactly.
func newSite(locus string, pos int, major, minor string, counts [4]int64) snp.Site {
	site := snp.Site{
		Locus:    locus,
		Position: pos,
		Counts:   make(map[byte]int),
	}
	total := 0
	for i, n := range counts {
		if n == 0 {
			continue
		}
		b := snp.Bases[i]
		site.Alleles = append(site.Alleles, b)
		site.Counts[b] = int(n)
		total += int(n)
	}
	if major != "" {
		site.Major = major[0]
	}
	if minor != "" {
		site.Minor = minor[0]
	}
	site.MinorFreq = snp.MinorFrequency(site.Counts[site.Minor], total)
	return site
}
