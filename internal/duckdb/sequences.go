package duckdb

import (
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/hapmap/internal/profile"
)

// WriteCollection replaces the stored records for c.Locus, keeping record order.
func (s *Store) WriteCollection(c *profile.Collection) error {
	if _, err := s.db.Exec("DELETE FROM sequences WHERE locus=?", c.Locus); err != nil {
		return fmt.Errorf("clear sequences for %s: %w", c.Locus, err)
	}
	if c.Len() == 0 {
		return nil
	}

	return s.withAppender("sequences", func(a *goduckdb.Appender) error {
		for i, r := range c.Records {
			if err := a.AppendRow(c.Locus, int64(i), r.Label, r.Sequence); err != nil {
				return fmt.Errorf("append sequence %s: %w", r.Label, err)
			}
		}
		return nil
	})
}

// LoadCollection reads the stored records for locus in their original order.
func (s *Store) LoadCollection(locus string) (*profile.Collection, error) {
	rows, err := s.db.Query(`SELECT label, sequence
		FROM sequences
		WHERE locus=?
		ORDER BY ordinal`, locus)
	if err != nil {
		return nil, fmt.Errorf("query sequences: %w", err)
	}
	defer rows.Close()

	c := profile.NewCollection(locus)
	for rows.Next() {
		var label, seq string
		if err := rows.Scan(&label, &seq); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		c.Add(label, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sequences: %w", err)
	}
	return c, nil
}
