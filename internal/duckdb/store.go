// Package duckdb persists sequence collections and called variant sites.
// Each locus is stored independently; rewriting a locus replaces its rows.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for haplotype map data.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path, empty for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sequences (
		locus VARCHAR,
		ordinal BIGINT,
		label VARCHAR,
		sequence VARCHAR,
		PRIMARY KEY (locus, ordinal)
	)`,
		`CREATE TABLE IF NOT EXISTS variant_sites (
		locus VARCHAR,
		position BIGINT,
		alleles VARCHAR,
		major VARCHAR,
		minor VARCHAR,
		count_a BIGINT,
		count_c BIGINT,
		count_g BIGINT,
		count_t BIGINT,
		total BIGINT,
		maf DOUBLE,
		PRIMARY KEY (locus, position)
	)`,
		`CREATE TABLE IF NOT EXISTS runs (
		path VARCHAR,
		size BIGINT,
		mod_time TIMESTAMP,
		run_at TIMESTAMP
	)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all stored sequences, sites and runs.
func (s *Store) Clear() error {
	for _, table := range []string{"sequences", "variant_sites", "runs"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
