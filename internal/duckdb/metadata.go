package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Matches reports whether two fingerprints describe the same file contents.
// Modification times are compared at the microsecond precision DuckDB stores.
func (f FileFingerprint) Matches(other FileFingerprint) bool {
	return f.Path == other.Path && f.Size == other.Size &&
		f.ModTime.Truncate(time.Microsecond).Equal(other.ModTime.Truncate(time.Microsecond))
}

// RecordRun stores the fingerprint of an input that was processed at runAt.
func (s *Store) RecordRun(fp FileFingerprint, runAt time.Time) error {
	_, err := s.db.Exec("INSERT INTO runs VALUES (?, ?, ?, ?)",
		fp.Path, fp.Size, fp.ModTime.UTC(), runAt.UTC())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRun returns the fingerprint of the most recent run for path.
// The boolean is false if path was never recorded.
func (s *Store) LastRun(path string) (FileFingerprint, bool, error) {
	fp := FileFingerprint{Path: path}
	err := s.db.QueryRow(`SELECT size, mod_time FROM runs
		WHERE path=?
		ORDER BY run_at DESC
		LIMIT 1`, path).Scan(&fp.Size, &fp.ModTime)
	if errors.Is(err, sql.ErrNoRows) {
		return FileFingerprint{}, false, nil
	}
	if err != nil {
		return FileFingerprint{}, false, fmt.Errorf("query last run: %w", err)
	}
	return fp, true, nil
}
