// Package state owns the match state carried across reconciliation
// passes. The store is the single writer boundary: passes replace the
// state atomically through Replace, everything else reads a snapshot
// through Current. State is persisted to SQLite so a restart does not
// re-emit the whole match set as new.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/wantlist/internal/db"
	"github.com/llehouerou/wantlist/internal/library"
	"github.com/llehouerou/wantlist/internal/match"
)

const (
	appName    = "wantlist"
	dbFileName = "wantlist.db"
)

// State is the record set from the most recent completed pass, in
// wanted-list order. Snapshots handed out by the store are read-only.
type State struct {
	Records []match.Record
}

// Store holds the current State and its SQLite backing.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	current State
}

// DefaultPath returns the state database location under the XDG data
// directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (or creates) the state database at dbPath and loads the
// persisted match state as the initial snapshot.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	s := &Store{db: sqlDB}
	if err := s.loadCurrent(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Current returns the state snapshot from the last completed pass.
// Callers must not mutate the returned records.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace atomically installs the record set of a completed pass and
// returns its diff against the previous state. It is the store's only
// mutator and is called solely by the reconciliation engine.
func (s *Store) Replace(records []match.Record) (Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diff := computeDiff(s.current.Records, records)

	if err := s.persist(records); err != nil {
		return Diff{}, err
	}

	s.current = State{Records: records}
	return diff, nil
}

// persist rewrites the match_records table to mirror the new state.
func (s *Store) persist(records []match.Record) error {
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM match_records`); err != nil {
			return err
		}
		for _, r := range records {
			var libraryPath any
			if r.Library != nil {
				libraryPath = r.Library.Path
			}
			_, err := tx.Exec(`
				INSERT INTO match_records (line, raw, artist, title, library_path, score, status)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, r.Wanted.Line, r.Wanted.Raw, r.Wanted.Artist, r.Wanted.Title, libraryPath, r.Score, int(r.Status))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// loadCurrent restores the persisted state. Library descriptors are
// restored path-only; the diff only compares paths, and the next pass
// replaces them with full descriptors anyway.
func (s *Store) loadCurrent() error {
	rows, err := s.db.Query(`
		SELECT line, raw, artist, title, library_path, score, status
		FROM match_records ORDER BY line
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var records []match.Record
	for rows.Next() {
		var r match.Record
		var libraryPath sql.NullString
		var status int
		if err := rows.Scan(&r.Wanted.Line, &r.Wanted.Raw, &r.Wanted.Artist, &r.Wanted.Title,
			&libraryPath, &r.Score, &status); err != nil {
			return err
		}
		r.Status = match.Status(status)
		if path := db.NullStringValue(libraryPath); path != "" {
			r.Library = &library.Track{Path: path}
		}
		r.Wanted.NormArtist = library.Normalize(r.Wanted.Artist)
		r.Wanted.NormTitle = library.Normalize(r.Wanted.Title)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.current = State{Records: records}
	return nil
}
