// Package history records which items earlier digests already
// reported, so later runs inside the same recency window can skip
// them.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Sid-Romero/sentinel-ops/internal/fetch"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS reported (
			id          TEXT PRIMARY KEY,
			url         TEXT NOT NULL,
			source      TEXT NOT NULL,
			title       TEXT NOT NULL,
			digest_path TEXT NOT NULL,
			reported_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reported_url ON reported(url);
		CREATE INDEX IF NOT EXISTS idx_reported_at ON reported(reported_at);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Seen reports whether a URL was already part of an earlier digest.
func (s *Store) Seen(url string) (bool, error) {
	var one int
	err := s.readDB.QueryRow("SELECT 1 FROM reported WHERE url = ? LIMIT 1", url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying history: %w", err)
	}
	return true, nil
}

// MarkReported records every item of a freshly written digest.
func (s *Store) MarkReported(items []fetch.Item, digestPath string, now time.Time) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO reported (id, url, source, title, digest_path, reported_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			digest_path = excluded.digest_path,
			reported_at = excluded.reported_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.Exec(it.ID(), it.URL, string(it.Source), it.Title, digestPath, now); err != nil {
			return fmt.Errorf("recording item %s: %w", it.URL, err)
		}
	}

	return tx.Commit()
}

// Prune deletes entries reported before the retention horizon and
// returns how many were removed.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	horizon := time.Now().Add(-retention)
	res, err := s.writeDB.Exec("DELETE FROM reported WHERE reported_at < ?", horizon)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the entry count and on-disk size of the store.
func (s *Store) Stats(dbPath string) (count int64, size int64, err error) {
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM reported").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting history: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, nil
	}
	return count, info.Size(), nil
}
