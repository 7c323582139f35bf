// Package snapshot persists the last known server state to disk so the TUI
// has data on screen before the first round trip. It is not a cache in any
// richer sense: no TTL, no eviction, one row per entity family holding
// whatever was last committed to the in-memory store.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Family keys used by the store rows.
const (
	FamilySources     = "sources"
	FamilyPostings    = "postings"
	FamilyFilters     = "filters"
	FamilySettings    = "settings"
	FamilySuggestions = "suggestions"
)

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the snapshot database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		family TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save serializes value under the family key, replacing any previous row.
func (s *Store) Save(family string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (family, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(family) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		family, string(data), time.Now().UTC())
	return err
}

// Load decodes the stored value for the family key into out. The first
// return is false when no snapshot exists yet.
func (s *Store) Load(family string, out any) (bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE family = ?`, family).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}
