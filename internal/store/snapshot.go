package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"palchi-cli/internal/model"
)

const snapshotFileName = "cache.sqlite"

// Snapshot is the last successful list loads, persisted so the TUI can show
// data immediately on startup while the fresh load is in flight. It is a
// cache, never an authority: every reload replaces it wholesale.
type Snapshot struct {
	Events       []model.Event
	Associations []model.Association
	SavedAt      time.Time
}

func (s Store) snapshotPath() string {
	return filepath.Join(s.Dir, snapshotFileName)
}

func (s Store) openSnapshotDB(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.snapshotPath())
	if err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS snapshot (
	resource TEXT PRIMARY KEY,
	payload  BLOB NOT NULL,
	saved_at TEXT NOT NULL
)`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SaveSnapshot replaces the cached lists in one transaction.
func (s Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	db, err := s.openSnapshotDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for resource, v := range map[string]any{
		"events":       snap.Events,
		"associations": snap.Associations,
	} {
		payload, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO snapshot (resource, payload, saved_at) VALUES (?, ?, ?)
ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
			resource, payload, savedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSnapshot returns the cached lists, or an empty snapshot when the cache
// does not exist yet. A corrupted payload is treated as missing.
func (s Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	db, err := s.openSnapshotDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT resource, payload, saved_at FROM snapshot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := &Snapshot{}
	for rows.Next() {
		var resource, savedAt string
		var payload []byte
		if err := rows.Scan(&resource, &payload, &savedAt); err != nil {
			return nil, err
		}
		switch resource {
		case "events":
			_ = json.Unmarshal(payload, &snap.Events)
		case "associations":
			_ = json.Unmarshal(payload, &snap.Associations)
		}
		if t, err := time.Parse(time.RFC3339, savedAt); err == nil && t.After(snap.SavedAt) {
			snap.SavedAt = t
		}
	}
	return snap, rows.Err()
}
