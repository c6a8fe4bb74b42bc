package main

import (
	"database/sql"
)

// snapshotStore records one row per Step call, tracking how many nodes
// were still dirty afterward — enough to tell from the database alone
// whether a run reached quiescence without re-running the simulation.
type snapshotStore struct {
	db *sql.DB
}

func newSnapshotStore(db *sql.DB) *snapshotStore {
	return &snapshotStore{db: db}
}

func (s *snapshotStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			program_id TEXT NOT NULL,
			dirty_remaining INTEGER NOT NULL
		)
	`)

	return err
}

func (s *snapshotStore) record(programID string, dirtyRemaining int) error {
	_, err := s.db.Exec(
		`INSERT INTO steps (program_id, dirty_remaining) VALUES (?, ?)`,
		programID, dirtyRemaining,
	)

	return err
}
