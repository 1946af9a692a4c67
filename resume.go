// sidecarfix: incremental re-run support backed by the run journal
package main

import (
	"database/sql"
)

// mediaAlreadyUpdated reports whether a previous run already rewrote
// this file's metadata successfully. Incremental mode uses this to skip
// the file entirely, which keeps re-running on a partially completed
// tree cheap and prevents clobbering already-repaired dates with
// fallback values after the sidecar was archived.
func mediaAlreadyUpdated(db *sql.DB, path string) bool {
	var id int
	err := db.QueryRow("SELECT id FROM media WHERE path = ? AND status = ?", path, statusUpdated).Scan(&id)
	return err == nil
}

// countJournaled returns how many media files the journal knows about.
func countJournaled(db *sql.DB) int {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM media").Scan(&count); err != nil {
		return 0
	}
	return count
}
