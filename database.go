// sidecarfix: repairs capture dates on exported photo/video libraries from JSON sidecars.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

func initDB(dbPath string) *sql.DB {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not open database: %v\n", err)
		os.Exit(1)
	}
	sqlStmt := `
	CREATE TABLE IF NOT EXISTS media (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE,
		sidecar TEXT,
		resolved_date TEXT,
		provenance TEXT,
		status TEXT,
		processed_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_media_path ON media(path);
	`
	_, err = db.Exec(sqlStmt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not initialize database schema: %v\n", err)
		db.Close()
		os.Exit(1)
	}
	return db
}

const (
	statusUpdated = "updated"
	statusFailed  = "failed"
)

// recordMedia journals one processed media file. Journal write errors
// are logged, never fatal: the journal only powers incremental re-runs.
func recordMedia(db *sql.DB, path, sidecar, resolvedDate, provenance, status string) {
	_, err := db.Exec(
		`INSERT INTO media (path, sidecar, resolved_date, provenance, status, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   sidecar=excluded.sidecar, resolved_date=excluded.resolved_date,
		   provenance=excluded.provenance, status=excluded.status,
		   processed_at=excluded.processed_at`,
		path, sidecar, resolvedDate, provenance, status, time.Now().Format(time.RFC3339))
	if err != nil {
		log.Printf("DB insert error: %v", err)
	}
}

// getLastRunTime returns the most recent processed_at time from the
// journal, or zero if none.
func getLastRunTime(db *sql.DB) (time.Time, error) {
	row := db.QueryRow("SELECT MAX(processed_at) FROM media WHERE processed_at IS NOT NULL")
	var last string
	err := row.Scan(&last)
	if err != nil || last == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, last)
	if err != nil {
		return time.Time{}, nil
	}
	return parsed, nil
}
