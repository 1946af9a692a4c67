// Tests for the run journal
package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordMediaUpsert(t *testing.T) {
	db := initDB(filepath.Join(t.TempDir(), "journal.db"))
	defer db.Close()

	recordMedia(db, "/lib/a.jpg", "/lib/a.jpg.json", "2021:01:01 00:00:00", "sidecar", statusFailed)
	if mediaAlreadyUpdated(db, "/lib/a.jpg") {
		t.Error("failed status should not count as updated")
	}

	// Re-recording the same path must replace, not duplicate.
	recordMedia(db, "/lib/a.jpg", "/lib/a.jpg.json", "2021:01:01 00:00:00", "sidecar", statusUpdated)
	if !mediaAlreadyUpdated(db, "/lib/a.jpg") {
		t.Error("updated status should be visible after upsert")
	}
	if got := countJournaled(db); got != 1 {
		t.Errorf("expected 1 journaled file after upsert, got %d", got)
	}
}

func TestMediaAlreadyUpdatedUnknownPath(t *testing.T) {
	db := initDB(filepath.Join(t.TempDir(), "journal.db"))
	defer db.Close()
	if mediaAlreadyUpdated(db, "/never/seen.jpg") {
		t.Error("unknown path should not be reported as updated")
	}
}

func TestGetLastRunTime(t *testing.T) {
	db := initDB(filepath.Join(t.TempDir(), "journal.db"))
	defer db.Close()

	last, err := getLastRunTime(db)
	if err != nil || !last.IsZero() {
		t.Errorf("empty journal should yield zero time, got %v (%v)", last, err)
	}

	before := time.Now().Add(-time.Second)
	recordMedia(db, "/lib/a.jpg", "", "2021:01:01 00:00:00", "filesystem mtime", statusUpdated)
	last, err = getLastRunTime(db)
	if err != nil {
		t.Fatalf("getLastRunTime failed: %v", err)
	}
	if last.Before(before) || last.After(time.Now().Add(time.Second)) {
		t.Errorf("last run time %v not close to now", last)
	}
}
