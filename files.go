// sidecarfix: repairs capture dates on exported photo/video libraries from JSON sidecars.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

const defaultBackupName = ".json_backup"

// dirListing is one directory's files, sorted so matching and processing
// order are deterministic for a fixed tree.
type dirListing struct {
	path  string
	names []string
}

// collectListings walks the tree and returns the per-directory file
// listings, excluding the backup area so archived sidecars are never
// rediscovered. Walk errors are collected, not fatal.
func collectListings(root, backupName string) ([]dirListing, []error) {
	var errs []error
	byDir := make(map[string][]string)
	var order []string

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %v", path, err))
			return nil // continue walking
		}
		if info.IsDir() {
			if info.Name() == backupName {
				return filepath.SkipDir
			}
			return nil
		}
		dir := filepath.Dir(path)
		if _, seen := byDir[dir]; !seen {
			order = append(order, dir)
		}
		byDir[dir] = append(byDir[dir], info.Name())
		return nil
	})

	listings := make([]dirListing, 0, len(order))
	for _, dir := range order {
		names := byDir[dir]
		sort.Strings(names)
		listings = append(listings, dirListing{path: dir, names: names})
	}
	return listings, errs
}

// isTempFile reports whether name is leftover litter from an interrupted
// external-tool run.
func isTempFile(name string) bool {
	return strings.Contains(name, "_exiftool_tmp")
}

// removeExifToolTemps deletes temp litter across the tree and returns
// how many files were removed. Failures are ignored; the files are junk
// either way.
func removeExifToolTemps(root string) int {
	removed := 0
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if isTempFile(info.Name()) {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}

// ensureBackupRoot creates the hidden backup directory at the tree root,
// idempotently, and flags it hidden where the platform supports it.
func ensureBackupRoot(root, backupName string) (string, error) {
	backupRoot := filepath.Join(root, backupName)
	if err := os.MkdirAll(backupRoot, 0755); err != nil {
		return "", err
	}
	hideBestEffort(backupRoot)
	return backupRoot, nil
}

// hideBestEffort applies the OS hidden attribute. Absence of the hiding
// capability is not an error; dot-prefixed names are hidden on Unix
// regardless.
func hideBestEffort(path string) {
	if _, err := exec.LookPath("chflags"); err == nil {
		exec.Command("chflags", "hidden", path).Run()
	}
}

func checkDirExists(path string, label string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %s directory '%s' does not exist: %v\n", label, path, err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "[FATAL] %s path '%s' is not a directory\n", label, path)
		os.Exit(1)
	}
}
