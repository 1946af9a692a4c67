// sidecarfix: read-only EXIF audit mode
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rwcarlsen/goexif/exif"

	"sidecarfix/metadata"
)

// runScan walks the tree read-only and reports which photos carry no
// embedded EXIF date, i.e. the files a repair run could still improve.
// Nothing is written and no sidecar is moved.
func runScan(root, backupName string) {
	listings, walkErrors := collectListings(root, backupName)

	var photos, missing int
	var missingPaths []string
	for _, listing := range listings {
		for _, name := range listing.names {
			if isTempFile(name) || !metadata.IsPhoto(name) {
				continue
			}
			photos++
			path := filepath.Join(listing.path, name)
			if !hasExifDate(path) {
				missing++
				missingPaths = append(missingPaths, path)
			}
		}
	}

	color.New(color.FgCyan, color.Bold).Println("=== Scan Results ===")
	fmt.Printf("Photos scanned: %d\n", photos)
	color.New(color.FgYellow).Printf("Missing an EXIF date: %d\n", missing)
	if photos > 0 {
		fmt.Printf("Percentage missing: %.1f%%\n", float64(missing)/float64(photos)*100)
	}
	for _, path := range missingPaths {
		fmt.Println(path)
	}
	if len(walkErrors) > 0 {
		color.New(color.FgRed).Printf("Walk errors: %d\n", len(walkErrors))
	}
}

// hasExifDate reports whether the photo carries any decodable EXIF
// date. Undecodable files count as missing.
func hasExifDate(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	x, err := exif.Decode(f)
	if err != nil {
		return false
	}
	_, err = x.DateTime()
	return err == nil
}
