// sidecarfix: repairs capture dates on exported photo/video libraries from JSON sidecars.
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"sidecarfix/match"
	"sidecarfix/metadata"
)

// Profile selects one of the two engine configurations. The reduced
// profile mirrors the lighter legacy behavior: exact and inclusion
// matching only, no embedded video date reads, flat backup layout.
type Profile struct {
	Name            string
	ReducedMatching bool
	VideoFallback   bool
	MirrorBackup    bool
}

func profileByName(name string) (Profile, error) {
	switch name {
	case "", "full":
		return Profile{Name: "full", VideoFallback: true, MirrorBackup: true}, nil
	case "simple":
		return Profile{Name: "simple", ReducedMatching: true}, nil
	default:
		return Profile{}, fmt.Errorf("unknown profile %q (expected full or simple)", name)
	}
}

// Config is the explicit run configuration handed to the orchestrator;
// nothing is compiled in, so tests can point it at temp trees.
type Config struct {
	Root        string
	BackupName  string
	DBPath      string
	ReportPath  string
	Incremental bool
	Profile     Profile
	Quiet       bool // suppress progress bar and summary (tests)
}

// Counters accumulates per-unit outcomes. Monotonic; the final state is
// the summary report.
type Counters struct {
	Processed int // media files carried through the pipeline
	Updated   int // metadata rewrites accepted by the tool
	Failed    int // rewrites the tool rejected
	JSONFound int // sidecars discovered outside the backup area
	JSONMoved int // sidecars relocated into the backup area
	Orphans   int // sidecars no media file claimed
}

// run drives the whole batch: walk, pair, resolve, write, archive,
// count. Every per-unit failure degrades to a counter or an inline
// warning; nothing aborts the batch.
func run(ctx context.Context, cfg Config, runner metadata.Runner) Counters {
	var counters Counters

	backupRoot, err := ensureBackupRoot(cfg.Root, cfg.BackupName)
	if err != nil {
		color.New(color.FgRed).Printf("[FATAL] Could not create backup directory: %v\n", err)
		return counters
	}

	if removed := removeExifToolTemps(cfg.Root); removed > 0 && !cfg.Quiet {
		fmt.Printf("Removed %d temporary _exiftool_tmp files.\n", removed)
	}

	db := initDB(cfg.DBPath)
	defer db.Close()

	startTime := time.Now()

	listings, walkErrors := collectListings(cfg.Root, cfg.BackupName)

	// One progress tick per media file plus one per sidecar; a consumed
	// sidecar ticks when it is archived alongside its media file.
	totalUnits := 0
	for _, listing := range listings {
		for _, name := range listing.names {
			if isTempFile(name) {
				continue
			}
			if isSidecarName(name) || metadata.IsMedia(name) {
				totalUnits++
			}
		}
	}

	var bar *progressbar.ProgressBar
	if !cfg.Quiet {
		bar = progressbar.NewOptions(
			totalUnits,
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	tick := func() {
		if bar != nil {
			bar.Add(1)
		}
	}
	describe := func(name string) {
		if bar != nil {
			bar.Describe(truncateName(name, 40))
		}
	}

	resolver := metadata.NewResolver(runner, cfg.Profile.VideoFallback)
	writer := metadata.NewWriter(runner)

	var errorList []string
	var updatedFiles [][2]string // [path, "date (provenance)"] for the HTML report
	var failedFiles []string
	var orphanFiles []string

	interrupted := false

walk:
	for _, listing := range listings {
		var mediaNames, jsonNames []string
		for _, name := range listing.names {
			if isTempFile(name) {
				continue
			}
			switch {
			case isSidecarName(name):
				jsonNames = append(jsonNames, name)
			case metadata.IsMedia(name):
				mediaNames = append(mediaNames, name)
			}
		}
		counters.JSONFound += len(jsonNames)
		consumed := make(map[string]bool)

		for _, name := range mediaNames {
			if ctx.Err() != nil {
				interrupted = true
				break walk
			}
			mediaPath := filepath.Join(listing.path, name)
			describe(name)

			if cfg.Incremental && mediaAlreadyUpdated(db, mediaPath) {
				counters.Processed++
				tick()
				continue
			}

			// Matching is directory-local and each sidecar is consumed
			// at most once, in listing order.
			var candidates []string
			for _, jsonName := range jsonNames {
				if !consumed[jsonName] {
					candidates = append(candidates, jsonName)
				}
			}
			sidecarName, _ := match.FindSidecar(name, candidates, cfg.Profile.ReducedMatching)

			var sc *metadata.Sidecar
			var sidecarPath string
			if sidecarName != "" {
				consumed[sidecarName] = true
				sidecarPath = filepath.Join(listing.path, sidecarName)
				sc, err = metadata.ParseSidecar(sidecarPath)
				if err != nil {
					errorList = append(errorList, fmt.Sprintf("%s: %v", sidecarPath, err))
					sc = nil
				}
			}

			date, provenance := resolver.Resolve(mediaPath, sc)
			description := ""
			var geo *metadata.Geo
			if sc != nil {
				description = sc.Description
				geo = sc.Geo
			}

			status := statusUpdated
			if err := writer.Apply(mediaPath, date, description, geo); err != nil {
				status = statusFailed
				counters.Failed++
				failedFiles = append(failedFiles, fmt.Sprintf("%s: %v", mediaPath, err))
			} else {
				counters.Updated++
				updatedFiles = append(updatedFiles, [2]string{
					mediaPath,
					fmt.Sprintf("%s (%s)", metadata.FormatExifDate(date), provenance),
				})
			}
			recordMedia(db, mediaPath, sidecarPath, metadata.FormatExifDate(date), provenance.String(), status)
			counters.Processed++
			tick()

			if sidecarPath != "" {
				if _, err := archiveSidecar(sidecarPath, cfg.Root, backupRoot, cfg.Profile.MirrorBackup); err != nil {
					if !cfg.Quiet {
						color.New(color.FgYellow).Printf("\nWarning: could not move %s: %v\n", sidecarPath, err)
					}
					errorList = append(errorList, fmt.Sprintf("%s: move failed: %v", sidecarPath, err))
				} else {
					counters.JSONMoved++
				}
				tick()
			}
		}

		// Leftover sidecars are orphans: archived without any metadata
		// writes attributable to them.
		for _, name := range jsonNames {
			if consumed[name] {
				continue
			}
			if ctx.Err() != nil {
				interrupted = true
				break walk
			}
			sidecarPath := filepath.Join(listing.path, name)
			counters.Orphans++
			orphanFiles = append(orphanFiles, sidecarPath)
			if _, err := archiveSidecar(sidecarPath, cfg.Root, backupRoot, cfg.Profile.MirrorBackup); err != nil {
				if !cfg.Quiet {
					color.New(color.FgYellow).Printf("\nWarning: could not move %s: %v\n", sidecarPath, err)
				}
				errorList = append(errorList, fmt.Sprintf("%s: move failed: %v", sidecarPath, err))
			} else {
				counters.JSONMoved++
			}
			tick()
		}
	}

	for _, walkErr := range walkErrors {
		errorList = append(errorList, fmt.Sprintf("walk error: %v", walkErr))
	}

	totalTime := time.Since(startTime)

	if cfg.ReportPath != "" {
		writeHTMLReport(cfg.ReportPath, updatedFiles, failedFiles, orphanFiles, errorList, counters, totalTime)
	}

	if !cfg.Quiet {
		printSummary(counters, backupRoot, cfg.ReportPath, errorList, interrupted)
	}
	return counters
}

func isSidecarName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max]
}

func printSummary(counters Counters, backupRoot, reportPath string, errorList []string, interrupted bool) {
	fmt.Println()
	if interrupted {
		color.New(color.FgRed, color.Bold).Println("Interrupted. Partial results below; re-running resumes safely.")
	}
	color.New(color.FgCyan, color.Bold).Println("=== Summary ===")
	color.New(color.FgGreen).Printf("Updated: %d, ", counters.Updated)
	color.New(color.FgRed).Printf("Failed: %d, ", counters.Failed)
	fmt.Printf("Processed: %d\n", counters.Processed)
	color.New(color.FgYellow).Printf("Sidecars found: %d, moved: %d, orphans: %d\n",
		counters.JSONFound, counters.JSONMoved, counters.Orphans)
	fmt.Printf("Backup area: %s\n", backupRoot)
	if len(errorList) > 0 {
		color.New(color.FgRed).Printf("Warnings/errors: %d (see report)\n", len(errorList))
	}
	if reportPath != "" {
		reportAbs, err := filepath.Abs(reportPath)
		if err == nil {
			link := fmt.Sprintf("file://%s", reportAbs)
			// ANSI hyperlink: \x1b]8;;<url>\x1b\\<text>\x1b]8;;\x1b\\
			ansiLink := fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", link, link)
			color.New(color.FgCyan).Printf("HTML report: %s\n", ansiLink)
		} else {
			color.New(color.FgCyan).Printf("HTML report: %s\n", reportPath)
		}
	}
}
