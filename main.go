// sidecarfix: repairs capture dates on exported photo/video libraries from JSON sidecars.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sidecarfix/metadata"
)

func main() {
	var rootDir, backupName, dbPath, reportPath, profileName string
	var incremental bool
	var interactive bool
	var scanOnly bool

	var rootCmd = &cobra.Command{
		Use:   "sidecarfix",
		Short: "Repair capture dates on exported photo/video libraries",
		Long: `sidecarfix repairs timestamp and descriptive metadata on photo/video
libraries exported by consumer photo services, where capture dates only
survive in JSON sidecar files.

For every media file it resolves the capture instant - sidecar JSON
first, then embedded video metadata, then filesystem mtime - and writes
it into the file's native metadata via exiftool, together with the
description and GPS coordinates when present. Consumed sidecars are
archived into a hidden .json_backup area, so re-running on a partially
completed tree is safe.

Requires exiftool in PATH.
`,
		Example: `  # Repair a library in place
  sidecarfix --root ~/Takeout/Photos

  # Legacy behavior: exact/inclusion matching only, flat backup area
  sidecarfix --root ~/Takeout/Photos --profile simple

  # Audit only: report photos missing an EXIF date, change nothing
  sidecarfix --root ~/Takeout/Photos --scan
`,
		Run: func(cmd *cobra.Command, args []string) {
			// No arguments at all defaults to interactive mode.
			if len(os.Args) == 1 {
				interactive = true
			}
			if interactive {
				rootDir, profileName = interactivePrompt(true)
			}
			if rootDir == "" {
				fmt.Fprintln(os.Stderr, "[FATAL] Library root directory is required (--root)")
				os.Exit(1)
			}
			checkDirExists(rootDir, "Library root")

			if scanOnly {
				runScan(rootDir, backupName)
				return
			}

			tool := metadata.NewExifTool()
			if !tool.Available() {
				fmt.Fprintln(os.Stderr, "[FATAL] Required tool 'exiftool' not found in PATH. Please install exiftool.")
				os.Exit(1)
			}

			profile, err := profileByName(profileName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
				os.Exit(1)
			}
			if dbPath == "" {
				dbPath = filepath.Join(rootDir, backupName, "sidecarfix.db")
			}

			// Handle interrupts for graceful shutdown using context
			ctx, cancel := context.WithCancel(context.Background())
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-interrupt
				color.New(color.FgRed, color.Bold).Println("\nInterrupted. Finishing the current file and exiting cleanly.")
				cancel()
			}()

			run(ctx, Config{
				Root:        rootDir,
				BackupName:  backupName,
				DBPath:      dbPath,
				ReportPath:  reportPath,
				Incremental: incremental,
				Profile:     profile,
			}, tool)
		},
	}

	rootCmd.Flags().StringVarP(&rootDir, "root", "r", "", "Library root directory")
	rootCmd.Flags().StringVar(&backupName, "backup-name", defaultBackupName, "Name of the hidden backup directory")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Path to the run journal database")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Path to an HTML report (omit to skip)")
	rootCmd.Flags().StringVar(&profileName, "profile", "full", "Engine profile: full or simple")
	rootCmd.Flags().BoolVar(&incremental, "incremental", true, "Skip media already updated in a previous run")
	rootCmd.Flags().BoolVar(&interactive, "interactive", false, "Run in interactive mode (prompts for input)")
	rootCmd.Flags().BoolVar(&scanOnly, "scan", false, "Report photos missing an EXIF date, change nothing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
