// sidecarfix: interactive prompts and console banner
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sqweek/dialog"
)

// printBanner prints a colored ASCII art banner for sidecarfix
func printBanner() {
	banner := `

	███████╗██╗██████╗ ███████╗ ██████╗ █████╗ ██████╗ ███████╗██╗██╗  ██╗
	██╔════╝██║██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝██║╚██╗██╔╝
	███████╗██║██║  ██║█████╗  ██║     ███████║██████╔╝█████╗  ██║ ╚███╔╝
	╚════██║██║██║  ██║██╔══╝  ██║     ██╔══██║██╔══██╗██╔══╝  ██║ ██╔██╗
	███████║██║██████╔╝███████╗╚██████╗██║  ██║██║  ██║██║     ██║██╔╝ ██╗
	╚══════╝╚═╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝  ╚═╝

`
	color.New(color.FgBlack, color.Bold).Println(banner)
}

// isGUIAvailable checks if a GUI toolkit is available without showing errors
func isGUIAvailable() bool {
	defer func() {
		recover() // Catch any panics from GUI initialization
	}()
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	return true
}

// guiDirectoryPicker opens a native directory selection dialog
func guiDirectoryPicker(title string) (string, error) {
	defer func() {
		recover() // Catch any panics from GUI operations
	}()

	directory, err := dialog.Directory().Title(title).Browse()
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(directory); err != nil || !info.IsDir() {
		return "", err
	}
	return directory, nil
}

// interactivePrompt asks for the library root and profile, showing the
// last run recorded in the journal when one exists.
func interactivePrompt(useGUI bool) (string, string) {
	printBanner()

	fmt.Println()
	color.New(color.FgCyan, color.Bold).Println("This tool repairs capture dates on exported photo libraries.")
	color.New(color.FgWhite).Println("   • Pairs each photo/video with its JSON sidecar")
	color.New(color.FgWhite).Println("   • Writes the capture date (plus description/GPS) into the file")
	color.New(color.FgWhite).Println("   • Archives consumed sidecars into a hidden backup area")
	fmt.Println()

	var rootDir string
	var err error

	if useGUI && isGUIAvailable() {
		color.New(color.FgBlue).Println("   Opening file picker for the library root...")
		rootDir, err = guiDirectoryPicker("Select Library Root")
		if err != nil {
			rootDir = ""
		}
	}

	if rootDir == "" {
		prompt := promptui.Prompt{
			Label: "Library root directory",
			Validate: func(input string) error {
				info, err := os.Stat(input)
				if err != nil || !info.IsDir() {
					return fmt.Errorf("not a valid directory")
				}
				return nil
			},
		}
		rootDir, err = prompt.Run()
		if err == promptui.ErrInterrupt {
			color.New(color.FgRed, color.Bold).Println("\nInterrupted during prompt. Exiting cleanly.")
			os.Exit(130)
		} else if err != nil {
			log.Fatalf("[FATAL] Root directory prompt failed: %v", err)
		}
	}

	// Show the previous run for this tree, if the journal exists.
	dbPath := filepath.Join(rootDir, defaultBackupName, "sidecarfix.db")
	if info, err := os.Stat(dbPath); err == nil && !info.IsDir() {
		db := initDB(dbPath)
		lastRun, err := getLastRunTime(db)
		journaled := countJournaled(db)
		db.Close()
		if err == nil && !lastRun.IsZero() {
			fmt.Println()
			color.New(color.FgCyan, color.Bold).Println("Previous run")
			color.New(color.FgGreen).Printf("   Last run: %s (%s ago)\n",
				lastRun.Format("2006-01-02 15:04:05"), time.Since(lastRun).Round(time.Minute))
			color.New(color.FgBlue).Printf("   Journal contains: %d media files\n", journaled)
		}
	}

	fmt.Println()
	profilePrompt := promptui.Select{
		Label: "Matching profile",
		Items: []string{"full (tiered matching, video fallback)", "simple (exact and inclusion matching only)"},
	}
	idx, _, err := profilePrompt.Run()
	if err == promptui.ErrInterrupt {
		color.New(color.FgRed, color.Bold).Println("\nInterrupted during prompt. Exiting cleanly.")
		os.Exit(130)
	} else if err != nil {
		log.Fatalf("[FATAL] Profile prompt failed: %v", err)
	}
	profile := "full"
	if idx == 1 {
		profile = "simple"
	}

	return rootDir, profile
}
