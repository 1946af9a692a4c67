package metadata

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner abstracts the external metadata tool: it takes one argument set
// (tags plus the target path) and reports the exit code with captured
// output. Tests substitute a double that records invocations and returns
// canned exit codes.
type Runner interface {
	Run(args ...string) (exitCode int, stdout string, stderr string)
}

// ExifTool runs the exiftool binary as a subprocess.
type ExifTool struct {
	Bin string
}

// NewExifTool returns a runner for the exiftool found in PATH.
func NewExifTool() *ExifTool {
	return &ExifTool{Bin: "exiftool"}
}

// Available reports whether the binary can be located at all. When it
// can't, the whole run is pointless and callers abort.
func (e *ExifTool) Available() bool {
	_, err := exec.LookPath(e.Bin)
	return err == nil
}

// Run executes one exiftool invocation. Output is captured for
// diagnostics only; success is the exit code alone.
func (e *ExifTool) Run(args ...string) (int, string, string) {
	cmd := exec.Command(e.Bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			// Could not even start the process.
			code = -1
		}
	}
	return code, stdout.String(), stderr.String()
}

// photoExtensions and videoExtensions define the recognized media
// classes, case-insensitive.
var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".heif": true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// IsPhoto reports whether path has a recognized photo extension.
func IsPhoto(path string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsVideo reports whether path has a recognized video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsMedia reports whether path is a photo or video candidate.
func IsMedia(path string) bool {
	return IsPhoto(path) || IsVideo(path)
}
