package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Writer translates a resolved date plus optional description and GPS
// data into one external-tool invocation against a media file.
type Writer struct {
	runner Runner
}

// NewWriter returns a writer dispatching through runner.
func NewWriter(runner Runner) *Writer {
	return &Writer{runner: runner}
}

// Apply rewrites mediaPath's date tags in place; photos get the unified
// AllDates field, videos get the container- and track-level creation
// fields instead. Success is defined solely by the tool's exit status;
// a field value the tool rejects surfaces as an error here, not a panic.
func (w *Writer) Apply(mediaPath string, date time.Time, description string, geo *Geo) error {
	value := FormatExifDate(date)
	args := []string{
		"-overwrite_original",
		"-ignoreMinorErrors",
		"-FileModifyDate=" + value,
		"-FileCreateDate=" + value,
	}
	switch {
	case IsPhoto(mediaPath):
		args = append(args, "-AllDates="+value)
	case IsVideo(mediaPath):
		args = append(args,
			"-CreateDate="+value,
			"-MediaCreateDate="+value,
			"-TrackCreateDate="+value,
		)
	}
	if description != "" {
		args = append(args, "-Description="+description)
	}
	if geo.HasCoordinates() {
		args = append(args,
			"-GPSLatitude="+formatCoord(geo.Latitude),
			"-GPSLongitude="+formatCoord(geo.Longitude),
		)
		if geo.HasAltitude() {
			args = append(args, "-GPSAltitude="+formatCoord(geo.Altitude))
		}
	}
	args = append(args, mediaPath)

	code, _, stderr := w.runner.Run(args...)
	if code != 0 {
		return fmt.Errorf("metadata tool exited %d: %s", code, strings.TrimSpace(stderr))
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
