package metadata

import (
	"os"
	"regexp"
	"strings"
	"time"
)

// Provenance identifies which tier of the fallback chain produced a
// resolved date.
type Provenance int

const (
	ProvenanceSidecar Provenance = iota
	ProvenanceVideoTags
	ProvenanceModTime
	ProvenanceNow
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceSidecar:
		return "sidecar"
	case ProvenanceVideoTags:
		return "video metadata"
	case ProvenanceModTime:
		return "filesystem mtime"
	case ProvenanceNow:
		return "current time"
	default:
		return "unknown"
	}
}

// ExifDateFormat is the tag value layout the external tool accepts.
const ExifDateFormat = "2006:01:02 15:04:05"

// Embedded video date tags, most specific first.
var videoDateTags = []string{"CreationDate", "MediaCreateDate", "TrackCreateDate"}

var videoDateLayouts = []string{
	"2006:01:02 15:04:05-07:00",
	ExifDateFormat,
}

var leadingDateRe = regexp.MustCompile(`\d{4}:\d{2}:\d{2} \d{2}:\d{2}:\d{2}`)

// Resolver produces a single authoritative capture instant per media
// file via an ordered fallback chain: sidecar timestamp, embedded video
// dates, filesystem mtime, current wall clock. It is total: Resolve
// never fails.
type Resolver struct {
	runner        Runner
	videoFallback bool
	now           func() time.Time
}

// NewResolver returns a resolver using runner for embedded video date
// reads. videoFallback disables that tier for the reduced profile.
func NewResolver(runner Runner, videoFallback bool) *Resolver {
	return &Resolver{runner: runner, videoFallback: videoFallback, now: time.Now}
}

// Resolve returns the capture instant for mediaPath and where it came
// from. sc may be nil when no sidecar matched. Failures within a tier
// are silent; the next tier is expected to succeed.
func (r *Resolver) Resolve(mediaPath string, sc *Sidecar) (time.Time, Provenance) {
	if sc != nil {
		if t, ok := sc.TakenTime(); ok {
			return t, ProvenanceSidecar
		}
	}
	if r.videoFallback && IsVideo(mediaPath) {
		if t, ok := r.videoDate(mediaPath); ok {
			return t, ProvenanceVideoTags
		}
	}
	if info, err := os.Stat(mediaPath); err == nil {
		return info.ModTime(), ProvenanceModTime
	}
	return r.now(), ProvenanceNow
}

// videoDate queries the embedded creation tags one at a time and parses
// the first line of output. Tag order matters: the container-level
// creation date outranks media- and track-level dates.
func (r *Resolver) videoDate(path string) (time.Time, bool) {
	for _, tag := range videoDateTags {
		code, stdout, _ := r.runner.Run("-s3", "-"+tag, path)
		if code != 0 {
			continue
		}
		line := firstLine(stdout)
		if line == "" {
			continue
		}
		for _, layout := range videoDateLayouts {
			if t, err := time.Parse(layout, line); err == nil {
				return t, true
			}
		}
		// Values sometimes carry trailing qualifiers; salvage the
		// leading date pattern if there is one.
		if m := leadingDateRe.FindString(line); m != "" {
			if t, err := time.Parse(ExifDateFormat, m); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// FormatExifDate renders t as a tag value. Aware instants are converted
// to UTC and the offset discarded, never reinterpreted into local time.
func FormatExifDate(t time.Time) string {
	return t.UTC().Format(ExifDateFormat)
}
