// Package metadata resolves capture dates for media files and writes
// them back through the external metadata tool.
package metadata

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

// Geo carries the coordinates recorded in a sidecar. The export format
// writes 0 for "unknown", so exact zeroes are treated as unset rather
// than a real reading; this matches the source convention and is a known
// limitation for files genuinely captured at 0,0.
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// HasCoordinates reports whether latitude and longitude both carry real
// readings.
func (g *Geo) HasCoordinates() bool {
	return g != nil && g.Latitude != 0 && g.Longitude != 0
}

// HasAltitude reports whether the altitude carries a real reading.
func (g *Geo) HasAltitude() bool {
	return g != nil && g.Altitude != 0
}

type epochField struct {
	// Exports emit the timestamp as a string of epoch seconds, but some
	// variants use a bare number.
	Timestamp any `json:"timestamp"`
}

// Sidecar is the parsed payload of an exported JSON sidecar. All fields
// are optional; lookup is best-effort with no schema validation.
type Sidecar struct {
	Path        string
	Description string `json:"description"`
	Geo         *Geo   `json:"geoData"`

	ContentCreateTime *epochField `json:"contentCreateTime"`
	PhotoTakenTime    *epochField `json:"photoTakenTime"`
	CreationTime      *epochField `json:"creationTime"`
}

// ParseSidecar reads and decodes the sidecar at path. Unreadable or
// malformed JSON is an error for the caller to log and count; it never
// aborts a batch.
func ParseSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	sc.Path = path
	return &sc, nil
}

// TakenTime returns the capture instant recorded in the sidecar, trying
// contentCreateTime, photoTakenTime and creationTime in that order. A
// key that is present but unparsable counts as missing.
func (s *Sidecar) TakenTime() (time.Time, bool) {
	for _, field := range []*epochField{s.ContentCreateTime, s.PhotoTakenTime, s.CreationTime} {
		if secs, ok := epochSeconds(field); ok {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

func epochSeconds(field *epochField) (int64, bool) {
	if field == nil {
		return 0, false
	}
	switch v := field.Timestamp.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
