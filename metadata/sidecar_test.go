// Tests for best-effort sidecar JSON parsing
package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSidecar(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sidecar: %v", err)
	}
	return path
}

func TestParseSidecarStringTimestamp(t *testing.T) {
	path := writeSidecar(t, "a.json", `{"photoTakenTime":{"timestamp":"1609459200"}}`)
	sc, err := ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	got, ok := sc.TakenTime()
	if !ok {
		t.Fatal("expected a timestamp")
	}
	expected := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestParseSidecarNumericTimestamp(t *testing.T) {
	path := writeSidecar(t, "a.json", `{"creationTime":{"timestamp":1609459200}}`)
	sc, err := ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	if _, ok := sc.TakenTime(); !ok {
		t.Error("numeric timestamp should parse")
	}
}

// contentCreateTime outranks photoTakenTime, which outranks creationTime.
func TestTakenTimeKeyPriority(t *testing.T) {
	path := writeSidecar(t, "a.json",
		`{"creationTime":{"timestamp":"100"},"photoTakenTime":{"timestamp":"200"},"contentCreateTime":{"timestamp":"300"}}`)
	sc, err := ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	got, ok := sc.TakenTime()
	if !ok || got.Unix() != 300 {
		t.Errorf("contentCreateTime should win, got %v", got.Unix())
	}

	path = writeSidecar(t, "b.json",
		`{"creationTime":{"timestamp":"100"},"photoTakenTime":{"timestamp":"200"}}`)
	sc, err = ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	got, ok = sc.TakenTime()
	if !ok || got.Unix() != 200 {
		t.Errorf("photoTakenTime should outrank creationTime, got %v", got.Unix())
	}
}

func TestTakenTimeUnparsableFallsToNextKey(t *testing.T) {
	path := writeSidecar(t, "a.json",
		`{"photoTakenTime":{"timestamp":"not-a-number"},"creationTime":{"timestamp":"500"}}`)
	sc, err := ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	got, ok := sc.TakenTime()
	if !ok || got.Unix() != 500 {
		t.Errorf("unparsable key should count as missing, got %v ok=%v", got.Unix(), ok)
	}
}

func TestTakenTimeMissing(t *testing.T) {
	path := writeSidecar(t, "a.json", `{"description":"no dates here"}`)
	sc, err := ParseSidecar(path)
	if err != nil {
		t.Fatalf("ParseSidecar failed: %v", err)
	}
	if _, ok := sc.TakenTime(); ok {
		t.Error("expected no timestamp")
	}
	if sc.Description != "no dates here" {
		t.Errorf("description not parsed: %q", sc.Description)
	}
}

func TestParseSidecarMalformed(t *testing.T) {
	path := writeSidecar(t, "a.json", `{broken`)
	if _, err := ParseSidecar(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ParseSidecar(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGeoZeroTreatedAsUnset(t *testing.T) {
	var nilGeo *Geo
	if nilGeo.HasCoordinates() || nilGeo.HasAltitude() {
		t.Error("nil geo should have nothing")
	}

	tests := []struct {
		geo       Geo
		hasCoords bool
		hasAlt    bool
	}{
		{Geo{Latitude: 48.1, Longitude: 11.5, Altitude: 520}, true, true},
		{Geo{Latitude: 48.1, Longitude: 11.5}, true, false},
		{Geo{Latitude: 48.1, Longitude: 0}, false, false},
		{Geo{Latitude: 0, Longitude: 0, Altitude: 0}, false, false},
	}
	for _, tc := range tests {
		if tc.geo.HasCoordinates() != tc.hasCoords {
			t.Errorf("HasCoordinates for %+v = %v, expected %v", tc.geo, tc.geo.HasCoordinates(), tc.hasCoords)
		}
		if tc.geo.HasAltitude() != tc.hasAlt {
			t.Errorf("HasAltitude for %+v = %v, expected %v", tc.geo, tc.geo.HasAltitude(), tc.hasAlt)
		}
	}
}
