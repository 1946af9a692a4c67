// Tests for filename normalization and tiered sidecar matching
package match

import (
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"IMG_001.JPG", "Café.JPG", "café.jpg", "ÄÖÜ.heic"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCaseAndAccentInsensitive(t *testing.T) {
	// Composed é vs e + combining acute, plus a case difference.
	if Normalize("Café.JPG") != Normalize("café.jpg") {
		t.Errorf("expected composed and decomposed forms to normalize equal: %q vs %q",
			Normalize("Café.JPG"), Normalize("café.jpg"))
	}
	if Normalize("IMG_001.JPG") != Normalize("img_001.jpg") {
		t.Error("expected case-folded forms to normalize equal")
	}
}

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"IMG_1 (2)", "IMG_1"},
		{"IMG_1(2)", "IMG_1"},
		{"IMG_1 (2) ", "IMG_1"},
		{"IMG_1", "IMG_1"},
		{"holiday (10)", "holiday"},
		{"no(t) a suffix", "no(t) a suffix"},
		{"(1) leading", "(1) leading"},
	}
	for _, tc := range tests {
		if got := StripSuffix(tc.in); got != tc.expected {
			t.Errorf("StripSuffix(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestFindSidecarExactWithExtension(t *testing.T) {
	candidates := []string{"other.json", "IMG_001.JPG.json"}
	name, tier := FindSidecar("IMG_001.JPG", candidates, false)
	if name != "IMG_001.JPG.json" || tier != TierExactFull {
		t.Errorf("expected IMG_001.JPG.json at exact-with-extension tier, got %q (%s)", name, tier)
	}
}

func TestFindSidecarExactWithoutExtension(t *testing.T) {
	candidates := []string{"IMG_001.json"}
	name, tier := FindSidecar("IMG_001.JPG", candidates, false)
	if name != "IMG_001.json" || tier != TierExactStem {
		t.Errorf("expected IMG_001.json at exact-without-extension tier, got %q (%s)", name, tier)
	}
}

// A weak match earlier in listing order must never beat a stronger match
// found later: each tier scans the whole candidate set before falling
// through.
func TestFindSidecarTierOrdering(t *testing.T) {
	candidates := []string{
		"IMG.json",         // inclusion match for IMG_001.JPG
		"IMG_001.JPG.json", // exact match, later in listing order
	}
	name, tier := FindSidecar("IMG_001.JPG", candidates, false)
	if name != "IMG_001.JPG.json" || tier != TierExactFull {
		t.Errorf("exact match should win over earlier inclusion match, got %q (%s)", name, tier)
	}
}

func TestFindSidecarDuplicateSuffix(t *testing.T) {
	// Sidecar carries the "(1)" duplicate marker, media does not.
	name, tier := FindSidecar("IMG_001.JPG", []string{"IMG_001.JPG (1).json"}, false)
	if name != "IMG_001.JPG (1).json" || tier != TierSuffix {
		t.Errorf("expected suffix-normalized match, got %q (%s)", name, tier)
	}

	// And the other way around: media has the marker.
	name, tier = FindSidecar("IMG_001 (1).JPG", []string{"IMG_001.json"}, false)
	if name != "IMG_001.json" || tier != TierSuffix {
		t.Errorf("expected suffix-normalized match for suffixed media, got %q (%s)", name, tier)
	}
}

func TestFindSidecarPartialInclusion(t *testing.T) {
	name, tier := FindSidecar("IMG_001_edited.JPG", []string{"IMG_001_edited.JPG.suppl.json"}, false)
	if name == "" || tier != TierInclusion {
		t.Errorf("expected partial-inclusion match, got %q (%s)", name, tier)
	}
}

func TestFindSidecarAccentedSidecar(t *testing.T) {
	// Decomposed accent in the sidecar name, composed in the media name.
	name, tier := FindSidecar("Café.JPG", []string{"café.jpg.json"}, false)
	if name == "" || tier != TierExactFull {
		t.Errorf("expected accent-insensitive exact match, got %q (%s)", name, tier)
	}
}

func TestFindSidecarNoMatch(t *testing.T) {
	name, tier := FindSidecar("IMG_001.JPG", []string{"unrelated.json"}, false)
	if name != "" || tier != TierNone {
		t.Errorf("expected no match, got %q (%s)", name, tier)
	}
	name, tier = FindSidecar("IMG_001.JPG", nil, false)
	if name != "" || tier != TierNone {
		t.Errorf("expected no match for empty candidate set, got %q (%s)", name, tier)
	}
}

func TestFindSidecarReducedProfileSkipsSuffixTier(t *testing.T) {
	// "IMG_001.JPG (1).json" strips to an exact form but the reduced
	// profile does not run the suffix tier. It still matches by
	// inclusion because the stripped sidecar base contains the name.
	name, tier := FindSidecar("IMG_001.JPG", []string{"IMG_001.JPG (1).json"}, true)
	if name == "" || tier != TierInclusion {
		t.Errorf("reduced profile should fall through to inclusion, got %q (%s)", name, tier)
	}
}

func TestFindSidecarDeterministicTieBreak(t *testing.T) {
	// Two inclusion-tier candidates: the first in listing order wins.
	candidates := []string{"IMG.json", "IMG_0.json"}
	for i := 0; i < 5; i++ {
		name, _ := FindSidecar("IMG_001.JPG", candidates, false)
		if name != "IMG.json" {
			t.Fatalf("tie-break not deterministic: got %q", name)
		}
	}
}
