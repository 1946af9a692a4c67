// Package match pairs media files with their exported JSON sidecars.
//
// Export services rename files on the way out: duplicates pick up " (1)"
// markers, accents get re-encoded, case changes, and the sidecar may be
// named after the full filename ("IMG.JPG.json") or just the stem
// ("IMG.json"). Matching is therefore tiered, from exact to fuzzy, and
// always directory-local.
package match

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Tier identifies how strong a sidecar match is.
type Tier int

const (
	TierNone      Tier = iota
	TierExactFull      // sidecar base equals the full media filename ("name.ext.json")
	TierExactStem      // sidecar base equals the media filename without extension
	TierSuffix         // equal after stripping "(n)" duplicate markers
	TierInclusion      // one name contains the other (last resort)
)

func (t Tier) String() string {
	switch t {
	case TierExactFull:
		return "exact (with extension)"
	case TierExactStem:
		return "exact (without extension)"
	case TierSuffix:
		return "suffix-normalized"
	case TierInclusion:
		return "partial inclusion"
	default:
		return "none"
	}
}

// Normalize returns the canonical comparison key for a filename: Unicode
// NFC composition followed by case folding, so "Café.JPG" and a
// decomposed "café.jpg" compare equal. Idempotent.
func Normalize(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

var dupSuffixRe = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// StripSuffix removes a trailing parenthesized integer duplicate marker,
// so "IMG_1 (2)" collapses to "IMG_1". Names without the pattern are
// returned unchanged.
func StripSuffix(name string) string {
	return dupSuffixRe.ReplaceAllString(name, "")
}

// FindSidecar returns the best-matching sidecar for mediaName among the
// JSON files of the same directory, along with the tier that matched.
// Candidates are scanned a full tier at a time, so a weak match never
// preempts a stronger one appearing later in listing order; within a
// tier the first candidate in listing order wins. reduced limits
// matching to the exact and inclusion tiers.
//
// No match is not an error: the caller treats the media file as having
// no sidecar.
func FindSidecar(mediaName string, candidates []string, reduced bool) (string, Tier) {
	mediaFull := Normalize(mediaName)
	mediaStem := Normalize(strings.TrimSuffix(mediaName, filepath.Ext(mediaName)))

	type candidate struct {
		name string
		base string // normalized, ".json" removed
	}
	cands := make([]candidate, 0, len(candidates))
	for _, name := range candidates {
		base := name
		if strings.HasSuffix(strings.ToLower(name), ".json") {
			base = name[:len(name)-len(".json")]
		}
		cands = append(cands, candidate{name: name, base: Normalize(base)})
	}

	// Tier 1: sidecar named after the full media filename.
	for _, c := range cands {
		if c.base == mediaFull {
			return c.name, TierExactFull
		}
	}

	// Tier 2: sidecar named after the stem.
	for _, c := range cands {
		if c.base == mediaStem {
			return c.name, TierExactStem
		}
	}

	strippedFull := StripSuffix(mediaFull)
	strippedStem := StripSuffix(mediaStem)

	if !reduced {
		// Tier 3: "(n)" duplicate markers on either side.
		for _, c := range cands {
			stripped := StripSuffix(c.base)
			if stripped == strippedFull || stripped == strippedStem {
				return c.name, TierSuffix
			}
		}
	}

	// Tier 4: partial inclusion, either direction.
	for _, c := range cands {
		stripped := StripSuffix(c.base)
		if stripped == "" {
			continue
		}
		if strings.Contains(stripped, strippedFull) || strings.Contains(strippedFull, stripped) ||
			strings.Contains(stripped, strippedStem) || strings.Contains(strippedStem, stripped) {
			return c.name, TierInclusion
		}
	}

	return "", TierNone
}
