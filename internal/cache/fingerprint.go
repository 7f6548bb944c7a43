package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Fingerprint computes the cache key for a chord-progression analysis
// request, per spec §4.I: a hash of the normalized chord-symbol sequence,
// normalized parent key, pedagogical level, confidence threshold, and max
// alternatives. Normalization is uppercase root + flat-preferred
// accidentals + trimmed whitespace, matching spec's definition exactly.
func Fingerprint(chords []string, parentKey, pedagogicalLevel string, confidenceThreshold float64, maxAlternatives int) string {
	var b strings.Builder
	for i, c := range chords {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(NormalizeChordSymbol(c))
	}
	b.WriteByte('\x00')
	b.WriteString(NormalizeKeyText(parentKey))
	b.WriteByte('\x00')
	b.WriteString(pedagogicalLevel)
	b.WriteByte('\x00')
	fmt.Fprintf(&b, "%.4f", confidenceThreshold)
	b.WriteByte('\x00')
	fmt.Fprintf(&b, "%d", maxAlternatives)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// NormalizeChordSymbol applies the normalization spec §4.I requires for
// cache keys: uppercase root letter, flat-preferred accidental spelling,
// trimmed whitespace. It does not attempt full chord parsing — it is a
// syntactic normalization so that "C#m7" and "Dbm7" (different spellings
// the parser would treat as equivalent) hash identically without invoking
// the parser itself, keeping the cache package independent of chordparser.
func NormalizeChordSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = upperRune(r[0])

	sharpToFlat := map[rune]rune{'C': 'D', 'D': 'E', 'F': 'G', 'G': 'A', 'A': 'B'}
	if len(r) >= 2 && r[1] == '#' {
		if flatEquivalent, ok := sharpToFlat[r[0]]; ok {
			rest := string(r[2:])
			return string(flatEquivalent) + "b" + rest
		}
	}
	return string(r)
}

// NormalizeKeyText normalizes a human-readable parent-key option
// ("C major", "a minor"): trimmed and lower-cased as a whole.
func NormalizeKeyText(key string) string {
	s := strings.TrimSpace(key)
	if s == "" {
		return ""
	}
	return strings.ToLower(s)
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
