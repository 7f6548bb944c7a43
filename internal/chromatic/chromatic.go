// Package chromatic implements spec §4.E: secondary dominants, borrowed
// chords and chromatic mediants.
package chromatic

import (
	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// SecondaryDominant is spec §3.1's `{chord, target, roman}` tuple.
type SecondaryDominant struct {
	ChordIndex   int
	TargetDegree int // 0-indexed scale degree of the chord it tonicizes
	Roman        string
}

// BorrowedChord names a chord drawn from the parallel mode.
type BorrowedChord struct {
	ChordIndex int
	Roman      string
}

// ChromaticMediant names a chord a third away from the tonic sharing
// exactly one common tone with the tonic triad.
type ChromaticMediant struct {
	ChordIndex int
	Roman      string
}

// Result is the chromatic analyzer's output, spec §4.E's ChromaticResult.
type Result struct {
	SecondaryDominants []SecondaryDominant
	BorrowedChords     []BorrowedChord
	ChromaticMediants  []ChromaticMediant
}

// Analyze implements analyze_chromatic(chords, key), spec §4.E.
func Analyze(chords []chordparser.Chord, key theory.Key) Result {
	var result Result

	degrees := theory.ScaleDegrees(key.Tonic.PitchClass(), key.Mode)

	for i, c := range chords {
		if isNonDiatonic(c, key) {
			if target, ok := secondaryDominantTarget(c, degrees, key); ok {
				marker := "V"
				if c.Quality == theory.Diminished {
					marker = "vii°"
				} else if c.Seventh != theory.NoSeventh {
					marker = "V7"
				}
				result.SecondaryDominants = append(result.SecondaryDominants, SecondaryDominant{
					ChordIndex:   i,
					TargetDegree: target,
					Roman:        marker + "/" + theory.RomanNumeralCase(target, theory.MinorTriad, theory.NoSeventh),
				})
				continue
			}
			if roman, ok := borrowedChordRoman(c, key); ok {
				result.BorrowedChords = append(result.BorrowedChords, BorrowedChord{ChordIndex: i, Roman: roman})
				continue
			}
		}
		if roman, ok := chromaticMediantRoman(c, key); ok {
			result.ChromaticMediants = append(result.ChromaticMediants, ChromaticMediant{ChordIndex: i, Roman: roman})
		}
	}

	return result
}

// isNonDiatonic reports whether any tone of the chord (not just its root)
// falls outside the key's diatonic collection. A secondary dominant's root
// is frequently itself diatonic (e.g. V/ii's root is the key's own sixth
// degree) — it is the raised third that betrays the borrowing.
func isNonDiatonic(c chordparser.Chord, key theory.Key) bool {
	for _, pc := range c.PitchClasses() {
		if !key.Contains(pc) {
			return true
		}
	}
	return false
}

// secondaryDominantTarget implements spec §4.E's secondary-dominant rule:
// a major or dominant-7 chord a perfect fifth above a diatonic target is
// V/<target>. A diminished chord (triad or seventh) a half-step below the target is
// accepted as a leading-tone dominant (vii°/x).
func secondaryDominantTarget(c chordparser.Chord, degrees [7]theory.PitchClass, key theory.Key) (int, bool) {
	isDominantShape := c.Quality == theory.MajorTriad && (c.Seventh == theory.NoSeventh || c.Seventh == theory.MinorSeventh)
	isLeadingToneShape := c.Quality == theory.Diminished

	for degIdx, target := range degrees {
		if degIdx == 0 {
			continue // V/I is just V, the primary dominant, not secondary
		}
		if isDominantShape {
			fifthAboveTarget := theory.PitchClass(((int(target) + 7) % 12 + 12) % 12)
			if c.Root.PitchClass() == fifthAboveTarget {
				return degIdx, true
			}
		}
		if isLeadingToneShape {
			halfStepBelowTarget := theory.PitchClass(((int(target) - 1) % 12 + 12) % 12)
			if c.Root.PitchClass() == halfStepBelowTarget {
				return degIdx, true
			}
		}
	}
	return 0, false
}

// borrowedChordRoman implements spec §4.E's borrowed-chord rule: diatonic
// to the parallel mode, not diatonic to the current key.
func borrowedChordRoman(c chordparser.Chord, key theory.Key) (string, bool) {
	var parallel theory.Key
	if key.Mode == theory.Major {
		parallel = theory.NewMinorKey(key.Tonic)
	} else {
		parallel = theory.NewMajorKey(key.Tonic)
	}
	if !parallel.Contains(c.Root.PitchClass()) {
		return "", false
	}
	degree, ok := parallel.Degree(c.Root.PitchClass())
	if !ok {
		return "", false
	}
	roman := theory.RomanNumeralCase(degree, c.Quality, c.Seventh)
	// Mark the borrowing with a b/# prefix when the borrowed degree's
	// pitch class differs from the current key's own same-numbered degree.
	currentDegrees := theory.ScaleDegrees(key.Tonic.PitchClass(), key.Mode)
	if currentDegrees[degree] != c.Root.PitchClass() {
		diff := ((int(c.Root.PitchClass()) - int(currentDegrees[degree])) % 12 + 12) % 12
		if diff == 11 {
			roman = "b" + roman
		} else if diff == 1 {
			roman = "#" + roman
		}
	}
	return roman, true
}

// chromaticMediantRoman implements spec §4.E's chromatic-mediant rule: a
// root a major or minor third from the tonic, whose triad shares exactly
// one common tone with the tonic triad.
func chromaticMediantRoman(c chordparser.Chord, key theory.Key) (string, bool) {
	offset := ((int(c.Root.PitchClass()) - int(key.Tonic.PitchClass())) % 12 + 12) % 12
	if offset != 3 && offset != 4 && offset != 8 && offset != 9 {
		return "", false
	}
	tonicTriad := chordTones(key.Tonic.PitchClass(), tonicTriadQuality(key.Mode))
	candidateTriad := chordTones(c.Root.PitchClass(), c.Quality)
	common := 0
	for pc := range candidateTriad {
		if tonicTriad[pc] {
			common++
		}
	}
	if common != 1 {
		return "", false
	}
	label := "III"
	switch offset {
	case 8:
		label = "bVI"
	case 3:
		label = "bIII"
	case 9:
		label = "VI"
	}
	return label, true
}

func tonicTriadQuality(mode theory.Mode) theory.Quality {
	if mode.IsMinorQuality() {
		return theory.MinorTriad
	}
	return theory.MajorTriad
}

func chordTones(root theory.PitchClass, quality theory.Quality) map[theory.PitchClass]bool {
	out := make(map[theory.PitchClass]bool)
	for _, offset := range theory.TriadIntervals[quality] {
		out[theory.PitchClass(((int(root)+offset)%12+12)%12)] = true
	}
	return out
}
