package interpretation

import (
	"strconv"
	"strings"

	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/chromatic"
	"github.com/zfogg/harmonic-analysis/internal/functional"
	"github.com/zfogg/harmonic-analysis/internal/modal"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// strongPatterns lists the Roman-numeral windows spec §4.G.2 calls
// "known strong functional patterns" along with their minor-key duals.
// Matching is on bare degree+case, ignoring inversion figures, sevenths
// and applied-chord slashes.
var strongPatterns = [][]string{
	{"I", "vi", "IV", "V"},
	{"I", "V", "vi", "IV"},
	{"ii", "V", "I"},
	{"I", "vi", "ii", "V"},
	{"vi", "IV", "I", "V"},
	// Minor-key duals.
	{"i", "VI", "iv", "v"},
	{"i", "v", "VI", "iv"},
	{"ii°", "v", "i"},
	{"i", "VI", "ii°", "v"},
	{"VI", "iv", "i", "v"},
}

// describe picks between a terse and an explanatory rendering of an
// evidence description depending on pedagogical level: advanced and
// intermediate readers get the terse form, beginner gets the longer one
// spelling out what the evidence actually means.
func describe(level PedagogicalLevel, terse, explanatory string) string {
	if level == Beginner {
		return explanatory
	}
	return terse
}

func bareRoman(roman string) string {
	// Strip inversion figures (trailing digits) and applied-chord targets.
	if idx := strings.Index(roman, "/"); idx >= 0 {
		roman = roman[:idx]
	}
	end := len(roman)
	for end > 0 && roman[end-1] >= '0' && roman[end-1] <= '9' {
		end--
	}
	return roman[:end]
}

// hasHarmonicMotion reports whether the progression touches more than one
// distinct root pitch class — a single chord held or repeated has no
// harmonic motion to analyze functionally.
func hasHarmonicMotion(romans []functional.RomanChord) bool {
	if len(romans) == 0 {
		return false
	}
	first := romans[0].Chord.Root.PitchClass()
	for _, r := range romans[1:] {
		if r.Chord.Root.PitchClass() != first {
			return true
		}
	}
	return false
}

// chordsHaveMotion is hasHarmonicMotion's counterpart for the modal
// analyzer, which carries raw chords rather than RomanChords.
func chordsHaveMotion(chords []chordparser.Chord) bool {
	if len(chords) == 0 {
		return false
	}
	first := chords[0].Root.PitchClass()
	for _, c := range chords[1:] {
		if c.Root.PitchClass() != first {
			return true
		}
	}
	return false
}

func matchesStrongPattern(romans []functional.RomanChord) bool {
	bare := make([]string, len(romans))
	for i, r := range romans {
		bare[i] = bareRoman(r.Roman)
	}
	for _, pattern := range strongPatterns {
		if len(pattern) > len(bare) {
			continue
		}
		for start := 0; start+len(pattern) <= len(bare); start++ {
			match := true
			for j, want := range pattern {
				if bare[start+j] != want {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// functionalEvidence implements spec §4.G.2's functional evidence sources.
// level controls how much explanatory text rides along on Description,
// spec.md's original pedagogical-level-driven verbosity (beginner readers
// get a fuller sentence, advanced/intermediate get the terse label).
func functionalEvidence(fr functional.Result, level PedagogicalLevel) []Evidence {
	if !hasHarmonicMotion(fr.Romans) {
		// A single chord repeated has nothing to function relative to —
		// diatonic coverage and "resolves to tonic" are trivially true of
		// any one-chord vamp and carry no real evidence of functional
		// harmony on their own.
		return nil
	}

	var out []Evidence

	for _, cad := range fr.Cadences {
		out = append(out, Evidence{
			Type:     theory.CadentialEvidence,
			Strength: cad.IntrinsicStrength,
			Supports: []Type{Functional},
			Description: describe(level,
				cad.Type.String()+" cadence",
				"a "+cad.Type.String()+" cadence was found, a standard harmonic closing gesture that supports a functional reading"),
			Basis: "chord " + strconv.Itoa(cad.StartIndex) + " to " + strconv.Itoa(cad.EndIndex),
		})
	}

	if len(fr.Romans) > 0 {
		last := fr.Romans[len(fr.Romans)-1]
		if last.Diatonic && last.Degree == 0 {
			out = append(out, Evidence{
				Type:     theory.StructuralEvidence,
				Strength: 0.6,
				Supports: []Type{Functional},
				Description: describe(level,
					"progression resolves to the tonic",
					"the progression ends on the tonic chord, which is the expected resting point of a functional progression"),
				Basis: "last chord is scale degree 1",
			})
		}
	}

	diatonicCount := 0
	for _, r := range fr.Romans {
		if r.Diatonic {
			diatonicCount++
		}
	}
	if len(fr.Romans) > 0 {
		fraction := float64(diatonicCount) / float64(len(fr.Romans))
		strength := fraction * 0.65
		if strength > 0.60 {
			strength = 0.60
		}
		if strength > 0 {
			out = append(out, Evidence{
				Type:     theory.HarmonicEvidence,
				Strength: strength,
				Supports: []Type{Functional},
				Description: describe(level,
					"diatonic chord coverage",
					"most of the chords belong to the inferred key's own scale, which is what a functional analysis expects"),
				Basis: "fraction of chords diatonic to the inferred key",
			})
		}
	}

	if matchesStrongPattern(fr.Romans) {
		out = append(out, Evidence{
			Type:     theory.StructuralEvidence,
			Strength: 0.95,
			Supports: []Type{Functional},
			Description: describe(level,
				"matches a well-known functional progression pattern",
				"this Roman-numeral sequence matches a progression that appears constantly in tonal music, like I-V-vi-IV"),
			Basis: "Roman-numeral sequence window match",
		})
	}

	return out
}

// modalEvidence implements spec §4.G.2's modal evidence sources.
func modalEvidence(chords []chordparser.Chord, mr modal.Result, level PedagogicalLevel) []Evidence {
	if !chordsHaveMotion(chords) {
		return nil
	}

	var out []Evidence

	for _, label := range mr.Characteristics {
		out = append(out, Evidence{
			Type:     theory.IntervallicEvidence,
			Strength: 0.7,
			Supports: []Type{Modal},
			Description: describe(level,
				"characteristic modal chord "+label+" present",
				"the chord "+label+" is one of the chords that distinguishes "+mr.Mode.String()+" from its relative major or minor, so its presence supports a modal reading"),
			Basis: mr.Mode.String() + " characteristic degree",
		})
	}

	if cadType, ok := modalCadencePresent(chords, mr); ok {
		strength := theory.CadenceStrength[cadType]
		out = append(out, Evidence{
			Type:     theory.CadentialEvidence,
			Strength: strength,
			Supports: []Type{Modal},
			Description: describe(level,
				cadType.String()+" cadence to the local tonic",
				"the progression resolves to its local tonic via a "+cadType.String()+" cadence, a closing gesture typical of modal harmony rather than functional harmony"),
			Basis: "modal cadential motion",
		})
	}

	if mr.FramesProgression {
		out = append(out, Evidence{
			Type:     theory.StructuralEvidence,
			Strength: 0.6,
			Supports: []Type{Modal},
			Description: describe(level,
				"local tonic opens and closes the progression",
				"the progression begins and ends on the same chord, framing it as the local tonal center even without a conventional cadence"),
			Basis: "structural framing",
		})
	}

	return out
}

// modalCadencePresent checks for a ♭VII→I or ♭II→I resolution to the
// local tonic, spec §4.G.2's modal cadential evidence source.
func modalCadencePresent(chords []chordparser.Chord, mr modal.Result) (theory.CadenceType, bool) {
	localPC := mr.LocalTonic.PitchClass()
	for i := 0; i+1 < len(chords); i++ {
		a, b := chords[i], chords[i+1]
		if b.Root.PitchClass() != localPC {
			continue
		}
		offset := ((int(a.Root.PitchClass()) - int(localPC)) % 12 + 12) % 12
		if offset == 10 {
			return theory.ModalCadence, true
		}
		if offset == 1 {
			return theory.PhrygianCadence, true
		}
	}
	return theory.NoCadence, false
}

// chromaticEvidence implements spec §4.G.2's chromatic evidence sources.
func chromaticEvidence(cr chromatic.Result, level PedagogicalLevel) []Evidence {
	var out []Evidence
	for _, sd := range cr.SecondaryDominants {
		out = append(out, Evidence{
			Type:     theory.HarmonicEvidence,
			Strength: 0.7,
			Supports: []Type{Chromatic},
			Description: describe(level,
				"secondary dominant detected",
				sd.Roman+" tonicizes degree "+strconv.Itoa(sd.TargetDegree+1)+", borrowing the dominant-of-the-dominant idea from outside the key"),
			Basis: "root a fifth above a diatonic target",
		})
	}
	for range cr.BorrowedChords {
		out = append(out, Evidence{
			Type:     theory.HarmonicEvidence,
			Strength: 0.6,
			Supports: []Type{Chromatic},
			Description: describe(level,
				"chord borrowed from the parallel mode",
				"this chord belongs to the parallel major/minor key rather than the current one, a common chromatic coloring technique"),
			Basis: "diatonic to parallel key, not current key",
		})
	}
	for range cr.ChromaticMediants {
		out = append(out, Evidence{
			Type:     theory.HarmonicEvidence,
			Strength: 0.5,
			Supports: []Type{Chromatic},
			Description: describe(level,
				"chromatic mediant relationship",
				"this chord's root sits a third away from the tonic and shares exactly one common tone with it, a mediant relationship prized for its distinctive color"),
			Basis: "third relation with one common tone",
		})
	}
	return out
}

// calibrateConfidence implements spec §4.G.3's weighted-mean-plus-
// diversity-bonus formula, with the floor for interpretations with no
// evidence at all.
func calibrateConfidence(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return theory.NoEvidenceFloor
	}

	var weightedSum, weightSum float64
	distinctTypes := make(map[theory.EvidenceType]bool)
	for _, e := range evidence {
		w := theory.EvidenceWeight[e.Type]
		weightedSum += e.Strength * w
		weightSum += w
		distinctTypes[e.Type] = true
	}
	if weightSum == 0 {
		return theory.NoEvidenceFloor
	}
	base := weightedSum / weightSum

	diversityBonus := 0.0
	if len(distinctTypes) > 1 {
		diversityBonus = theory.DiversityBonus
	}

	confidence := base + diversityBonus
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
