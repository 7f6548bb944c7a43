// Package functional implements spec §4.C: key inference, Roman-numeral
// assignment, chord-function tagging and cadence detection over a parsed
// chord sequence.
package functional

import (
	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Function is the tonic/predominant/dominant role a chord plays, spec
// §4.C.3.
type Function int

const (
	FunctionNone Function = iota
	Tonic
	Predominant
	Dominant
)

func (f Function) String() string {
	switch f {
	case Tonic:
		return "tonic"
	case Predominant:
		return "predominant"
	case Dominant:
		return "dominant"
	default:
		return "none"
	}
}

// degreeFunction maps a 0-indexed scale degree to its harmonic function,
// spec §4.C.3. Both major and minor keys use the same mapping — the
// spec's "analogous for minor" note.
var degreeFunction = [7]Function{Tonic, Predominant, Tonic, Predominant, Dominant, Tonic, Dominant}

// RomanChord is one chord's Roman-numeral analysis within a key.
type RomanChord struct {
	Chord     chordparser.Chord
	Degree    int // 0-indexed scale degree, -1 if chromatic (not diatonic)
	Roman     string
	Function  Function
	Diatonic  bool
	Inversion string
}

// Cadence is a detected cadential motion, spec §3.1.
type Cadence struct {
	Type            theory.CadenceType
	StartIndex      int
	EndIndex        int
	IntrinsicStrength float64
}

// Result is the functional analyzer's output, spec §4.C's FunctionalResult.
type Result struct {
	Key         theory.Key
	KeyInferred bool // true when no parent_key was supplied
	Romans      []RomanChord
	Cadences    []Cadence
	Confidence  float64
}

// Analyze implements analyze_functionally(chords, parent_key?), spec §4.C.
// parentKey may be the zero Key with Inferred=false semantics indicated by
// the hasParentKey flag — Go has no nullable value types for structs
// without a pointer, so the caller signals "no parent key" explicitly
// rather than relying on a sentinel Key value.
func Analyze(chords []chordparser.Chord, parentKey theory.Key, hasParentKey bool) Result {
	if len(chords) == 0 {
		return Result{}
	}

	key := parentKey
	inferred := false
	if !hasParentKey {
		key = inferKey(chords)
		inferred = true
	}

	romans := assignRomanNumerals(chords, key)
	cadences := detectCadences(romans)
	confidence := rawConfidence(romans, cadences)

	return Result{
		Key:         key,
		KeyInferred: inferred,
		Romans:      romans,
		Cadences:    cadences,
		Confidence:  confidence,
	}
}

// InferKey exposes the key-inference step of spec §4.C.1 so the
// interpretation service can resolve a single "effective key" shared
// across the functional, modal and chromatic analyzers when the caller
// supplies none, rather than each analyzer guessing independently.
func InferKey(chords []chordparser.Chord) theory.Key {
	return inferKey(chords)
}

// inferKey implements spec §4.C.1: score every major/minor key by the
// fraction of chords that fit its diatonic set, weighting the first and
// last chords double. Ties prefer major, then a key where the last chord
// is the tonic.
func inferKey(chords []chordparser.Chord) theory.Key {
	type candidate struct {
		key   theory.Key
		score float64
	}
	var candidates []candidate

	for pc := theory.PitchClass(0); pc < 12; pc++ {
		tonic := theory.NoteFromPitchClass(pc, preferFlatTonic(pc))
		for _, mode := range []theory.Mode{theory.Major, theory.Minor} {
			key := theory.Key{Tonic: tonic, Mode: mode, ParentTonic: tonic}
			candidates = append(candidates, candidate{key: key, score: scoreKey(chords, key)})
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(c, best, chords) {
			best = c
		}
	}
	return best.key
}

func preferFlatTonic(pc theory.PitchClass) bool {
	switch pc {
	case 1, 3, 6, 8, 10:
		return true
	default:
		return false
	}
}

func scoreKey(chords []chordparser.Chord, key theory.Key) float64 {
	total := 0.0
	sum := 0.0
	for i, c := range chords {
		weight := 1.0
		if i == 0 || i == len(chords)-1 {
			weight = 2.0
		}
		total += weight
		if key.Contains(c.Root.PitchClass()) {
			sum += weight
		}
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

func betterCandidate(c, best struct {
	key   theory.Key
	score float64
}, chords []chordparser.Chord) bool {
	if c.score != best.score {
		return c.score > best.score
	}
	// Tie-break 1: prefer major.
	if c.key.Mode != best.key.Mode {
		return c.key.Mode == theory.Major
	}
	// Tie-break 2: prefer a key where the last chord is tonic.
	lastRoot := chords[len(chords)-1].Root.PitchClass()
	cLastIsTonic := lastRoot == c.key.Tonic.PitchClass()
	bestLastIsTonic := lastRoot == best.key.Tonic.PitchClass()
	return cLastIsTonic && !bestLastIsTonic
}

// assignRomanNumerals implements spec §4.C.2/§4.C.3.
func assignRomanNumerals(chords []chordparser.Chord, key theory.Key) []RomanChord {
	out := make([]RomanChord, len(chords))
	for i, c := range chords {
		degree, diatonic := key.Degree(c.Root.PitchClass())
		rc := RomanChord{Chord: c, Diatonic: diatonic}
		if !diatonic {
			rc.Degree = -1
			rc.Roman = chromaticRoman(c, key)
			rc.Function = FunctionNone
		} else {
			rc.Degree = degree
			rc.Roman = theory.RomanNumeralCase(degree, c.Quality, c.Seventh)
			rc.Function = degreeFunction[degree]
		}
		rc.Inversion = inversionFigure(c)
		if rc.Inversion != "" {
			rc.Roman += rc.Inversion
		}
		out[i] = rc
	}
	return out
}

// chromaticRoman labels a non-diatonic chord with an accidental-prefixed
// numeral, e.g. bII, bVII. A lowered degree (flat of the diatonic step
// above) is preferred over a raised one (sharp of the step below) when
// both are a half step away, matching conventional jazz-harmony spelling
// of bII and bVII over their enharmonic #I/#VI equivalents.
func chromaticRoman(c chordparser.Chord, key theory.Key) string {
	semitonesAbove := ((int(c.Root.PitchClass()) - int(key.Tonic.PitchClass())) % 12 + 12) % 12
	degrees := theory.ScaleDegrees(key.Tonic.PitchClass(), key.Mode)
	for i, d := range degrees {
		expected := ((int(d) - int(key.Tonic.PitchClass())) % 12 + 12) % 12
		if expected == semitonesAbove+1 {
			return "b" + theory.RomanNumeralCase(i, c.Quality, c.Seventh)
		}
	}
	for i, d := range degrees {
		expected := ((int(d) - int(key.Tonic.PitchClass())) % 12 + 12) % 12
		if expected == semitonesAbove-1 {
			return "#" + theory.RomanNumeralCase(i, c.Quality, c.Seventh)
		}
	}
	return "?" + theory.RomanNumeralCase(0, c.Quality, c.Seventh)
}

// inversionFigure derives the figured-bass suffix from a chord's slash
// bass, spec's supplemented inversion feature.
func inversionFigure(c chordparser.Chord) string {
	if c.Bass == nil {
		return ""
	}
	interval := ((int(c.Bass.PitchClass())-int(c.Root.PitchClass()))%12 + 12) % 12
	tones := append([]int(nil), theory.TriadIntervals[c.Quality]...)
	if s, ok := theory.SeventhInterval[c.Seventh]; ok {
		tones = append(tones, s)
	}
	for i, offset := range tones {
		if offset == interval {
			return theory.InversionFigure(i, c.Seventh != theory.NoSeventh)
		}
	}
	return ""
}

// detectCadences implements spec §4.C.4, scanning adjacent Roman-numeral
// pairs.
func detectCadences(romans []RomanChord) []Cadence {
	var out []Cadence
	for i := 0; i+1 < len(romans); i++ {
		a, b := romans[i], romans[i+1]
		if !b.Diatonic {
			continue
		}
		if !a.Diatonic && a.Roman != "bII" && a.Roman != "bVII" {
			continue
		}
		cadType, ok := classifyCadencePair(a, b)
		if !ok {
			continue
		}
		out = append(out, Cadence{
			Type:              cadType,
			StartIndex:        i,
			EndIndex:          i + 1,
			IntrinsicStrength: theory.CadenceStrength[cadType],
		})
	}
	// *→V at end: half cadence, independent of the pairwise scan above.
	if len(romans) >= 2 {
		last := romans[len(romans)-1]
		if last.Diatonic && last.Degree == 4 {
			out = append(out, Cadence{
				Type:              theory.Half,
				StartIndex:        len(romans) - 2,
				EndIndex:          len(romans) - 1,
				IntrinsicStrength: theory.CadenceStrength[theory.Half],
			})
		}
	}
	return out
}

func classifyCadencePair(a, b RomanChord) (theory.CadenceType, bool) {
	switch {
	case a.Degree == 4 && b.Degree == 0:
		return theory.Authentic, true
	case a.Degree == 3 && b.Degree == 0:
		return theory.Plagal, true
	case a.Degree == 4 && b.Degree == 5:
		return theory.Deceptive, true
	case b.Degree == 0 && a.Roman == "bII":
		return theory.PhrygianCadence, true
	case b.Degree == 0 && a.Roman == "bVII":
		return theory.ModalCadence, true
	default:
		return theory.NoCadence, false
	}
}

// rawConfidence combines (fraction diatonic) × (max intrinsic cadence
// strength found), or just the fraction diatonic when no cadence was
// detected — the cadence factor is a bonus, so its absence must not zero
// out an otherwise-diatonic progression.
func rawConfidence(romans []RomanChord, cadences []Cadence) float64 {
	if len(romans) == 0 {
		return 0
	}
	diatonicCount := 0
	for _, r := range romans {
		if r.Diatonic {
			diatonicCount++
		}
	}
	fraction := float64(diatonicCount) / float64(len(romans))

	maxStrength := 0.0
	for _, cad := range cadences {
		if cad.IntrinsicStrength > maxStrength {
			maxStrength = cad.IntrinsicStrength
		}
	}
	if maxStrength == 0 {
		return fraction
	}
	return fraction * maxStrength
}
