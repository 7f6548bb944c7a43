package theory

// Mode is one of the seven diatonic modes, spec §3.1/§4.D. Major and Minor
// are kept as distinct values from Ionian/Aeolian: the functional analyzer
// (internal/functional) only ever reasons in terms of Major/Minor keys,
// while the modal analyzer (internal/modal) names the full seven-mode set
// — keeping them separate means a functional Key never accidentally prints
// as "C Ionian".
type Mode int

const (
	Major Mode = iota
	Minor
	Ionian
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
)

func (m Mode) String() string {
	switch m {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Ionian:
		return "Ionian"
	case Dorian:
		return "Dorian"
	case Phrygian:
		return "Phrygian"
	case Lydian:
		return "Lydian"
	case Mixolydian:
		return "Mixolydian"
	case Aeolian:
		return "Aeolian"
	case Locrian:
		return "Locrian"
	default:
		return "unknown"
	}
}

// IsMinorQuality reports whether a mode's tonic triad is minor (used to
// pick Roman-numeral casing and to decide cadence-type eligibility).
func (m Mode) IsMinorQuality() bool {
	switch m {
	case Minor, Dorian, Phrygian, Aeolian, Locrian:
		return true
	default:
		return false
	}
}

// ModeIntervals gives each mode's seven scale-degree offsets from its
// tonic, in semitones, spec §4.D ("modal interval patterns").
var ModeIntervals = map[Mode][7]int{
	Ionian:     {0, 2, 4, 5, 7, 9, 11},
	Dorian:     {0, 2, 3, 5, 7, 9, 10},
	Phrygian:   {0, 1, 3, 5, 7, 8, 10},
	Lydian:     {0, 2, 4, 6, 7, 9, 11},
	Mixolydian: {0, 2, 4, 5, 7, 9, 10},
	Aeolian:    {0, 2, 3, 5, 7, 8, 10},
	Locrian:    {0, 1, 3, 5, 6, 8, 10},
}

// majorIntervals and minorIntervals alias Ionian/Aeolian for the
// functional analyzer's Major/Minor key arithmetic.
var majorIntervals = ModeIntervals[Ionian]
var minorIntervals = ModeIntervals[Aeolian] // natural minor

// ScaleDegrees returns the seven pitch classes of the given mode built on
// tonic, in degree order (degree 1 first).
func ScaleDegrees(tonic PitchClass, mode Mode) [7]PitchClass {
	var intervals [7]int
	switch mode {
	case Major:
		intervals = majorIntervals
	case Minor:
		intervals = minorIntervals
	default:
		intervals = ModeIntervals[mode]
	}
	var degrees [7]PitchClass
	for i, offset := range intervals {
		degrees[i] = PitchClass(((int(tonic) + offset) % 12 + 12) % 12)
	}
	return degrees
}

// CharacteristicDegree names, for each church mode, the scale degree (1-7)
// whose presence in the melodic/harmonic material most distinguishes that
// mode from its relative major/minor — spec §4.D / §4.F's "characteristic
// degree" detection. Degree numbers are 1-indexed scale steps.
var CharacteristicDegree = map[Mode]int{
	Dorian:     6, // natural 6 vs. Aeolian's b6
	Phrygian:   2, // b2 vs. Aeolian's natural 2
	Lydian:     4, // #4 vs. Ionian's natural 4
	Mixolydian: 7, // b7 vs. Ionian's natural 7
	Locrian:    5, // b5 vs. Aeolian's natural 5
}

// ParentMajorTonicOffset gives, for each mode, the number of semitones
// below the mode's tonic that its parent major-scale tonic sits — e.g. D
// Dorian's parent major is C major, so offset is 2 (D is 2 semitones above
// C). Used by internal/modal to compute the parent key honestly rather
// than by key-signature guesswork (spec §8.1, "conflicts" relationship).
var ParentMajorTonicOffset = map[Mode]int{
	Ionian:     0,
	Dorian:     2,
	Phrygian:   4,
	Lydian:     5,
	Mixolydian: 7,
	Aeolian:    9,
	Locrian:    11,
}
