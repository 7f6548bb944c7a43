package theory

import "strconv"

// Quality is a chord's triad quality, spec §3.2.
type Quality int

const (
	MajorTriad Quality = iota
	MinorTriad
	Diminished
	Augmented
	Sus2
	Sus4
	Power // root + fifth only, no third
)

func (q Quality) String() string {
	switch q {
	case MajorTriad:
		return "major"
	case MinorTriad:
		return "minor"
	case Diminished:
		return "diminished"
	case Augmented:
		return "augmented"
	case Sus2:
		return "sus2"
	case Sus4:
		return "sus4"
	case Power:
		return "power"
	default:
		return "unknown"
	}
}

// TriadIntervals gives the semitone offsets from the root for each
// triad quality. Power chords omit the third entirely.
var TriadIntervals = map[Quality][]int{
	MajorTriad: {0, 4, 7},
	MinorTriad: {0, 3, 7},
	Diminished: {0, 3, 6},
	Augmented:  {0, 4, 8},
	Sus2:       {0, 2, 7},
	Sus4:       {0, 5, 7},
	Power:      {0, 7},
}

// Seventh is the seventh-chord variant layered on top of a triad, spec §3.2.
type Seventh int

const (
	NoSeventh Seventh = iota
	MinorSeventh
	MajorSeventh
	DiminishedSeventh // bb7, used on fully-diminished (°7) chords
)

func (s Seventh) String() string {
	switch s {
	case MinorSeventh:
		return "minor seventh"
	case MajorSeventh:
		return "major seventh"
	case DiminishedSeventh:
		return "diminished seventh"
	default:
		return "none"
	}
}

// SeventhInterval gives the semitone offset of the seventh above the root.
var SeventhInterval = map[Seventh]int{
	MinorSeventh:      10,
	MajorSeventh:      11,
	DiminishedSeventh: 9,
}

// Extension is an added upper-structure tone (9th, 11th, 13th), spec §3.2.
type Extension int

const (
	NoExtension Extension = iota
	Ext9
	Ext11
	Ext13
)

// ExtensionInterval gives the semitone offset of an extension above the
// root, reduced mod 12 (a 9th is a 2nd one octave up, etc.).
var ExtensionInterval = map[Extension]int{
	Ext9:  2,
	Ext11: 5,
	Ext13: 9,
}

// Alteration is a chromatic raise/lower of a specific extension degree
// (e.g. b9, #11, #5), spec §3.2.
type Alteration struct {
	Degree     int // 5, 9, 11, 13
	Accidental Accidental
}

func (a Alteration) String() string {
	return a.Accidental.String() + strconv.Itoa(a.Degree)
}

// alterationInterval gives the unaltered semitone offset for each degree
// an Alteration can target, before the accidental is applied.
var alterationInterval = map[int]int{
	5: 7, 9: 2, 11: 5, 13: 9,
}

// Interval returns the semitone offset (above the root, reduced mod 12)
// this alteration resolves to.
func (a Alteration) Interval() int {
	base, ok := alterationInterval[a.Degree]
	if !ok {
		return 0
	}
	return ((base + int(a.Accidental))%12 + 12) % 12
}
