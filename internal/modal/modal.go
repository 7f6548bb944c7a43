// Package modal implements spec §4.D: local-tonic detection, parent-key
// determination, mode identification, characteristic-degree detection and
// contextual classification (diatonic / modal_borrowing / modal_candidate).
package modal

import (
	"sort"

	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Classification is spec §4.D.5's contextual label.
type Classification int

const (
	Diatonic Classification = iota
	ModalBorrowing
	ModalCandidate
)

func (c Classification) String() string {
	switch c {
	case ModalBorrowing:
		return "modal_borrowing"
	case ModalCandidate:
		return "modal_candidate"
	default:
		return "diatonic"
	}
}

// ParentKeyRelationship is spec §3.1's Interpretation.parent-key-relationship.
type ParentKeyRelationship int

const (
	RelationshipNone ParentKeyRelationship = iota
	RelationshipMatches
	RelationshipConflicts
)

func (r ParentKeyRelationship) String() string {
	switch r {
	case RelationshipMatches:
		return "matches"
	case RelationshipConflicts:
		return "conflicts"
	default:
		return "none"
	}
}

// Result is the modal analyzer's output, spec §4.D's ModalResult.
type Result struct {
	LocalTonic      theory.Note
	ParentKey       theory.Key
	Mode            theory.Mode
	Classification  Classification
	Relationship    ParentKeyRelationship
	Characteristics []string // human-readable labels, spec §3.1
	FramesProgression bool  // local tonic both opens and closes the progression
}

// Analyze implements analyze_modal(chords, parent_key?), spec §4.D.
func Analyze(chords []chordparser.Chord, parentKey theory.Key, hasParentKey bool) Result {
	if len(chords) == 0 {
		return Result{}
	}

	localTonicPC := scoreLocalTonic(chords)

	noteUnion := unionPitchClasses(chords)

	var parent theory.Key
	relationship := RelationshipNone
	if hasParentKey {
		parent = parentKey
		if supersetOf(parent.DiatonicPitchClasses(), noteUnion) {
			relationship = RelationshipMatches
		} else {
			relationship = RelationshipConflicts
			// Never silently override caller input (spec §4.D.2 / §8.1).
		}
	} else {
		parent = findParentKey(noteUnion, localTonicPC)
		relationship = RelationshipMatches
	}

	mode := identifyMode(localTonicPC, parent)
	localTonicNote := theory.NoteFromPitchClass(localTonicPC, parent.Tonic.Accidental == theory.Flat)

	characteristics := characteristicChordsPresent(chords, localTonicNote, mode)

	frames := chords[0].Root.PitchClass() == localTonicPC && chords[len(chords)-1].Root.PitchClass() == localTonicPC

	classification := classify(chords, parent, relationship, characteristics)

	return Result{
		LocalTonic:        localTonicNote,
		ParentKey:         parent,
		Mode:              mode,
		Classification:    classification,
		Relationship:       relationship,
		Characteristics:    characteristics,
		FramesProgression: frames,
	}
}

// scoreLocalTonic implements spec §4.D.1: final-position weight 3,
// initial-position weight 2, per-occurrence frequency weight 1.
func scoreLocalTonic(chords []chordparser.Chord) theory.PitchClass {
	scores := make(map[theory.PitchClass]float64)
	for i, c := range chords {
		pc := c.Root.PitchClass()
		scores[pc] += 1.0
		if i == 0 {
			scores[pc] += 2.0
		}
		if i == len(chords)-1 {
			scores[pc] += 3.0
		}
	}
	var best theory.PitchClass
	bestScore := -1.0
	for pc := theory.PitchClass(0); pc < 12; pc++ {
		if scores[pc] > bestScore {
			bestScore = scores[pc]
			best = pc
		}
	}
	return best
}

func unionPitchClasses(chords []chordparser.Chord) map[theory.PitchClass]bool {
	out := make(map[theory.PitchClass]bool)
	for _, c := range chords {
		for _, pc := range c.PitchClasses() {
			out[pc] = true
		}
	}
	return out
}

func supersetOf(set map[theory.PitchClass]bool, subset map[theory.PitchClass]bool) bool {
	for pc := range subset {
		if !set[pc] {
			return false
		}
	}
	return true
}

// findParentKey implements spec §4.D.2's inference: the diatonic major
// collection containing the full chord-note union. Ties broken by lowest
// pitch class for determinism (spec §8.1).
func findParentKey(noteUnion map[theory.PitchClass]bool, localTonicPC theory.PitchClass) theory.Key {
	var matches []theory.Key
	for pc := theory.PitchClass(0); pc < 12; pc++ {
		tonic := theory.NoteFromPitchClass(pc, preferFlat(pc))
		key := theory.NewMajorKey(tonic)
		if supersetOf(key.DiatonicPitchClasses(), noteUnion) && key.Contains(localTonicPC) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		// No diatonic major collection contains every note (heavily
		// chromatic input): fall back to the local tonic's own major scale
		// so mode identification below still resolves to Ionian rather
		// than panicking on an empty candidate set.
		tonic := theory.NoteFromPitchClass(localTonicPC, preferFlat(localTonicPC))
		return theory.NewMajorKey(tonic)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Tonic.PitchClass() < matches[j].Tonic.PitchClass()
	})
	return matches[0]
}

func preferFlat(pc theory.PitchClass) bool {
	switch pc {
	case 1, 3, 6, 8, 10:
		return true
	default:
		return false
	}
}

// identifyMode implements spec §4.D.3: (local tonic, parent key) uniquely
// determines a mode.
func identifyMode(localTonicPC theory.PitchClass, parent theory.Key) theory.Mode {
	offset := ((int(localTonicPC) - int(parent.Tonic.PitchClass())) % 12 + 12) % 12
	for mode, off := range theory.ParentMajorTonicOffset {
		if off == offset {
			return mode
		}
	}
	return theory.Ionian
}

type characteristicSpec struct {
	offset  int
	quality theory.Quality
	seventh theory.Seventh // theory.NoSeventh means "any"
	label   string
}

var characteristicTable = map[theory.Mode][]characteristicSpec{
	theory.Mixolydian: {
		{offset: 10, quality: theory.MajorTriad, label: "♭VII"},
		{offset: 7, quality: theory.MinorTriad, label: "v"},
	},
	theory.Dorian: {
		{offset: 5, quality: theory.MajorTriad, label: "IV"},
		{offset: 2, quality: theory.MinorTriad, label: "ii"},
		{offset: 0, quality: theory.MinorTriad, seventh: theory.MinorSeventh, label: "i7"},
	},
	theory.Phrygian: {
		{offset: 1, quality: theory.MajorTriad, label: "♭II"},
		{offset: 10, quality: theory.MinorTriad, label: "♭vii"},
	},
	theory.Lydian: {
		{offset: 2, quality: theory.MajorTriad, label: "II"},
		{offset: 6, quality: theory.Diminished, label: "♯iv°"},
	},
	theory.Aeolian: {
		{offset: 8, quality: theory.MajorTriad, label: "♭VI"},
		{offset: 10, quality: theory.MajorTriad, label: "♭VII"},
		{offset: 0, quality: theory.MinorTriad, label: "i"},
	},
	theory.Locrian: {
		{offset: 0, quality: theory.Diminished, label: "i°"},
	},
}

// characteristicChordsPresent implements spec §4.D.4.
func characteristicChordsPresent(chords []chordparser.Chord, localTonic theory.Note, mode theory.Mode) []string {
	specs, ok := characteristicTable[mode]
	if !ok {
		return nil
	}
	var found []string
	seen := make(map[string]bool)
	for _, c := range chords {
		offset := ((int(c.Root.PitchClass()) - int(localTonic.PitchClass())) % 12 + 12) % 12
		for _, spec := range specs {
			if spec.offset != offset || spec.quality != c.Quality {
				continue
			}
			if spec.seventh != theory.NoSeventh && c.Seventh != spec.seventh {
				continue
			}
			if !seen[spec.label] {
				seen[spec.label] = true
				found = append(found, spec.label)
			}
		}
	}
	return found
}

// classify implements spec §4.D.5.
func classify(chords []chordparser.Chord, parent theory.Key, relationship ParentKeyRelationship, characteristics []string) Classification {
	allDiatonic := true
	for _, c := range chords {
		for _, pc := range c.PitchClasses() {
			if !parent.Contains(pc) {
				allDiatonic = false
				break
			}
		}
		if !allDiatonic {
			break
		}
	}

	switch {
	case allDiatonic && len(characteristics) == 0:
		return Diatonic
	case allDiatonic && len(characteristics) > 0:
		return ModalBorrowing
	default:
		return ModalCandidate
	}
}
