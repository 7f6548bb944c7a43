// Package theory holds the static, process-wide music-theory tables spec
// §4.A calls for: enharmonic spellings, chord-quality and mode interval
// patterns, characteristic scale degrees, and Roman-numeral string tables.
// Every table here is built once at init time and never mutated — the
// analyzers in internal/functional, internal/modal, internal/chromatic and
// internal/scale all read from these tables rather than keeping their own
// copies, so a calibration change (spec §9) has exactly one place to land.
package theory

import (
	"fmt"
	"strings"
)

// PitchClass is an integer 0-11 with C=0, following spec §3.1.
type PitchClass int

// Accidental preserves the spelling a Note was written with, independent
// of its resolved PitchClass — spec §3.1 requires enharmonic spelling to
// survive on Note even though two different spellings can share a pitch
// class.
type Accidental int

const (
	Natural Accidental = 0
	Sharp   Accidental = 1
	Flat    Accidental = -1
)

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	case 2:
		return "##"
	case -2:
		return "bb"
	default:
		return ""
	}
}

// naturalPitchClass gives the pitch class of each unaltered letter name.
var naturalPitchClass = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Note is a letter name (A-G) plus an accidental, preserving the
// enharmonic spelling the caller used (spec §3.1).
type Note struct {
	Letter     byte // 'A'..'G'
	Accidental Accidental
}

// PitchClass resolves a Note to its 0-11 pitch class.
func (n Note) PitchClass() PitchClass {
	pc := (int(naturalPitchClass[n.Letter]) + int(n.Accidental) + 12) % 12
	return PitchClass(pc)
}

// String renders the note in its own spelling, e.g. "C#", "Bb", "F".
func (n Note) String() string {
	return string(n.Letter) + n.Accidental.String()
}

// Equal reports whether two notes name the same pitch class, regardless of
// spelling — the enharmonic equality spec §8.1 and the GLOSSARY define.
func (n Note) Equal(other Note) bool {
	return n.PitchClass() == other.PitchClass()
}

// sharpNames and flatNames give the preferred spelling of each pitch class
// under the two enharmonic conventions spec §4.A calls for.
var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// NoteFromPitchClass builds a Note from a pitch class, choosing sharp or
// flat spelling. Naturals (no black-key pitch class) always render as a
// bare letter regardless of preferFlat.
func NoteFromPitchClass(pc PitchClass, preferFlat bool) Note {
	pc = PitchClass(((int(pc) % 12) + 12) % 12)
	name := sharpNames[pc]
	if preferFlat {
		name = flatNames[pc]
	}
	letter := name[0]
	if len(name) == 1 {
		return Note{Letter: letter, Accidental: Natural}
	}
	switch name[1] {
	case '#':
		return Note{Letter: letter, Accidental: Sharp}
	case 'b':
		return Note{Letter: letter, Accidental: Flat}
	default:
		return Note{Letter: letter, Accidental: Natural}
	}
}

// noteAliasTable maps every accepted note spelling (including double
// naming like B# and Cb) to its pitch class, mirroring the aliasing the
// reference implementation's chord parser relies on.
var noteAliasTable = map[string]PitchClass{
	"C": 0, "B#": 0, "Dbb": 0,
	"C#": 1, "Db": 1, "B##": 1,
	"D": 2, "Cx": 2, "Ebb": 2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4, "Dx": 4,
	"F": 5, "E#": 5, "Gbb": 5,
	"F#": 6, "Gb": 6,
	"G": 7, "Fx": 7, "Abb": 7,
	"G#": 8, "Ab": 8,
	"A": 9, "Gx": 9, "Bbb": 9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "Ax": 11,
}

// ParseNote parses a note name, accepting an optional trailing octave
// number that is accepted and ignored per spec §6 ("Note syntax").
func ParseNote(token string) (Note, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Note{}, fmt.Errorf("empty note")
	}
	// Strip a trailing octave digit sequence, e.g. "C#4" -> "C#".
	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	// A lone leading '-' before digits (e.g. "C-1") is part of the octave.
	if end > 0 && end < len(s) && s[end-1] == '-' {
		end--
	}
	name := s[:end]
	if name == "" {
		return Note{}, fmt.Errorf("invalid note %q", token)
	}
	name = strings.ReplaceAll(name, "♯", "#")
	name = strings.ReplaceAll(name, "♭", "b")

	letter := name[0]
	if letter < 'A' || letter > 'G' {
		if letter >= 'a' && letter <= 'g' {
			return Note{}, fmt.Errorf("lowercase note letters are not accepted: %q", token)
		}
		return Note{}, fmt.Errorf("invalid note letter in %q", token)
	}

	if _, ok := noteAliasTable[name]; !ok {
		return Note{}, fmt.Errorf("unrecognized note spelling %q", token)
	}

	rest := name[1:]
	switch {
	case rest == "":
		return Note{Letter: letter, Accidental: Natural}, nil
	case strings.HasPrefix(rest, "##") || strings.HasPrefix(rest, "x"):
		// Double sharp: keep Letter and take the accidental from the alias
		// table's pitch class.
		pc := noteAliasTable[name]
		return noteFromLetterAndPitchClass(letter, pc), nil
	case rest == "#":
		return Note{Letter: letter, Accidental: Sharp}, nil
	case rest == "b":
		return Note{Letter: letter, Accidental: Flat}, nil
	case rest == "bb":
		pc := noteAliasTable[name]
		return noteFromLetterAndPitchClass(letter, pc), nil
	default:
		return Note{}, fmt.Errorf("unrecognized note spelling %q", token)
	}
}

// noteFromLetterAndPitchClass keeps Letter and picks the accidental that
// reaches pc, for double-sharp/double-flat spellings: the Accidental holds
// the signed semitone offset from the natural letter (+2 or -2 for a
// double accidental), so PitchClass() returns pc exactly.
func noteFromLetterAndPitchClass(letter byte, pc PitchClass) Note {
	natural := naturalPitchClass[letter]
	delta := ((int(pc)-int(natural))%12 + 12) % 12
	if delta > 6 {
		delta -= 12
	}
	return Note{Letter: letter, Accidental: Accidental(delta)}
}

// PitchClassName renders a bare pitch class using sharp or flat spelling.
func PitchClassName(pc PitchClass, preferFlat bool) string {
	return NoteFromPitchClass(pc, preferFlat).String()
}

// IntervalName returns a short label for a signed semitone interval,
// mostly used in evidence descriptions ("major third", "perfect fifth").
func IntervalName(semitones int) string {
	semitones = ((semitones % 12) + 12) % 12
	names := [12]string{
		"unison", "minor second", "major second", "minor third", "major third",
		"perfect fourth", "tritone", "perfect fifth", "minor sixth", "major sixth",
		"minor seventh", "major seventh",
	}
	return names[semitones]
}
