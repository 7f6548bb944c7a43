// Package chordparser implements spec §4.B: turning a chord symbol like
// "Cmaj7", "F#m7b5/A" or "G7sus4" into a structured Chord. The grammar is
// informal by design, so real-world symbols don't always respect the
// declared token order (dominant-sus chords write the seventh before the
// suspension, e.g. "G7sus4") — the tokenizer in tokens.go matches greedily
// at each position rather than expecting quality/seventh/extension/
// alteration in strict sequence, and lets a later token override an
// earlier default.
package chordparser

import (
	"sort"

	"github.com/zfogg/harmonic-analysis/internal/errors"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Chord is the parser's output, spec §3.1. It is immutable once built —
// all fields are set during Parse and never mutated afterward.
type Chord struct {
	Root        theory.Note
	Quality     theory.Quality
	Seventh     theory.Seventh
	Extensions  []theory.Extension
	Alterations []theory.Alteration
	Bass        *theory.Note // nil unless a slash bass differs from Root
	Symbol      string       // original textual form, verbatim

	pitchClasses []theory.PitchClass // derived, cached at construction
}

// PitchClasses returns the chord's derived pitch-class set: root, triad
// tones, seventh (if any), extensions and alterations, each reduced mod
// 12 and deduplicated. The bass note is not a member unless it coincides
// with one of these — spec §4.B: "bass included only as the nominal
// lowest pitch class", i.e. it does not add a new harmonic tone by itself.
func (c Chord) PitchClasses() []theory.PitchClass {
	out := append([]theory.PitchClass(nil), c.pitchClasses...)
	return out
}

// HasPitchClass reports whether pc is a member of the chord's pitch-class
// set.
func (c Chord) HasPitchClass(pc theory.PitchClass) bool {
	for _, p := range c.pitchClasses {
		if p == pc {
			return true
		}
	}
	return false
}

func (c *Chord) computePitchClasses() {
	seen := make(map[theory.PitchClass]bool)
	var out []theory.PitchClass
	add := func(offset int) {
		pc := theory.PitchClass(((int(c.Root.PitchClass()) + offset) % 12 + 12) % 12)
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}

	for _, offset := range theory.TriadIntervals[c.Quality] {
		add(offset)
	}
	if interval, ok := theory.SeventhInterval[c.Seventh]; ok {
		add(interval)
	}
	for _, ext := range c.Extensions {
		add(theory.ExtensionInterval[ext])
	}
	for _, alt := range c.Alterations {
		add(alt.Interval())
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	c.pitchClasses = out
}

// Parse parses a chord symbol per spec §4.B's grammar. An empty symbol
// (after trimming) fails with errors.EmptyProgression-style EmptyInput;
// an unrecognized symbol fails with UnparsableChord naming the symbol and
// its position in the caller-supplied sequence (position is 0 when the
// caller doesn't track one — see ParseAt).
func Parse(symbol string) (Chord, error) {
	return ParseAt(symbol, 0)
}

// ParseAt is Parse with an explicit position, used by callers (the
// functional/modal/chromatic analyzers, via the interpretation service)
// that parse a whole chord sequence and need to report which element
// failed.
func ParseAt(symbol string, position int) (Chord, error) {
	trimmed := trimSpace(symbol)
	if trimmed == "" {
		return Chord{}, errors.EmptyProgression()
	}

	main, bassText := splitBass(trimmed)

	root, rest, ok := parseRoot(main)
	if !ok {
		return Chord{}, errors.UnparsableChord(symbol, position)
	}

	c := Chord{Root: root, Quality: theory.MajorTriad, Symbol: symbol}
	if !applyBody(&c, rest) {
		return Chord{}, errors.UnparsableChord(symbol, position)
	}

	if bassText != "" {
		bassNote, bassRest, ok := parseRoot(bassText)
		if !ok || bassRest != "" {
			return Chord{}, errors.UnparsableChord(symbol, position)
		}
		if bassNote.PitchClass() != c.Root.PitchClass() {
			b := bassNote
			c.Bass = &b
		}
	}

	c.computePitchClasses()
	return c, nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// splitBass splits on the last '/' in the symbol, since a bass is always
// a bare root (grammar: bass := root) and can never itself contain '/'.
func splitBass(s string) (main, bass string) {
	idx := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// parseRoot consumes a leading root token (letter A-G plus an optional
// single accidental, ASCII or unicode), returning the remainder of the
// string for the body tokenizer.
func parseRoot(s string) (theory.Note, string, bool) {
	r := []rune(s)
	if len(r) == 0 {
		return theory.Note{}, "", false
	}
	letter := r[0]
	if letter < 'A' || letter > 'G' {
		return theory.Note{}, "", false
	}
	accidental := theory.Natural
	consumed := 1
	if len(r) > 1 {
		switch r[1] {
		case '#', '♯':
			accidental = theory.Sharp
			consumed = 2
		case 'b', '♭':
			accidental = theory.Flat
			consumed = 2
		}
	}
	return theory.Note{Letter: byte(letter), Accidental: accidental}, string(r[consumed:]), true
}
