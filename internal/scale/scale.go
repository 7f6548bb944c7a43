// Package scale implements spec §4.F: parent-scale matching for a bare
// note collection, and melodic tonic inference for an ordered note
// sequence.
package scale

import (
	"sort"

	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Classification mirrors internal/modal's contextual labels — spec §4.F
// defines them afresh for scale input. This package declares its own type
// with the same three values and the same String() text as
// internal/modal's.
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

// Result is spec §3.1's "Scale analysis result".
type Result struct {
	ParentKeys     []theory.Key
	ModalLabels    map[theory.PitchClass]theory.Mode // tonic pitch class -> mode, for each parent key's degrees
	Classification Classification
}

// AnalyzeScale implements the scale half of spec §4.F: every diatonic
// major key whose scale notes are a superset of the input, plus the mode
// label obtained by naming each of its seven degrees a tonic in turn.
func AnalyzeScale(notes []theory.Note) Result {
	input := make(map[theory.PitchClass]bool)
	for _, n := range notes {
		input[n.PitchClass()] = true
	}

	var parents []theory.Key
	for pc := theory.PitchClass(0); pc < 12; pc++ {
		tonic := theory.NoteFromPitchClass(pc, preferFlat(pc))
		key := theory.NewMajorKey(tonic)
		if isSuperset(key.DiatonicPitchClasses(), input) {
			parents = append(parents, key)
		}
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].Tonic.PitchClass() < parents[j].Tonic.PitchClass() })

	labels := make(map[theory.PitchClass]theory.Mode)
	modeOrder := [7]theory.Mode{theory.Ionian, theory.Dorian, theory.Phrygian, theory.Lydian, theory.Mixolydian, theory.Aeolian, theory.Locrian}
	for _, parent := range parents {
		degrees := theory.ScaleDegrees(parent.Tonic.PitchClass(), theory.Major)
		for i, pc := range degrees {
			labels[pc] = modeOrder[i]
		}
	}

	var classification Classification
	switch {
	case len(parents) == 1:
		classification = Diatonic
	case len(parents) == 0:
		classification = ModalCandidate
	default:
		classification = ModalBorrowing
	}

	return Result{ParentKeys: parents, ModalLabels: labels, Classification: classification}
}

func preferFlat(pc theory.PitchClass) bool {
	switch pc {
	case 1, 3, 6, 8, 10:
		return true
	default:
		return false
	}
}

func isSuperset(set, subset map[theory.PitchClass]bool) bool {
	for pc := range subset {
		if !set[pc] {
			return false
		}
	}
	return true
}

// MelodyResult is spec §3.1's "Melody analysis result".
type MelodyResult struct {
	ScaleResult      Result
	SuggestedTonic   *theory.Note
	TonicConfidence  float64
}

// AnalyzeMelody implements spec §4.F's melody behavior: the scale
// analysis over the melody's note set, plus a suggested tonic computed by
// the scoring function in §4.F.
func AnalyzeMelody(notes []theory.Note) MelodyResult {
	scaleResult := AnalyzeScale(notes)
	if len(notes) == 0 {
		return MelodyResult{ScaleResult: scaleResult}
	}

	scores := make(map[theory.PitchClass]float64)
	counts := make(map[theory.PitchClass]int)
	for _, n := range notes {
		counts[n.PitchClass()]++
	}
	for pc, count := range counts {
		scores[pc] += float64(count) // +1 per occurrence
	}
	scores[notes[len(notes)-1].PitchClass()] += 3
	scores[notes[0].PitchClass()] += 2

	for pc := range peaksAndValleys(notes) {
		scores[pc] += 2
	}

	type scored struct {
		pc    theory.PitchClass
		score float64
	}
	var ranked []scored
	for pc, s := range scores {
		ranked = append(ranked, scored{pc, s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].pc < ranked[j].pc
	})

	winner := ranked[0]
	second := 0.0
	if len(ranked) > 1 {
		second = ranked[1].score
	}

	confidence := 0.0
	if winner.score > 0 {
		confidence = (winner.score - second) / winner.score
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if winner.score == second {
		confidence = 0.3 // floor when scores are tied, spec §4.F
	}

	winnerNote := theory.NoteFromPitchClass(winner.pc, preferFlat(winner.pc))
	return MelodyResult{ScaleResult: scaleResult, SuggestedTonic: &winnerNote, TonicConfidence: confidence}
}

// peaksAndValleys returns the set of pitch classes that occur as both a
// local melodic peak and a local melodic valley somewhere in the
// sequence, spec §4.F's "+2 if the note appears as both peak and valley
// of a melodic arc".
func peaksAndValleys(notes []theory.Note) map[theory.PitchClass]bool {
	isPeak := make(map[theory.PitchClass]bool)
	isValley := make(map[theory.PitchClass]bool)
	for i := 1; i+1 < len(notes); i++ {
		prev, cur, next := notes[i-1].PitchClass(), notes[i].PitchClass(), notes[i+1].PitchClass()
		if cur > prev && cur > next {
			isPeak[cur] = true
		}
		if cur < prev && cur < next {
			isValley[cur] = true
		}
	}
	out := make(map[theory.PitchClass]bool)
	for pc := range isPeak {
		if isValley[pc] {
			out[pc] = true
		}
	}
	return out
}
