// Package interpretation implements spec §4.G: orchestrating the chord
// parser and the three analyzers, collecting evidence, calibrating
// confidence, and ranking and filtering the resulting interpretations.
package interpretation

import (
	"time"

	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/chromatic"
	"github.com/zfogg/harmonic-analysis/internal/functional"
	"github.com/zfogg/harmonic-analysis/internal/modal"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Type is spec §3.1's Interpretation.type variant.
type Type int

const (
	Functional Type = iota
	Modal
	Chromatic
)

func (t Type) String() string {
	switch t {
	case Functional:
		return "functional"
	case Modal:
		return "modal"
	case Chromatic:
		return "chromatic"
	default:
		return "unknown"
	}
}

// Evidence is spec §3.1's Evidence entity.
type Evidence struct {
	Type        theory.EvidenceType `json:"type"`
	Strength    float64             `json:"strength"`
	Supports    []Type              `json:"supports"`
	Description string              `json:"description"`
	Basis       string              `json:"basis"`
}

// SubConfidences is the per-lens confidence breakdown spec §3.1 requires
// on every Interpretation, regardless of which lens ultimately won.
type SubConfidences struct {
	Functional float64 `json:"functional"`
	Modal      float64 `json:"modal"`
	Chromatic  float64 `json:"chromatic"`
}

// Interpretation is spec §3.1's Interpretation entity.
type Interpretation struct {
	Type                  Type                         `json:"type"`
	Confidence            float64                      `json:"confidence"`
	Summary               string                       `json:"summary"`
	RomanNumerals         []string                     `json:"roman_numerals"`
	Key                   theory.Key                   `json:"key"`
	Mode                  *theory.Mode                 `json:"mode,omitempty"`
	Cadences              []functional.Cadence         `json:"cadences"`
	Evidence              []Evidence                   `json:"evidence"`
	ChordFunctions        []functional.Function        `json:"chord_functions"`
	ModalCharacteristics  []string                     `json:"modal_characteristics"`
	SecondaryDominants    []chromatic.SecondaryDominant `json:"secondary_dominants"`
	BorrowedChords        []chromatic.BorrowedChord     `json:"borrowed_chords"`
	ChromaticMediants     []chromatic.ChromaticMediant  `json:"chromatic_mediants"`
	Contextual            modal.Classification          `json:"contextual_classification"`
	ParentKeyRelationship modal.ParentKeyRelationship    `json:"parent_key_relationship"`
	SubConfidences        SubConfidences                `json:"sub_confidences"`
}

// AlternativeInterpretation pairs an Interpretation with its spec
// §4.G.4.6 relationship to the primary.
type AlternativeInterpretation struct {
	Interpretation      Interpretation `json:"interpretation"`
	RelationshipToPrimary string       `json:"relationship_to_primary"`
}

// Metadata is the diagnostic envelope spec §3.1 requires on every result.
type Metadata struct {
	AnalysisDuration  time.Duration `json:"analysis_duration_ns"`
	CountConsidered   int           `json:"count_considered"`
	ThresholdUsed     float64       `json:"threshold_used"`
	PedagogicalLevel  string        `json:"pedagogical_level"`
}

// Result is spec §3.1's MultipleInterpretationResult.
type Result struct {
	Chords          []string                    `json:"chords"`
	ParentKeyOption string                       `json:"parent_key_option,omitempty"`
	Primary         Interpretation               `json:"primary_analysis"`
	Alternatives    []AlternativeInterpretation  `json:"alternative_analyses"`
	Suggestions     interface{}                  `json:"suggestions,omitempty"`
	Metadata        Metadata                     `json:"metadata"`
}

// PedagogicalLevel is spec §6's Options.pedagogical_level variant.
type PedagogicalLevel string

const (
	Beginner     PedagogicalLevel = "beginner"
	Intermediate PedagogicalLevel = "intermediate"
	Advanced     PedagogicalLevel = "advanced"
)

// defaultThreshold implements spec §4.G.4's per-level default.
func defaultThreshold(level PedagogicalLevel) float64 {
	switch level {
	case Beginner:
		return 0.70
	case Advanced:
		return 0.40
	default:
		return 0.50
	}
}

// Options is spec §6's Options struct.
type Options struct {
	ParentKey           string
	PedagogicalLevel    PedagogicalLevel
	ConfidenceThreshold *float64
	MaxAlternatives     *int
}

func (o Options) pedagogicalLevel() PedagogicalLevel {
	if o.PedagogicalLevel == "" {
		return Intermediate
	}
	return o.PedagogicalLevel
}

func (o Options) threshold() float64 {
	if o.ConfidenceThreshold != nil {
		return *o.ConfidenceThreshold
	}
	return defaultThreshold(o.pedagogicalLevel())
}

func (o Options) maxAlternatives() int {
	if o.MaxAlternatives != nil {
		return *o.MaxAlternatives
	}
	return 2
}

// ParsedChords parses every chord symbol in order via internal/chordparser,
// returning the first parse failure encountered (spec §4.G.1 step 2).
func ParsedChords(chordSymbols []string) ([]chordparser.Chord, error) {
	out := make([]chordparser.Chord, len(chordSymbols))
	for i, s := range chordSymbols {
		c, err := chordparser.ParseAt(s, i)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
