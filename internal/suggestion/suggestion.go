// Package suggestion implements spec §4.H: comparing with-key vs
// without-key vs alternative-key analyses to emit bidirectional key
// suggestions.
package suggestion

import (
	"context"
	"strconv"

	"github.com/zfogg/harmonic-analysis/internal/interpretation"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Kind is the suggestion variant spec §4.H's decision table emits.
type Kind int

const (
	AddKey Kind = iota
	RemoveKey
	ChangeKey
)

func (k Kind) String() string {
	switch k {
	case RemoveKey:
		return "remove_key"
	case ChangeKey:
		return "change_key"
	default:
		return "add_key"
	}
}

// Suggestion is one emitted recommendation, spec §4.H's closing paragraph.
type Suggestion struct {
	Kind                 Kind    `json:"kind"`
	SuggestedKey         string  `json:"suggested_key,omitempty"`
	Reason               string  `json:"reason"`
	Confidence           float64 `json:"confidence"`
	ExpectedImprovement  string  `json:"expected_improvement"`
}

// Suggestions is spec §3.1's "Suggestions" result of suggest_keys.
type Suggestions struct {
	Items []Suggestion `json:"items"`
}

// Engine wraps an interpretation.Engine to run the three-way counterfactual
// comparison spec §4.H's contract calls for.
type Engine struct {
	Analysis *interpretation.Engine
}

// NewEngine builds a suggestion engine over the given analysis engine.
func NewEngine(analysisEngine *interpretation.Engine) *Engine {
	return &Engine{Analysis: analysisEngine}
}

// Suggest implements suggest(chords, provided_key), spec §4.H.
func (e *Engine) Suggest(ctx context.Context, chords []string, providedKeyText string) (*Suggestions, error) {
	hasProvided := providedKeyText != ""

	var resultA *interpretation.Result
	if hasProvided {
		r, err := e.Analysis.Analyze(ctx, chords, interpretation.Options{ParentKey: providedKeyText})
		if err != nil {
			return nil, err
		}
		resultA = r
	}

	resultB, err := e.Analysis.Analyze(ctx, chords, interpretation.Options{})
	if err != nil {
		return nil, err
	}

	var baseKey theory.Key
	if hasProvided {
		baseKey = resultA.Primary.Key
	} else {
		baseKey = resultB.Primary.Key
	}
	candidateKeys := buildCandidateKeys(baseKey)

	type scoredCandidate struct {
		keyText string
		result  *interpretation.Result
		score   float64
	}
	var scoredCandidates []scoredCandidate
	for _, ck := range candidateKeys {
		keyText := keyToText(ck)
		r, err := e.Analysis.Analyze(ctx, chords, interpretation.Options{ParentKey: keyText})
		if err != nil {
			continue
		}
		scoredCandidates = append(scoredCandidates, scoredCandidate{
			keyText: keyText,
			result:  r,
			score:   relevanceScore(resultB, r),
		})
	}

	var items []Suggestion

	if !hasProvided {
		for _, sc := range scoredCandidates {
			if sc.score > 0.55 {
				items = append(items, Suggestion{
					Kind:                AddKey,
					SuggestedKey:        sc.keyText,
					Reason:              "analysis is clearer with a parent key of " + sc.keyText,
					Confidence:          renormalize(sc.score),
					ExpectedImprovement: improvementSummary(resultB, sc.result),
				})
			}
		}
	} else {
		scoreA := relevanceScore(resultB, resultA)
		scoreB := relevanceScore(resultA, resultB)

		if scoreA < scoreB {
			items = append(items, Suggestion{
				Kind:                RemoveKey,
				Reason:              "analysis is clearer without a supplied parent key",
				Confidence:          renormalize(scoreB - scoreA + 0.55),
				ExpectedImprovement: improvementSummary(resultA, resultB),
			})
		} else {
			var best *scoredCandidate
			for i := range scoredCandidates {
				if best == nil || scoredCandidates[i].score > best.score {
					best = &scoredCandidates[i]
				}
			}
			if best != nil && best.score > scoreA+0.15 {
				items = append(items, Suggestion{
					Kind:                ChangeKey,
					SuggestedKey:        best.keyText,
					Reason:              "a different parent key yields a stronger analysis",
					Confidence:          renormalize(best.score),
					ExpectedImprovement: improvementSummary(resultA, best.result),
				})
			}
		}
	}

	filtered := items[:0]
	for _, s := range items {
		if s.Confidence >= 0.55 {
			filtered = append(filtered, s)
		}
	}

	return &Suggestions{Items: filtered}, nil
}

func buildCandidateKeys(base theory.Key) []theory.Key {
	tonicPC := base.Tonic.PitchClass()
	var out []theory.Key

	fifthUp := theory.PitchClass((int(tonicPC) + 7) % 12)
	fifthDown := theory.PitchClass((int(tonicPC) + 5) % 12)
	out = append(out, theory.NewMajorKey(theory.NoteFromPitchClass(fifthUp, false)))
	out = append(out, theory.NewMajorKey(theory.NoteFromPitchClass(fifthDown, false)))

	if base.Mode == theory.Major {
		out = append(out, theory.NewMinorKey(base.Tonic)) // parallel minor
		relMinorPC := theory.PitchClass((int(tonicPC) + 9) % 12)
		out = append(out, theory.NewMinorKey(theory.NoteFromPitchClass(relMinorPC, false))) // relative minor
	} else {
		out = append(out, theory.NewMajorKey(base.Tonic)) // parallel major
		relMajorPC := theory.PitchClass((int(tonicPC) + 3) % 12)
		out = append(out, theory.NewMajorKey(theory.NoteFromPitchClass(relMajorPC, false))) // relative major
	}

	return out
}

func keyToText(k theory.Key) string {
	mode := "major"
	if k.Mode == theory.Minor {
		mode = "minor"
	}
	return k.Tonic.String() + " " + mode
}

// relevanceScore implements spec §4.H's key-relevance score.
func relevanceScore(without, with *interpretation.Result) float64 {
	romanImprovement := 0.0
	if len(without.Primary.RomanNumerals) == 0 && len(with.Primary.RomanNumerals) > 0 {
		romanImprovement = 1.0
	}

	confidenceImprovement := with.Primary.Confidence - without.Primary.Confidence
	if confidenceImprovement < 0 {
		confidenceImprovement = 0
	}
	if confidenceImprovement > 1 {
		confidenceImprovement = 1
	}

	typeImprovement := 0.0
	if with.Primary.Type.String() == "functional" && without.Primary.Type.String() != "functional" {
		typeImprovement = 1.0
	}

	patternImprovement := 0.0
	if hasStrongPatternEvidence(with) && !hasStrongPatternEvidence(without) {
		patternImprovement = 1.0
	}

	return 0.3*romanImprovement + 0.2*confidenceImprovement + 0.2*typeImprovement + 0.3*patternImprovement
}

func hasStrongPatternEvidence(r *interpretation.Result) bool {
	for _, e := range r.Primary.Evidence {
		if e.Type == theory.StructuralEvidence && e.Strength == 0.95 {
			return true
		}
	}
	return false
}

// renormalize scales a 0-1 relevance score into the [0.55, 1.0] confidence
// band spec §4.H requires for the suggestion itself.
func renormalize(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return 0.55 + score*0.45
}

func improvementSummary(before, after *interpretation.Result) string {
	delta := after.Primary.Confidence - before.Primary.Confidence
	if delta >= 0 {
		return "confidence improves by approximately " + formatDelta(delta)
	}
	return "confidence changes by approximately " + formatDelta(delta)
}

func formatDelta(delta float64) string {
	scaled := int(delta*100 + 0.5)
	if delta < 0 {
		scaled = int(delta*100 - 0.5)
	}
	return strconv.Itoa(scaled) + "%"
}
