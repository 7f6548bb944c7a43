// Package harmonic is a tonal-music analysis engine: it parses chord
// progressions and note collections and produces ranked, evidence-backed
// interpretations with calibrated confidence, plus bidirectional
// suggestions for improving an analysis by adding, removing or changing
// an assumed key.
//
// The engine has no I/O of its own — every entry point takes a
// context.Context purely so a caller embedding it behind a network or
// queue boundary can cancel in-flight work; no analyzer here performs
// blocking I/O itself.
package harmonic

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/zfogg/harmonic-analysis/internal/errors"
	"github.com/zfogg/harmonic-analysis/internal/interpretation"
	"github.com/zfogg/harmonic-analysis/internal/scale"
	"github.com/zfogg/harmonic-analysis/internal/suggestion"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// Re-exported types so callers never need to import internal packages.
type (
	Options                  = interpretation.Options
	PedagogicalLevel          = interpretation.PedagogicalLevel
	Result                    = interpretation.Result
	Interpretation            = interpretation.Interpretation
	AlternativeInterpretation = interpretation.AlternativeInterpretation
	Evidence                  = interpretation.Evidence
	Metadata                  = interpretation.Metadata
	InterpretationType        = interpretation.Type

	ScaleAnalysisResult  = scale.Result
	MelodyAnalysisResult = scale.MelodyResult

	Note = theory.Note

	Suggestions = suggestion.Suggestions
	Suggestion  = suggestion.Suggestion

	AnalysisError = apperrors.AnalysisError
)

const (
	Beginner     = interpretation.Beginner
	Intermediate = interpretation.Intermediate
	Advanced     = interpretation.Advanced

	TypeFunctional = interpretation.Functional
	TypeModal      = interpretation.Modal
	TypeChromatic  = interpretation.Chromatic
)

// Engine is the analysis engine, holding its cache and metrics. Most
// callers can use the package-level convenience functions, which share a
// single lazily-built default Engine; construct one directly (NewEngine)
// when you want an isolated cache or custom metrics (e.g. in tests, via
// Engine.Metrics = metrics.NewNoop()).
type Engine = interpretation.Engine

// NewEngine builds a fresh Engine with an in-process LRU cache of the
// spec's default capacity and its own Prometheus metric set.
func NewEngine() *Engine {
	return interpretation.NewEngine()
}

var (
	defaultEngineOnce sync.Once
	defaultEngineInst *Engine
)

func defaultEngine() *Engine {
	defaultEngineOnce.Do(func() { defaultEngineInst = NewEngine() })
	return defaultEngineInst
}

// AnalyzeChordProgression is the engine's primary entry point: parse and
// analyze a chord progression, returning a primary interpretation, up to
// Options.MaxAlternatives ranked alternatives, and diagnostic metadata.
func AnalyzeChordProgression(ctx context.Context, chords []string, opts Options) (*Result, error) {
	return defaultEngine().Analyze(ctx, chords, opts)
}

// ComprehensiveResult pairs a chord-progression analysis with a parallel
// scale analysis over the progression's distinct chord roots, the original
// source's ComprehensiveAnalysisResult aggregate.
type ComprehensiveResult struct {
	Progression *Result
	Scale       *ScaleAnalysisResult
}

// AnalyzeComprehensively splits progressionInput on whitespace, analyzes
// it as a chord progression, and additionally runs a scale analysis over
// the distinct root pitch classes the progression touches — the
// combined view the original source's comprehensive_analysis module
// produced, rather than just the progression analysis in isolation.
func AnalyzeComprehensively(ctx context.Context, progressionInput string, parentKey string) (*ComprehensiveResult, error) {
	chords := strings.Fields(progressionInput)
	progression, err := AnalyzeChordProgression(ctx, chords, Options{ParentKey: parentKey})
	if err != nil {
		return nil, err
	}

	roots := make([]string, 0, len(progression.Primary.RomanNumerals))
	seen := make(map[theory.PitchClass]bool)
	parsed, err := interpretation.ParsedChords(chords)
	if err == nil {
		for _, c := range parsed {
			pc := c.Root.PitchClass()
			if !seen[pc] {
				seen[pc] = true
				roots = append(roots, c.Root.String())
			}
		}
	}

	var scaleResult *ScaleAnalysisResult
	if len(roots) > 0 {
		s, scaleErr := AnalyzeScale(ctx, roots)
		if scaleErr == nil {
			scaleResult = s
		}
	}

	return &ComprehensiveResult{Progression: progression, Scale: scaleResult}, nil
}

// AnalyzeScale identifies the parent scale(s) containing a note
// collection (order irrelevant), per spec §4.F.
func AnalyzeScale(ctx context.Context, notes []string) (*ScaleAnalysisResult, error) {
	parsed, err := parseNotes(notes)
	if err != nil {
		return nil, err
	}
	result := scale.AnalyzeScale(parsed)
	return &result, nil
}

// AnalyzeMelody runs the scale analysis over an ordered note sequence and
// additionally infers a suggested tonic by melodic emphasis, per spec
// §4.F.
func AnalyzeMelody(ctx context.Context, notes []string) (*MelodyAnalysisResult, error) {
	parsed, err := parseNotes(notes)
	if err != nil {
		return nil, err
	}
	result := scale.AnalyzeMelody(parsed)
	return &result, nil
}

// SuggestKeys compares with-key, without-key and nearby-alternative-key
// analyses of chords and emits add/remove/change-key suggestions, per
// spec §4.H. currentKey may be empty.
func SuggestKeys(ctx context.Context, chords []string, currentKey string) (*Suggestions, error) {
	return suggestion.NewEngine(defaultEngine()).Suggest(ctx, chords, currentKey)
}

func parseNotes(notes []string) ([]theory.Note, error) {
	if len(notes) == 0 {
		return nil, apperrors.EmptyProgression()
	}
	out := make([]theory.Note, len(notes))
	for i, n := range notes {
		note, err := theory.ParseNote(n)
		if err != nil {
			return nil, apperrors.UnparsableNote(n, i)
		}
		out[i] = note
	}
	return out, nil
}
