package interpretation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zfogg/harmonic-analysis/internal/cache"
	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/chromatic"
	apperrors "github.com/zfogg/harmonic-analysis/internal/errors"
	"github.com/zfogg/harmonic-analysis/internal/functional"
	"github.com/zfogg/harmonic-analysis/internal/logger"
	"github.com/zfogg/harmonic-analysis/internal/metrics"
	"github.com/zfogg/harmonic-analysis/internal/modal"
	"github.com/zfogg/harmonic-analysis/internal/theory"
	"go.uber.org/zap"
)

// DefaultCacheTTL is spec §4.I's default TTL.
const DefaultCacheTTL = 10 * time.Minute

// Engine implements spec §4.G's analyze(chords, options), wrapped with
// the §4.I cache. It holds no other mutable state — the music-constants
// tables it reads through the analyzer packages are themselves read-only
// (spec §5, "Shared resources").
type Engine struct {
	Store   cache.Store
	Metrics *metrics.EngineMetrics
	TTL     time.Duration
}

// NewEngine builds an Engine with an in-process LRU of the default
// capacity (500) and a fresh Prometheus metric set.
func NewEngine() *Engine {
	lru := cache.NewLRU(500)
	m := metrics.NewEngineMetrics()
	lru.OnEvict(func(reason string) { m.CacheEvictionsTotal.WithLabelValues(reason).Inc() })
	return &Engine{Store: lru, Metrics: m, TTL: DefaultCacheTTL}
}

// Analyze implements spec §4.G.1's orchestration.
func (e *Engine) Analyze(ctx context.Context, chordSymbols []string, opts Options) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if len(chordSymbols) == 0 {
		return nil, apperrors.EmptyProgression()
	}

	threshold := opts.threshold()
	maxAlts := opts.maxAlternatives()
	fingerprint := cache.Fingerprint(chordSymbols, opts.ParentKey, string(opts.pedagogicalLevel()), threshold, maxAlts)

	if raw, ok := e.Store.Get(ctx, fingerprint); ok {
		var cached Result
		if err := json.Unmarshal(raw, &cached); err == nil {
			e.Metrics.CacheHitsTotal.Inc()
			return &cached, nil
		}
		// Cache corruption: evict and recompute, spec §4.G.6.
		if d, ok := e.Store.(interface{ Delete(string) }); ok {
			d.Delete(fingerprint)
		}
	}
	e.Metrics.CacheMissesTotal.Inc()

	chords, err := ParsedChords(chordSymbols)
	if err != nil {
		return nil, err
	}

	var parentKey theory.Key
	hasParentKey := false
	if opts.ParentKey != "" {
		parentKey, err = ParseKeyText(opts.ParentKey)
		if err != nil {
			return nil, err
		}
		hasParentKey = true
	}

	effectiveKey := parentKey
	if !hasParentKey {
		effectiveKey = functional.InferKey(chords)
	}

	var fr functional.Result
	var mr modal.Result
	var cr chromatic.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fr = functional.Analyze(chords, effectiveKey, true)
		return gctx.Err()
	})
	g.Go(func() error {
		mr = modal.Analyze(chords, parentKey, hasParentKey)
		return gctx.Err()
	})
	g.Go(func() error {
		cr = chromatic.Analyze(chords, effectiveKey)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		// Cancellation propagated from the caller: never populate the
		// cache with a partial result (spec §5, "Cancellation").
		return nil, err
	}

	level := opts.pedagogicalLevel()
	functionalInterp := buildFunctionalInterpretation(fr, level)
	modalInterp := buildModalInterpretation(chords, mr, level)
	chromaticInterp := buildChromaticInterpretation(chords, effectiveKey, cr, fr, level)

	primary, alternatives := rankAndFilter(functionalInterp, modalInterp, chromaticInterp, threshold, maxAlts)

	result := &Result{
		Chords:          chordSymbols,
		ParentKeyOption: opts.ParentKey,
		Primary:         primary,
		Alternatives:    alternatives,
		Metadata: Metadata{
			AnalysisDuration: time.Since(start),
			CountConsidered:  3,
			ThresholdUsed:    threshold,
			PedagogicalLevel: string(opts.pedagogicalLevel()),
		},
	}

	if ctx.Err() == nil {
		if raw, err := json.Marshal(result); err == nil {
			e.Store.Set(ctx, fingerprint, raw, e.TTL)
		} else {
			logger.WarnWithFields("failed to marshal analysis result for caching", err)
		}
	}

	for _, interp := range []Interpretation{primary} {
		e.Metrics.InterpretationsTotal.WithLabelValues(interp.Type.String(), "displayed").Inc()
	}
	for _, alt := range alternatives {
		e.Metrics.InterpretationsTotal.WithLabelValues(alt.Interpretation.Type.String(), "displayed").Inc()
	}

	logger.Log.Debug("analysis complete",
		logger.WithRequestID(requestID),
		zap.Int("chord_count", len(chordSymbols)),
		zap.Float64("primary_confidence", primary.Confidence),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func buildFunctionalInterpretation(fr functional.Result, level PedagogicalLevel) Interpretation {
	evidence := functionalEvidence(fr, level)
	confidence := calibrateConfidence(evidence)

	romans := make([]string, len(fr.Romans))
	chordFns := make([]functional.Function, len(fr.Romans))
	for i, r := range fr.Romans {
		romans[i] = r.Roman
		chordFns[i] = r.Function
	}

	return Interpretation{
		Type:           Functional,
		Confidence:     confidence,
		Summary:        "functional analysis in " + fr.Key.String(),
		RomanNumerals:  romans,
		Key:            fr.Key,
		Cadences:       fr.Cadences,
		Evidence:       evidence,
		ChordFunctions: chordFns,
		Contextual:     modal.Diatonic,
		SubConfidences: SubConfidences{Functional: confidence},
	}
}

func buildModalInterpretation(chords []chordparser.Chord, mr modal.Result, level PedagogicalLevel) Interpretation {
	evidence := modalEvidence(chords, mr, level)
	confidence := calibrateConfidence(evidence)
	mode := mr.Mode

	key := theory.NewModalKey(mr.LocalTonic, mr.Mode)

	return Interpretation{
		Type:                  Modal,
		Confidence:            confidence,
		Summary:               mr.LocalTonic.String() + " " + mr.Mode.String(),
		Key:                   key,
		Mode:                  &mode,
		Evidence:              evidence,
		ModalCharacteristics:  mr.Characteristics,
		Contextual:            mr.Classification,
		ParentKeyRelationship: mr.Relationship,
		SubConfidences:        SubConfidences{Modal: confidence},
	}
}

func buildChromaticInterpretation(chords []chordparser.Chord, key theory.Key, cr chromatic.Result, fr functional.Result, level PedagogicalLevel) Interpretation {
	evidence := chromaticEvidence(cr, level)
	confidence := calibrateConfidence(evidence)

	romans := make([]string, len(fr.Romans))
	for i, r := range fr.Romans {
		romans[i] = r.Roman
	}
	for _, sd := range cr.SecondaryDominants {
		if sd.ChordIndex < len(romans) {
			romans[sd.ChordIndex] = sd.Roman
		}
	}

	return Interpretation{
		Type:               Chromatic,
		Confidence:         confidence,
		Summary:            "chromatic analysis in " + key.String(),
		RomanNumerals:      romans,
		Key:                key,
		Evidence:           evidence,
		SecondaryDominants: cr.SecondaryDominants,
		BorrowedChords:     cr.BorrowedChords,
		ChromaticMediants:  cr.ChromaticMediants,
		Contextual:         modal.Diatonic,
		SubConfidences:     SubConfidences{Chromatic: confidence},
	}
}
