package suggestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfogg/harmonic-analysis/internal/cache"
	"github.com/zfogg/harmonic-analysis/internal/interpretation"
	"github.com/zfogg/harmonic-analysis/internal/metrics"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

func newTestAnalysisEngine() *interpretation.Engine {
	return &interpretation.Engine{
		Store:   cache.NewLRU(50),
		Metrics: metrics.NewNoop(),
		TTL:     interpretation.DefaultCacheTTL,
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "add_key", AddKey.String())
	assert.Equal(t, "remove_key", RemoveKey.String())
	assert.Equal(t, "change_key", ChangeKey.String())
}

func TestSuggestNoRemoveKeyWhenProvidedKeyAlreadyFits(t *testing.T) {
	e := NewEngine(newTestAnalysisEngine())
	suggestions, err := e.Suggest(context.Background(), []string{"C", "F", "G", "C"}, "C major")
	require.NoError(t, err)

	for _, s := range suggestions.Items {
		assert.NotEqual(t, RemoveKey, s.Kind)
	}
}

func TestSuggestRemoveKeyForUnrelatedProvidedKey(t *testing.T) {
	// C F G C is unambiguously C major; declaring F# major instead makes
	// every chord read as foreign, so the engine should recommend dropping it.
	e := NewEngine(newTestAnalysisEngine())
	suggestions, err := e.Suggest(context.Background(), []string{"C", "F", "G", "C"}, "F# major")
	require.NoError(t, err)

	require.NotEmpty(t, suggestions.Items)
	var found *Suggestion
	for i := range suggestions.Items {
		if suggestions.Items[i].Kind == RemoveKey {
			found = &suggestions.Items[i]
		}
	}
	require.NotNil(t, found, "expected a remove_key suggestion, got %+v", suggestions.Items)
	assert.GreaterOrEqual(t, found.Confidence, 0.55)
}

func TestSuggestConfidenceWithinRequiredBand(t *testing.T) {
	e := NewEngine(newTestAnalysisEngine())
	suggestions, err := e.Suggest(context.Background(), []string{"C", "F", "G", "C"}, "F# major")
	require.NoError(t, err)

	for _, s := range suggestions.Items {
		assert.GreaterOrEqual(t, s.Confidence, 0.55)
		assert.LessOrEqual(t, s.Confidence, 1.0)
	}
}

func TestSuggestAddOrChangeKeyNeverRegressesConfidence(t *testing.T) {
	ctx := context.Background()
	analysis := newTestAnalysisEngine()
	e := NewEngine(analysis)

	chords := []string{"C", "F", "G", "C"}
	before, err := analysis.Analyze(ctx, chords, interpretation.Options{ParentKey: "F# major"})
	require.NoError(t, err)

	suggestions, err := e.Suggest(ctx, chords, "F# major")
	require.NoError(t, err)

	for _, s := range suggestions.Items {
		if s.Kind != AddKey && s.Kind != ChangeKey {
			continue
		}
		after, err := analysis.Analyze(ctx, chords, interpretation.Options{ParentKey: s.SuggestedKey})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after.Primary.Confidence, before.Primary.Confidence-0.05)
	}
}

func TestSuggestRemoveKeyImprovesConfidenceWhenApplied(t *testing.T) {
	ctx := context.Background()
	analysis := newTestAnalysisEngine()
	e := NewEngine(analysis)

	chords := []string{"C", "F", "G", "C"}
	before, err := analysis.Analyze(ctx, chords, interpretation.Options{ParentKey: "F# major"})
	require.NoError(t, err)

	suggestions, err := e.Suggest(ctx, chords, "F# major")
	require.NoError(t, err)

	var sawRemove bool
	for _, s := range suggestions.Items {
		if s.Kind != RemoveKey {
			continue
		}
		sawRemove = true
		after, err := analysis.Analyze(ctx, chords, interpretation.Options{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after.Primary.Confidence, before.Primary.Confidence-0.05)
	}
	assert.True(t, sawRemove, "expected a remove_key suggestion for this scenario")
}

func TestSuggestRejectsEmptyChordList(t *testing.T) {
	e := NewEngine(newTestAnalysisEngine())
	_, err := e.Suggest(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestHasStrongPatternEvidenceMatchesOnTypeAndStrength(t *testing.T) {
	r := &interpretation.Result{
		Primary: interpretation.Interpretation{
			Evidence: []interpretation.Evidence{
				{Type: theory.StructuralEvidence, Strength: 0.95, Description: "matches a well-known functional progression pattern"},
			},
		},
	}
	assert.True(t, hasStrongPatternEvidence(r))
}

func TestHasStrongPatternEvidenceIgnoresDescriptionWordingAlone(t *testing.T) {
	r := &interpretation.Result{
		Primary: interpretation.Interpretation{
			Evidence: []interpretation.Evidence{
				{Type: theory.StructuralEvidence, Strength: 0.6, Description: "a well-known but weaker shape"},
			},
		},
	}
	assert.False(t, hasStrongPatternEvidence(r))
}

func TestHasStrongPatternEvidenceFalseWhenNoEvidence(t *testing.T) {
	r := &interpretation.Result{}
	assert.False(t, hasStrongPatternEvidence(r))
}
