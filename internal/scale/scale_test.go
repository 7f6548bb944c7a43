package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfogg/harmonic-analysis/internal/theory"
)

func mustNotes(t *testing.T, names []string) []theory.Note {
	t.Helper()
	out := make([]theory.Note, len(names))
	for i, n := range names {
		note, err := theory.ParseNote(n)
		require.NoError(t, err, n)
		out[i] = note
	}
	return out
}

func TestAnalyzeScaleSingleParent(t *testing.T) {
	// C D E F G A B is exactly C major's own scale: one parent key.
	notes := mustNotes(t, []string{"C", "D", "E", "F", "G", "A", "B"})
	result := AnalyzeScale(notes)
	require.Len(t, result.ParentKeys, 1)
	assert.Equal(t, theory.PitchClass(0), result.ParentKeys[0].Tonic.PitchClass())
	assert.Equal(t, Diatonic, result.Classification)
}

func TestAnalyzeScaleAmbiguousSubsetIsModalBorrowing(t *testing.T) {
	// A bare C-E-G major triad fits several major scales.
	notes := mustNotes(t, []string{"C", "E", "G"})
	result := AnalyzeScale(notes)
	assert.Greater(t, len(result.ParentKeys), 1)
	assert.Equal(t, ModalBorrowing, result.Classification)
}

func TestAnalyzeScaleFullyChromaticHasNoParent(t *testing.T) {
	notes := mustNotes(t, []string{"C", "C#", "D", "D#", "E", "F"})
	result := AnalyzeScale(notes)
	assert.Empty(t, result.ParentKeys)
	assert.Equal(t, ModalCandidate, result.Classification)
}

func TestAnalyzeMelodySuggestsTonicByEmphasis(t *testing.T) {
	notes := mustNotes(t, []string{"C", "D", "E", "D", "C"})
	result := AnalyzeMelody(notes)
	require.NotNil(t, result.SuggestedTonic)
	assert.Equal(t, theory.PitchClass(0), result.SuggestedTonic.PitchClass(), "first and last note, scored highest")
	assert.GreaterOrEqual(t, result.TonicConfidence, 0.0)
	assert.LessOrEqual(t, result.TonicConfidence, 1.0)
}

func TestAnalyzeMelodyEmptyInput(t *testing.T) {
	result := AnalyzeMelody(nil)
	assert.Nil(t, result.SuggestedTonic)
	assert.Equal(t, 0.0, result.TonicConfidence)
}
