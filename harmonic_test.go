package harmonic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeChordProgressionIFourVOne(t *testing.T) {
	result, err := AnalyzeChordProgression(context.Background(), []string{"C", "F", "G", "C"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, TypeFunctional, result.Primary.Type)
	assert.Equal(t, []string{"I", "IV", "V", "I"}, result.Primary.RomanNumerals)
}

func TestAnalyzeChordProgressionRejectsEmptyInput(t *testing.T) {
	_, err := AnalyzeChordProgression(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestAnalyzeComprehensivelyPairsProgressionAndScale(t *testing.T) {
	result, err := AnalyzeComprehensively(context.Background(), "C F G C", "")
	require.NoError(t, err)

	require.NotNil(t, result.Progression)
	assert.Equal(t, TypeFunctional, result.Progression.Primary.Type)
	require.NotNil(t, result.Scale)
}

func TestAnalyzeScaleIdentifiesParent(t *testing.T) {
	result, err := AnalyzeScale(context.Background(), []string{"C", "D", "E", "F", "G", "A", "B"})
	require.NoError(t, err)
	require.Len(t, result.ParentKeys, 1)
}

func TestAnalyzeScaleRejectsEmptyInput(t *testing.T) {
	_, err := AnalyzeScale(context.Background(), nil)
	assert.Error(t, err)
}

func TestAnalyzeMelodySuggestsTonic(t *testing.T) {
	result, err := AnalyzeMelody(context.Background(), []string{"C", "D", "E", "D", "C"})
	require.NoError(t, err)
	require.NotNil(t, result.SuggestedTonic)
}

func TestSuggestKeysReturnsSuggestionsForMismatchedKey(t *testing.T) {
	suggestions, err := SuggestKeys(context.Background(), []string{"C", "F", "G", "C"}, "F# major")
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
}
