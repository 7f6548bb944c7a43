package chromatic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfogg/harmonic-analysis/internal/chordparser"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

func mustParseAll(t *testing.T, symbols []string) []chordparser.Chord {
	t.Helper()
	out := make([]chordparser.Chord, len(symbols))
	for i, s := range symbols {
		c, err := chordparser.Parse(s)
		require.NoError(t, err, s)
		out[i] = c
	}
	return out
}

func cMajor(t *testing.T) theory.Key {
	t.Helper()
	c, err := theory.ParseNote("C")
	require.NoError(t, err)
	return theory.NewMajorKey(c)
}

func TestAnalyzeSecondaryDominantVOfII(t *testing.T) {
	chords := mustParseAll(t, []string{"C", "A7", "Dm", "G7", "C"})
	result := Analyze(chords, cMajor(t))

	require.Len(t, result.SecondaryDominants, 1)
	sd := result.SecondaryDominants[0]
	assert.Equal(t, 1, sd.ChordIndex, "A7 is the second chord")
	assert.Equal(t, 1, sd.TargetDegree, "it tonicizes ii (Dm)")
	assert.Equal(t, "V7/ii", sd.Roman)
}

func TestAnalyzePrimaryDominantIsNotSecondary(t *testing.T) {
	chords := mustParseAll(t, []string{"C", "G7", "C"})
	result := Analyze(chords, cMajor(t))
	assert.Empty(t, result.SecondaryDominants)
}

func TestAnalyzeBorrowedChordFromParallelMinor(t *testing.T) {
	// Ab is bVI borrowed from C minor into C major.
	chords := mustParseAll(t, []string{"C", "Ab", "G", "C"})
	result := Analyze(chords, cMajor(t))
	require.NotEmpty(t, result.BorrowedChords)
	assert.Equal(t, 1, result.BorrowedChords[0].ChordIndex)
}

func TestAnalyzeChromaticMediant(t *testing.T) {
	// A diminished triad (A, C, Eb) shares only its C with the C major
	// tonic triad (C, E, G) — a single common tone, the mediant relation.
	chords := mustParseAll(t, []string{"C", "Adim", "C"})
	result := Analyze(chords, cMajor(t))
	require.NotEmpty(t, result.ChromaticMediants)
	assert.Equal(t, 1, result.ChromaticMediants[0].ChordIndex)
	assert.Equal(t, "VI", result.ChromaticMediants[0].Roman)
}
