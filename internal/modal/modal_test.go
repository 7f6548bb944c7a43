package modal

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

func TestAnalyzeGMixolydianOverC(t *testing.T) {
	chords := mustParseAll(t, []string{"G", "F", "C", "G"})
	c, err := theory.ParseNote("C")
	require.NoError(t, err)
	parent := theory.NewMajorKey(c)

	result := Analyze(chords, parent, true)

	assert.Equal(t, theory.PitchClass(7), result.LocalTonic.PitchClass())
	assert.Equal(t, theory.Mixolydian, result.Mode)
	assert.Equal(t, RelationshipMatches, result.Relationship)
	assert.Equal(t, ModalBorrowing, result.Classification)
	assert.Contains(t, result.Characteristics, "♭VII")
}

func TestAnalyzeConflictingParentKeyNeverSubstituted(t *testing.T) {
	// §8.1 parent-key honesty: a supplied parent key that can't reconcile
	// with the chord material reports "conflicts", not a silently swapped key.
	chords := mustParseAll(t, []string{"C#", "F#", "G#", "C#"})
	c, err := theory.ParseNote("C")
	require.NoError(t, err)
	parent := theory.NewMajorKey(c)

	result := Analyze(chords, parent, true)

	assert.Equal(t, RelationshipConflicts, result.Relationship)
	assert.Equal(t, parent.Tonic.PitchClass(), result.ParentKey.Tonic.PitchClass(),
		"the caller's own parent key is echoed back, not replaced")
}

func TestAnalyzeFindsParentKeyWhenNoneSupplied(t *testing.T) {
	chords := mustParseAll(t, []string{"Dm", "G", "C"})
	result := Analyze(chords, theory.Key{}, false)
	assert.Equal(t, theory.PitchClass(0), result.ParentKey.Tonic.PitchClass())
	assert.Equal(t, RelationshipMatches, result.Relationship)
}

func TestAnalyzeFramesProgression(t *testing.T) {
	chords := mustParseAll(t, []string{"G", "F", "C", "G"})
	result := Analyze(chords, theory.Key{}, false)
	assert.True(t, result.FramesProgression)
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "diatonic", Diatonic.String())
	assert.Equal(t, "modal_borrowing", ModalBorrowing.String())
	assert.Equal(t, "modal_candidate", ModalCandidate.String())
}
