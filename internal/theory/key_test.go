package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModalKeyParentTonic(t *testing.T) {
	d, err := ParseNote("D")
	require.NoError(t, err)

	key := NewModalKey(d, Dorian)
	assert.Equal(t, "Dorian", key.Mode.String())
	assert.Equal(t, PitchClass(0), key.ParentTonic.PitchClass(), "D Dorian's parent major is C major")
}

func TestKeyDiatonicPitchClassesAndDegree(t *testing.T) {
	c, err := ParseNote("C")
	require.NoError(t, err)
	key := NewMajorKey(c)

	degrees := key.DiatonicPitchClasses()
	assert.Len(t, degrees, 7)
	assert.True(t, degrees[PitchClass(0)])
	assert.True(t, degrees[PitchClass(4)])
	assert.False(t, degrees[PitchClass(1)], "C# is not diatonic to C major")

	idx, ok := key.Degree(PitchClass(7))
	require.True(t, ok)
	assert.Equal(t, 4, idx, "G is the fifth scale degree, index 4")

	_, ok = key.Degree(PitchClass(1))
	assert.False(t, ok)
}

func TestKeyString(t *testing.T) {
	c, err := ParseNote("C")
	require.NoError(t, err)
	assert.Equal(t, "C major", NewMajorKey(c).String())
}
