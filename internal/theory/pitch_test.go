package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		input   string
		wantPC  PitchClass
		wantErr bool
	}{
		{"C", 0, false},
		{"C#", 1, false},
		{"Db", 1, false},
		{"B#", 0, false},
		{"Cb", 11, false},
		{"Fx", 7, false},
		{"Gbb", 5, false},
		{"C4", 0, false},
		{"F#3", 6, false},
		{"", 0, true},
		{"H", 0, true},
		{"c", 0, true},
		{"Cz", 0, true},
	}
	for _, tc := range tests {
		note, err := ParseNote(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.wantPC, note.PitchClass(), "input %q", tc.input)
	}
}

func TestParseNoteUnicodeAccidentals(t *testing.T) {
	sharp, err := ParseNote("C♯")
	require.NoError(t, err)
	assert.Equal(t, PitchClass(1), sharp.PitchClass())

	flat, err := ParseNote("D♭")
	require.NoError(t, err)
	assert.Equal(t, PitchClass(1), flat.PitchClass())
}

func TestNoteEqualIsEnharmonic(t *testing.T) {
	cSharp, err := ParseNote("C#")
	require.NoError(t, err)
	dFlat, err := ParseNote("Db")
	require.NoError(t, err)

	assert.True(t, cSharp.Equal(dFlat))
	assert.NotEqual(t, cSharp.String(), dFlat.String(), "spellings should differ even though pitch classes match")
}

func TestNoteFromPitchClassSpelling(t *testing.T) {
	sharp := NoteFromPitchClass(6, false)
	assert.Equal(t, "F#", sharp.String())

	flat := NoteFromPitchClass(6, true)
	assert.Equal(t, "Gb", flat.String())

	natural := NoteFromPitchClass(0, true)
	assert.Equal(t, "C", natural.String())
}

func TestPitchClassNameAndIntervalName(t *testing.T) {
	assert.Equal(t, "D#", PitchClassName(3, false))
	assert.Equal(t, "Eb", PitchClassName(3, true))
	assert.Equal(t, "major third", IntervalName(4))
	assert.Equal(t, "perfect fifth", IntervalName(19)) // wraps mod 12
}
