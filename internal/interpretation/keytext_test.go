package interpretation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfogg/harmonic-analysis/internal/theory"
)

func TestParseKeyTextMajor(t *testing.T) {
	k, err := ParseKeyText("C major")
	require.NoError(t, err)
	assert.Equal(t, theory.Major, k.Mode)
	assert.Equal(t, theory.PitchClass(0), k.Tonic.PitchClass())
}

func TestParseKeyTextMinorIsCaseInsensitiveOnModeWord(t *testing.T) {
	k, err := ParseKeyText("A MINOR")
	require.NoError(t, err)
	assert.Equal(t, theory.Minor, k.Mode)
	assert.Equal(t, theory.PitchClass(9), k.Tonic.PitchClass())
}

func TestParseKeyTextFlatTonic(t *testing.T) {
	k, err := ParseKeyText("Bb major")
	require.NoError(t, err)
	assert.Equal(t, theory.PitchClass(10), k.Tonic.PitchClass())
}

func TestParseKeyTextRejectsMissingMode(t *testing.T) {
	_, err := ParseKeyText("C")
	assert.Error(t, err)
}

func TestParseKeyTextRejectsUnknownMode(t *testing.T) {
	_, err := ParseKeyText("C dorian")
	assert.Error(t, err)
}

func TestParseKeyTextRejectsInvalidTonic(t *testing.T) {
	_, err := ParseKeyText("H major")
	assert.Error(t, err)
}
