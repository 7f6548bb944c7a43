package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanNumeralCase(t *testing.T) {
	assert.Equal(t, "I", RomanNumeralCase(0, MajorTriad, NoSeventh))
	assert.Equal(t, "vi", RomanNumeralCase(5, MinorTriad, NoSeventh))
	assert.Equal(t, "ii°", RomanNumeralCase(1, Diminished, NoSeventh))
	assert.Equal(t, "viiø7", RomanNumeralCase(6, Diminished, MinorSeventh))
	assert.Equal(t, "vii°7", RomanNumeralCase(6, Diminished, DiminishedSeventh))
	assert.Equal(t, "III+", RomanNumeralCase(2, Augmented, NoSeventh))
	assert.Equal(t, "?", RomanNumeralCase(7, MajorTriad, NoSeventh))
}

func TestInversionFigure(t *testing.T) {
	assert.Equal(t, "", InversionFigure(0, false))
	assert.Equal(t, "6", InversionFigure(1, false))
	assert.Equal(t, "64", InversionFigure(2, false))
	assert.Equal(t, "", InversionFigure(0, true))
	assert.Equal(t, "65", InversionFigure(1, true))
	assert.Equal(t, "43", InversionFigure(2, true))
	assert.Equal(t, "42", InversionFigure(3, true))
}
