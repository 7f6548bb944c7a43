package interpretation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zfogg/harmonic-analysis/internal/theory"
)

func cKey() theory.Key { return theory.NewMajorKey(theory.NoteFromPitchClass(0, false)) }
func gKey() theory.Key { return theory.NewMajorKey(theory.NoteFromPitchClass(7, false)) }

func TestRankAndFilterPrefersFunctionalWithinTieBand(t *testing.T) {
	functionalInterp := Interpretation{Type: Functional, Confidence: 0.80, Key: cKey()}
	modalInterp := Interpretation{Type: Modal, Confidence: 0.82, Key: cKey()}
	chromaticInterp := Interpretation{Type: Chromatic, Confidence: 0.10, Key: cKey()}

	primary, _ := rankAndFilter(functionalInterp, modalInterp, chromaticInterp, 0.3, 2)
	assert.Equal(t, Functional, primary.Type)
}

func TestRankAndFilterPicksHighestConfidenceOutsideTieBand(t *testing.T) {
	functionalInterp := Interpretation{Type: Functional, Confidence: 0.40, Key: cKey()}
	modalInterp := Interpretation{Type: Modal, Confidence: 0.90, Key: cKey()}
	chromaticInterp := Interpretation{Type: Chromatic, Confidence: 0.10, Key: cKey()}

	primary, _ := rankAndFilter(functionalInterp, modalInterp, chromaticInterp, 0.3, 2)
	assert.Equal(t, Modal, primary.Type)
}

func TestRankAndFilterDropsAlternativesBelowThreshold(t *testing.T) {
	functionalInterp := Interpretation{Type: Functional, Confidence: 0.90, Key: cKey()}
	modalInterp := Interpretation{Type: Modal, Confidence: 0.20, Key: cKey()}
	chromaticInterp := Interpretation{Type: Chromatic, Confidence: 0.10, Key: cKey()}

	_, alternatives := rankAndFilter(functionalInterp, modalInterp, chromaticInterp, 0.5, 2)
	assert.Empty(t, alternatives)
}

func TestRankAndFilterCapsAlternativesAtMax(t *testing.T) {
	functionalInterp := Interpretation{Type: Functional, Confidence: 0.90, Key: cKey()}
	modalInterp := Interpretation{Type: Modal, Confidence: 0.70, Key: cKey()}
	chromaticInterp := Interpretation{Type: Chromatic, Confidence: 0.60, Key: cKey()}

	_, alternatives := rankAndFilter(functionalInterp, modalInterp, chromaticInterp, 0.3, 1)
	assert.Len(t, alternatives, 1)
}

func TestRelationshipToPrimaryReinterpretationOnKeyMismatch(t *testing.T) {
	primary := Interpretation{Type: Functional, Key: cKey()}
	alt := Interpretation{Type: Functional, Key: gKey()}
	assert.Equal(t, "reinterpretation", relationshipToPrimary(primary, alt))
}

func TestRelationshipToPrimaryModalReadingAcrossLenses(t *testing.T) {
	primary := Interpretation{Type: Functional, Key: cKey()}
	alt := Interpretation{Type: Modal, Key: cKey()}
	assert.Equal(t, "modal reading", relationshipToPrimary(primary, alt))
}

func TestRelationshipToPrimaryAlternativeLensWhenSameTypeAndKey(t *testing.T) {
	primary := Interpretation{Type: Chromatic, Key: cKey()}
	alt := Interpretation{Type: Chromatic, Key: cKey()}
	assert.Equal(t, "alternative lens", relationshipToPrimary(primary, alt))
}
