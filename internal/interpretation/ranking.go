package interpretation

import "sort"

// rankAndFilter implements spec §4.G.4.
func rankAndFilter(functionalInterp, modalInterp, chromaticInterp Interpretation, threshold float64, maxAlternatives int) (Interpretation, []AlternativeInterpretation) {
	candidates := []Interpretation{functionalInterp, modalInterp, chromaticInterp}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if isFunctionalModalPair(a, b) && absDiff(a.Confidence, b.Confidence) <= 0.05 {
			// Tie-break: within 0.05, functional wins over modal. The
			// supplied parent key is not consulted here.
			if a.Type == Functional {
				return true
			}
			if b.Type == Functional {
				return false
			}
		}
		return a.Confidence > b.Confidence
	})

	primary := candidates[0]
	rest := candidates[1:]

	var alternatives []AlternativeInterpretation
	for _, alt := range rest {
		if alt.Confidence < threshold {
			continue
		}
		alternatives = append(alternatives, AlternativeInterpretation{
			Interpretation:         alt,
			RelationshipToPrimary: relationshipToPrimary(primary, alt),
		})
		if len(alternatives) >= maxAlternatives {
			break
		}
	}

	return primary, alternatives
}

func isFunctionalModalPair(a, b Interpretation) bool {
	return (a.Type == Functional && b.Type == Modal) || (a.Type == Modal && b.Type == Functional)
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}

// relationshipToPrimary implements spec §4.G.4.6.
func relationshipToPrimary(primary, alt Interpretation) string {
	if primary.Key.Tonic.PitchClass() != alt.Key.Tonic.PitchClass() {
		return "reinterpretation"
	}
	if primary.Type == Functional && alt.Type == Modal {
		return "modal reading"
	}
	if primary.Type == Modal && alt.Type == Functional {
		return "modal reading"
	}
	return "alternative lens"
}
