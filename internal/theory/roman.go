package theory

// RomanNumeralBase names each scale degree's base Roman numeral, before
// case is adjusted for the triad quality actually built on it. Index 0 =
// degree 1 (tonic).
var RomanNumeralBase = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// RomanNumeralCase returns the Roman numeral for scale degree (1-7, index
// 0-6) with casing set by the chord quality actually built there: upper
// case for major/augmented, lower case for minor/diminished, per standard
// notation. Diminished and half-diminished chords append a ° / ø marker.
func RomanNumeralCase(degreeIndex int, quality Quality, seventh Seventh) string {
	if degreeIndex < 0 || degreeIndex > 6 {
		return "?"
	}
	base := RomanNumeralBase[degreeIndex]
	switch quality {
	case MinorTriad, Diminished:
		base = toLowerRoman(base)
	}
	switch quality {
	case Diminished:
		if seventh == MinorSeventh {
			base += "ø7" // half-diminished
		} else {
			base += "°"
			if seventh == DiminishedSeventh {
				base += "7"
			}
		}
	case Augmented:
		base += "+"
	}
	return base
}

func toLowerRoman(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c = c - 'A' + 'a'
		}
		out[i] = c
	}
	return string(out)
}

// InversionFigure names the figured-bass suffix for a Roman numeral given
// which chord tone sits in the bass, spec's supplemented inversion
// feature: root position has no figure, first inversion triads are "6",
// second inversion triads are "64"; for seventh chords first/second/third
// inversion are "65"/"43"/"42".
func InversionFigure(bassDegreeIndexWithinChord int, hasSeventh bool) string {
	if hasSeventh {
		switch bassDegreeIndexWithinChord {
		case 0:
			return ""
		case 1:
			return "65"
		case 2:
			return "43"
		case 3:
			return "42"
		}
		return ""
	}
	switch bassDegreeIndexWithinChord {
	case 0:
		return ""
	case 1:
		return "6"
	case 2:
		return "64"
	}
	return ""
}
