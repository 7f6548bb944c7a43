package chordparser

import (
	"sort"

	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// tokenEffect mutates the chord being built when its token matches.
type tokenEffect func(c *Chord)

type token struct {
	text   []rune
	apply  tokenEffect
	weight int // tie-break for equal-length tokens; higher wins
}

// tokens lists every recognized body token, spec §4.B's quality, seventh,
// extension and alteration grammar productions, plus the real-world
// compound forms ("m7b5", "maj7", "dim7", "°7") a longest-match tokenizer
// needs as single entries so they aren't split into smaller pieces that
// would be matched in the wrong order.
var tokens = buildTokens()

func buildTokens() []token {
	list := []token{
		// Compound quality+seventh tokens (half-diminished), highest weight
		// so they win over "m"+"7"+"b5" at equal total length.
		{text: []rune("m7b5"), weight: 10, apply: func(c *Chord) {
			c.Quality = theory.Diminished
			c.Seventh = theory.MinorSeventh
		}},
		{text: []rune("ø"), weight: 10, apply: func(c *Chord) {
			c.Quality = theory.Diminished
			c.Seventh = theory.MinorSeventh
		}},

		// Seventh tokens.
		{text: []rune("maj7"), weight: 5, apply: func(c *Chord) { c.Seventh = theory.MajorSeventh }},
		{text: []rune("M7"), weight: 5, apply: func(c *Chord) { c.Seventh = theory.MajorSeventh }},
		{text: []rune("dim7"), weight: 5, apply: func(c *Chord) {
			c.Quality = theory.Diminished
			c.Seventh = theory.DiminishedSeventh
		}},
		{text: []rune("°7"), weight: 5, apply: func(c *Chord) {
			c.Quality = theory.Diminished
			c.Seventh = theory.DiminishedSeventh
		}},
		{text: []rune("7"), weight: 1, apply: func(c *Chord) { c.Seventh = theory.MinorSeventh }},

		// Quality tokens. "maj"/"min" must out-rank the single-letter "m"/
		// "M" at overlapping prefixes; length does that automatically, but
		// weight keeps the rule explicit and documented (spec rule 2).
		{text: []rune("min"), weight: 3, apply: func(c *Chord) { c.Quality = theory.MinorTriad }},
		{text: []rune("maj"), weight: 3, apply: func(c *Chord) { c.Quality = theory.MajorTriad }},
		{text: []rune("dim"), weight: 3, apply: func(c *Chord) { c.Quality = theory.Diminished }},
		{text: []rune("aug"), weight: 3, apply: func(c *Chord) { c.Quality = theory.Augmented }},
		{text: []rune("sus2"), weight: 4, apply: func(c *Chord) { c.Quality = theory.Sus2 }},
		{text: []rune("sus4"), weight: 4, apply: func(c *Chord) { c.Quality = theory.Sus4 }},
		{text: []rune("m"), weight: 1, apply: func(c *Chord) { c.Quality = theory.MinorTriad }},
		{text: []rune("M"), weight: 1, apply: func(c *Chord) { c.Quality = theory.MajorTriad }},
		{text: []rune("-"), weight: 1, apply: func(c *Chord) { c.Quality = theory.MinorTriad }},
		{text: []rune("+"), weight: 1, apply: func(c *Chord) { c.Quality = theory.Augmented }},
		{text: []rune("°"), weight: 1, apply: func(c *Chord) { c.Quality = theory.Diminished }},

		// Alterations (must out-rank bare extensions at the same start
		// position, e.g. "b9" vs a stray "9" — they never actually share a
		// start rune since alterations begin with b/#, but weight is kept
		// for clarity).
		{text: []rune("b5"), weight: 2, apply: alteration(5, theory.Flat)},
		{text: []rune("#5"), weight: 2, apply: alteration(5, theory.Sharp)},
		{text: []rune("b9"), weight: 2, apply: alteration(9, theory.Flat)},
		{text: []rune("#9"), weight: 2, apply: alteration(9, theory.Sharp)},
		{text: []rune("b11"), weight: 2, apply: alteration(11, theory.Flat)},
		{text: []rune("#11"), weight: 2, apply: alteration(11, theory.Sharp)},
		{text: []rune("b13"), weight: 2, apply: alteration(13, theory.Flat)},
		{text: []rune("#13"), weight: 2, apply: alteration(13, theory.Sharp)},

		// Bare extensions.
		{text: []rune("9"), weight: 1, apply: extension(theory.Ext9)},
		{text: []rune("11"), weight: 1, apply: extension(theory.Ext11)},
		{text: []rune("13"), weight: 1, apply: extension(theory.Ext13)},
	}

	sort.SliceStable(list, func(i, j int) bool {
		if len(list[i].text) != len(list[j].text) {
			return len(list[i].text) > len(list[j].text)
		}
		return list[i].weight > list[j].weight
	})
	return list
}

func alteration(degree int, acc theory.Accidental) tokenEffect {
	return func(c *Chord) {
		c.Alterations = appendAlterationOnce(c.Alterations, theory.Alteration{Degree: degree, Accidental: acc})
	}
}

func extension(ext theory.Extension) tokenEffect {
	return func(c *Chord) {
		c.Extensions = appendExtensionOnce(c.Extensions, ext)
	}
}

func appendExtensionOnce(list []theory.Extension, e theory.Extension) []theory.Extension {
	for _, existing := range list {
		if existing == e {
			return list
		}
	}
	return append(list, e)
}

func appendAlterationOnce(list []theory.Alteration, a theory.Alteration) []theory.Alteration {
	for _, existing := range list {
		if existing == a {
			return list
		}
	}
	return append(list, a)
}

// applyBody tokenizes the post-root, pre-bass remainder of a chord symbol
// using greedy longest-match at each position, applying each token's
// effect in encounter order. Returns false if a position matches no
// token at all.
func applyBody(c *Chord, body string) bool {
	r := []rune(body)
	pos := 0
	for pos < len(r) {
		matched := false
		for _, t := range tokens {
			n := len(t.text)
			if pos+n > len(r) {
				continue
			}
			if runesEqual(r[pos:pos+n], t.text) {
				t.apply(c)
				pos += n
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
