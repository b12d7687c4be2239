// Package extraction turns free text into weighted canonical skills. The
// engine is a pure function over the text and the loaded dictionary: identical
// input always yields identical weights, which is what makes the stored-once
// persistence model safe.
package extraction

import (
	"jobboard/internal/dictionary"
)

const (
	baseWeight        = 1
	maxFrequencyBonus = 3
	emphasisBonus     = 2
	titleBonus        = 2
	maxWeight         = 10

	// maximum phrase length in tokens
	windowSize = 3
	// how many tokens away an emphasis term may sit from a skill mention
	emphasisWindow = 8
)

// emphasisTerms are cues that a nearby skill is important to the author.
var emphasisTerms = map[string]struct{}{
	"required":     {},
	"require":      {},
	"requirement":  {},
	"requirements": {},
	"must":         {},
	"mandatory":    {},
	"essential":    {},
	"key":          {},
	"strong":       {},
	"expert":       {},
	"expertise":    {},
	"proven":       {},
	"preferred":    {},
}

// Options control job-specific weighting. Title is only set when analyzing a
// job posting; candidate materials carry no title bonus.
type Options struct {
	Title string
}

type Engine struct {
	dict     *dictionary.Dictionary
	detector PhraseDetector
}

func NewEngine(dict *dictionary.Dictionary, detector PhraseDetector) *Engine {
	if detector == nil {
		detector = NewProseDetector()
	}
	return &Engine{dict: dict, detector: detector}
}

// ExtractSkills returns one weight per distinct canonical skill found in text.
// Phrases with no dictionary match are dropped. Weights start at 1, gain +1
// per additional occurrence (capped), +2 when an emphasis term appears within
// a short token window of any mention, +2 when the skill also occurs in the
// title, and are clamped to [0,10].
func (e *Engine) ExtractSkills(text string, opts Options) map[string]int {
	out := map[string]int{}
	if e == nil || e.dict == nil {
		return out
	}

	tokens := e.detector.Tokens(text)
	if len(tokens) == 0 {
		return out
	}

	emphasisAt := make([]bool, len(tokens))
	for i, t := range tokens {
		if _, ok := emphasisTerms[dictionary.NormalizePhrase(t)]; ok {
			emphasisAt[i] = true
		}
	}

	occ := e.matchPhrases(tokens)
	titleSkills := e.titleSkillSet(opts.Title)

	for skill, positions := range occ {
		w := baseWeight

		freq := len(positions) - 1
		if freq > maxFrequencyBonus {
			freq = maxFrequencyBonus
		}
		w += freq

		if anyNearEmphasis(positions, emphasisAt) {
			w += emphasisBonus
		}
		if _, ok := titleSkills[skill]; ok {
			w += titleBonus
		}

		if w > maxWeight {
			w = maxWeight
		}
		if w < 0 {
			w = 0
		}
		out[skill] = w
	}

	return out
}

// matchPhrases slides 1..windowSize token windows over the stream and records
// the start positions of every dictionary hit per canonical skill. Longer
// windows are matched first so "machine learning" does not additionally count
// its component tokens, and overlapping re-matches of the same skill are
// collapsed.
func (e *Engine) matchPhrases(tokens []string) map[string][]int {
	occ := map[string][]int{}
	covered := map[string]map[int]struct{}{}

	for n := windowSize; n >= 1; n-- {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := joinTokens(tokens[i : i+n])
			skill, ok := e.dict.Normalize(phrase)
			if !ok {
				continue
			}

			spans := covered[skill]
			if spans == nil {
				spans = map[int]struct{}{}
				covered[skill] = spans
			}
			overlap := false
			for p := i; p < i+n; p++ {
				if _, ok := spans[p]; ok {
					overlap = true
					break
				}
			}
			if overlap {
				continue
			}
			for p := i; p < i+n; p++ {
				spans[p] = struct{}{}
			}
			occ[skill] = append(occ[skill], i)
		}
	}
	return occ
}

func (e *Engine) titleSkillSet(title string) map[string]struct{} {
	set := map[string]struct{}{}
	if title == "" {
		return set
	}
	for skill := range e.matchPhrases(e.detector.Tokens(title)) {
		set[skill] = struct{}{}
	}
	return set
}

func anyNearEmphasis(positions []int, emphasisAt []bool) bool {
	for _, p := range positions {
		lo := p - emphasisWindow
		if lo < 0 {
			lo = 0
		}
		hi := p + emphasisWindow
		if hi >= len(emphasisAt) {
			hi = len(emphasisAt) - 1
		}
		for i := lo; i <= hi; i++ {
			if emphasisAt[i] {
				return true
			}
		}
	}
	return false
}

func joinTokens(ts []string) string {
	if len(ts) == 1 {
		return ts[0]
	}
	n := len(ts) - 1
	for _, t := range ts {
		n += len(t)
	}
	b := make([]byte, 0, n)
	for i, t := range ts {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, t...)
	}
	return string(b)
}
