// Package prefilter accelerates the pattern matcher's anchor loop. Lua
// patterns have no alternation, so there is at most one mandatory leading
// item to extract (never a literal sequence or a cross-product of
// branches, as a regex engine with alternation would need) — this package
// narrows the teacher's literal-extraction idea down to exactly that one
// case: the pattern's first item, when it must consume a byte before any
// match can start.
package prefilter

import (
	"github.com/coregx/luapattern/pattern"
	"github.com/coregx/luapattern/simd"
)

// MaxLiterals bounds how many distinct bytes a leading class set may expand
// to before building an Aho-Corasick automaton over it stops being worth
// the construction cost. Above this the anchor loop just tries every
// offset, matching the config knob's name in Config.MaxPrefilterLiterals.
const MaxLiterals = 64

// Extract inspects a validated, non-anchored pattern and returns a
// Prefilter over its mandatory leading byte set, plus whether one could be
// built at all. Patterns that start with '^' are not candidates: the
// anchor loop only ever tries offset 0 for those, so a prefilter buys
// nothing.
func Extract(patt []byte, maxLiterals int) (pattern.Prefilter, bool) {
	if len(patt) == 0 || patt[0] == '^' {
		return nil, false
	}
	if maxLiterals <= 0 {
		maxLiterals = MaxLiterals
	}

	set, mandatory := leadingItemSet(patt, 0)
	if !mandatory {
		return nil, false
	}
	if set.Count() == 0 || set.Count() > maxLiterals {
		return nil, false
	}

	auto, err := buildAutomaton(set)
	if err != nil {
		return nil, false
	}
	return &AhoCorasickPrefilter{automaton: auto}, true
}

// leadingItemSet classifies the pattern item starting at pIdx and, if it is
// a literal/class/bracket item that the match must actually consume (no
// trailing '*', '?', or '-'), returns its byte set. %bxy returns the
// one-byte set {x}, since a balanced match always starts with its opening
// delimiter. Capture-open/close markers, '$' and %f never gate a prefilter:
// '(' and ')' consume no byte set of their own, and %f is zero-width.
func leadingItemSet(patt []byte, pIdx int) (simd.ClassSet, bool) {
	if pIdx >= len(patt) {
		return simd.ClassSet{}, false
	}

	switch patt[pIdx] {
	case '(', ')', '$':
		return simd.ClassSet{}, false
	case '%':
		if pIdx+1 >= len(patt) {
			return simd.ClassSet{}, false
		}
		switch patt[pIdx+1] {
		case 'b':
			// %bxy always matches literal byte x first.
			if pIdx+2 >= len(patt) {
				return simd.ClassSet{}, false
			}
			var set simd.ClassSet
			set.Set(patt[pIdx+2])
			return set, true
		case 'f':
			// Zero-width: no subject byte is consumed at the frontier
			// itself, so there's no "first byte" to filter on.
			return simd.ClassSet{}, false
		}
	}

	ep, err := pattern.ClassEnd(patt, pIdx)
	if err != nil {
		return simd.ClassSet{}, false
	}
	if ep < len(patt) {
		switch patt[ep] {
		case '*', '?', '-':
			// Zero repetitions is allowed; the match can start at the
			// following item instead, so this one isn't mandatory.
			return simd.ClassSet{}, false
		}
	}
	return pattern.ItemClassSet(patt, pIdx, ep), true
}
