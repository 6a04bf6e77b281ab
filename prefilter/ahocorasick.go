package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/luapattern/simd"
)

// buildAutomaton builds a single-byte-pattern Aho-Corasick automaton over
// set's members. Each member byte becomes its own one-byte pattern; this is
// the same "many alternatives, one automaton" shape the teacher uses for
// large literal alternations, just specialized to alternatives that are all
// exactly one byte wide, which is the only kind of alternative a Lua
// pattern's byte classes can produce.
func buildAutomaton(set simd.ClassSet) (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for _, b := range set.Bytes() {
		builder.AddPattern([]byte{b})
	}
	return builder.Build()
}

// AhoCorasickPrefilter implements pattern.Prefilter over a built automaton.
type AhoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
}

// Candidate returns the offset of the next byte at or after from that
// belongs to the prefilter's class set, or -1 if none remains.
func (p *AhoCorasickPrefilter) Candidate(haystack []byte, from int) int {
	if from >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, from)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsMatch reports whether haystack contains any byte from the prefilter's
// class set at all, without locating the first occurrence. Useful for a
// cheap pre-check before a full anchor loop.
func (p *AhoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.automaton.IsMatch(haystack)
}
