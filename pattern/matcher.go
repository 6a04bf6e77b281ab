package pattern

import (
	"bytes"

	"github.com/coregx/luapattern/internal/conv"
	"github.com/coregx/luapattern/simd"
)

// matchFail is doMatch's "no match" sentinel return value. It is always
// distinguishable from a real subject index since subject indices are
// never negative.
const matchFail = -1

// DefaultMaxDepth is Lua's own recursion bound (LUA_MAXCCALLS-derived
// constant used by lstrlib.c's matchdepth counter).
const DefaultMaxDepth = 200

// Options customizes Matcher construction beyond the capture table size.
// New fills in DefaultMaxCaptures/DefaultMaxDepth/FastScan=true when a field
// is left at its zero value; NewWithOptions is for callers (the root
// package's CompileWithConfig) that want to override them.
type Options struct {
	MaxCaptures int
	// MaxDepth bounds the recursive backtracker's call depth (0 selects
	// DefaultMaxDepth). A match that exhausts this budget fails with
	// TooComplex rather than growing the Go call stack without limit.
	MaxDepth int
	// FastScan enables simd.ScanClassRun's 8-byte-unrolled counting of a
	// quantified item's run length. When false, maxExpand falls back to a
	// byte-at-a-time membership loop instead — the observable match result
	// is identical either way, since this only changes how the greedy seed
	// count is computed, never what it is.
	FastScan bool
}

// New validates patt and returns a Matcher ready to run repeated matches
// against different subjects. maxCaptures bounds the capture table size (0
// selects DefaultMaxCaptures). Equivalent to NewWithOptions with
// DefaultMaxDepth and FastScan enabled.
func New(patt []byte, maxCaptures int) (*Matcher, error) {
	return NewWithOptions(patt, Options{
		MaxCaptures: maxCaptures,
		MaxDepth:    DefaultMaxDepth,
		FastScan:    true,
	})
}

// NewWithOptions is New with every tunable exposed.
func NewWithOptions(patt []byte, opts Options) (*Matcher, error) {
	maxCaptures := opts.MaxCaptures
	if maxCaptures <= 0 {
		maxCaptures = DefaultMaxCaptures
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if err := validate(patt, maxCaptures); err != nil {
		return nil, err
	}
	m := &Matcher{
		patt:     patt,
		maxDepth: maxDepth,
		fastScan: opts.FastScan,
		// Slot 0 holds the whole match; user captures occupy 1..maxCaptures.
		captures: make([]capture, maxCaptures+1),
	}
	if len(patt) > 0 && patt[0] == '^' {
		m.anchored = true
	}
	return m, nil
}

// matchState carries the mutable state of a single match attempt: the
// subject and pattern being scanned, the shared capture table (reused
// across attempts, never reallocated), the count of captures opened so
// far, the remaining recursion budget, and any fatal runtime error.
type matchState struct {
	src      []byte
	patt     []byte
	captures []capture
	level    int
	depth    int
	fastScan bool
	err      *Error
}

// Match runs the matcher against subject and reports whether a match was
// found. On success the capture table is populated and NumMatches is
// 1+len(user captures); on failure NumMatches is 0. A non-nil error
// indicates one of the three runtime-recoverable conditions (TooComplex,
// TooManyCaptures, CapLen) fired during the attempt; the boolean result is
// meaningless when err != nil.
func (m *Matcher) Match(subject []byte) (bool, error) {
	return m.MatchFrom(subject, 0)
}

// MatchFrom is Match, but starts the anchor loop at from instead of 0,
// without losing the rest of subject as lookbehind context. This is what
// Gmatch uses to advance across successive matches: unlike re-slicing
// subject on every step, it keeps subject[from-1] available to a frontier
// pattern ("%f") at the new start position, matching Lua's own gmatch (which
// advances a pointer into one buffer rather than handing the matcher a
// shrinking one).
func (m *Matcher) MatchFrom(subject []byte, from int) (bool, error) {
	pStart := 0
	if m.anchored {
		pStart = 1
	}

	for start := from; start <= len(subject); {
		if !m.anchored && m.prefilter != nil {
			next := m.prefilter.Candidate(subject, start)
			if next < 0 {
				break
			}
			start = next
		}

		ms := matchState{
			src:      subject,
			patt:     m.patt,
			captures: m.captures[1:],
			depth:    m.maxDepth,
			fastScan: m.fastScan,
		}
		end := ms.doMatch(start, pStart)
		if ms.err != nil {
			m.nMatch = 0
			return false, ms.err
		}
		if end != matchFail {
			m.captures[0] = capture{start: conv.IntToInt32(start), len: conv.IntToInt32(end - start)}
			m.nMatch = 1 + ms.level
			return true, nil
		}
		if m.anchored {
			break
		}
		start++
	}
	m.nMatch = 0
	return false, nil
}

// doMatch is the recursive backtracking core, translating Lua's match() in
// lstrlib.c. Pattern items that don't open a true recursive branch
// (sequential literals, classes, quantified items once their repetition
// count is fixed) are consumed in the same stack frame via the for/continue
// loop below; only captures, '?', and the internal match() calls inside
// maxExpand/minExpand actually recurse. This is what keeps matchdepth from
// being spent once per character of a long literal run.
func (ms *matchState) doMatch(sIdx, pIdx int) int {
	if ms.err != nil {
		return matchFail
	}
	if ms.depth == 0 {
		ms.err = newTooComplex()
		return matchFail
	}
	ms.depth--
	defer func() { ms.depth++ }()

	for pIdx != len(ms.patt) {
		switch ms.patt[pIdx] {
		case '(':
			if pIdx+1 < len(ms.patt) && ms.patt[pIdx+1] == ')' {
				return ms.startCapture(sIdx, pIdx+2, capPosition)
			}
			return ms.startCapture(sIdx, pIdx+1, capUnfinished)

		case ')':
			return ms.endCapture(sIdx, pIdx+1)

		case '$':
			if pIdx+1 == len(ms.patt) {
				if sIdx == len(ms.src) {
					return sIdx
				}
				return matchFail
			}
			// Not the final byte: '$' is an ordinary literal item here,
			// falls through to the default item handling below.

		case '%':
			if pIdx+1 < len(ms.patt) {
				switch ms.patt[pIdx+1] {
				case 'b':
					ns, ok := ms.matchBalance(sIdx, pIdx+2)
					if !ok {
						return matchFail
					}
					sIdx, pIdx = ns, pIdx+4
					continue
				case 'f':
					np := pIdx + 2
					if np >= len(ms.patt) || ms.patt[np] != '[' {
						ms.err = newMissingLBracketF()
						return matchFail
					}
					ep, err := classEnd(ms.patt, np)
					if err != nil {
						ms.err = err
						return matchFail
					}
					var previous byte
					if sIdx > 0 {
						previous = ms.src[sIdx-1]
					}
					prevIn := matchBracketClass(previous, ms.patt, np, ep-1)
					currIn := false
					if sIdx < len(ms.src) {
						currIn = matchBracketClass(ms.src[sIdx], ms.patt, np, ep-1)
					}
					if !prevIn && currIn {
						pIdx = ep
						continue
					}
					return matchFail
				default:
					if isDigit(ms.patt[pIdx+1]) {
						ns, ok := ms.matchCaptureRef(sIdx, int(ms.patt[pIdx+1]-'0'))
						if !ok {
							return matchFail
						}
						sIdx, pIdx = ns, pIdx+2
						continue
					}
					// %X where X is a non-digit, non-b/f escape: falls
					// through to default item handling (a 2-byte literal
					// item via classEnd).
				}
			}
		}

		// Default item handling: literal byte, '.', '%class', '[set]', or
		// a non-final '$' / non-b/f/digit '%X' that fell through above.
		ep, cerr := classEnd(ms.patt, pIdx)
		if cerr != nil {
			ms.err = cerr
			return matchFail
		}
		matched := singleMatch(ms.src, sIdx, ms.patt, pIdx, ep)
		var quant byte
		if ep < len(ms.patt) {
			quant = ms.patt[ep]
		}
		if !matched {
			switch quant {
			case '*', '?', '-':
				pIdx = ep + 1
				continue
			default:
				return matchFail
			}
		}
		switch quant {
		case '?':
			if res := ms.doMatch(sIdx+1, ep+1); res != matchFail {
				return res
			}
			pIdx = ep + 1
			continue
		case '+':
			return ms.maxExpand(sIdx+1, pIdx, ep)
		case '*':
			return ms.maxExpand(sIdx, pIdx, ep)
		case '-':
			return ms.minExpand(sIdx, pIdx, ep)
		default:
			sIdx, pIdx = sIdx+1, ep
			continue
		}
	}
	return sIdx
}

func (ms *matchState) captureToClose() int {
	for l := ms.level - 1; l >= 0; l-- {
		if ms.captures[l].len == capUnfinished {
			return l
		}
	}
	return -1
}

func (ms *matchState) startCapture(sIdx, pIdx, what int) int {
	level := ms.level
	if level >= len(ms.captures) {
		ms.err = newTooManyCaptures()
		return matchFail
	}
	ms.captures[level] = capture{start: conv.IntToInt32(sIdx), len: int32(what)}
	ms.level++
	res := ms.doMatch(sIdx, pIdx)
	if res == matchFail {
		ms.level--
	}
	return res
}

func (ms *matchState) endCapture(sIdx, pIdx int) int {
	l := ms.captureToClose()
	if l < 0 {
		ms.err = newNoOpenCapture()
		return matchFail
	}
	ms.captures[l].len = conv.IntToInt32(sIdx) - ms.captures[l].start
	res := ms.doMatch(sIdx, pIdx)
	if res == matchFail {
		ms.captures[l].len = capUnfinished
	}
	return res
}

func (ms *matchState) matchCaptureRef(sIdx, n int) (int, bool) {
	l := n - 1
	if l < 0 || l >= ms.level || ms.captures[l].len == capUnfinished {
		// The validator guarantees this never fires for a validated
		// pattern; kept as a defensive check rather than a user-facing
		// error kind.
		return 0, false
	}
	if ms.captures[l].len == capPosition {
		// A position capture has no text to compare against.
		ms.err = newCapLen()
		return 0, false
	}
	start := int(ms.captures[l].start)
	capLen := int(ms.captures[l].len)
	if sIdx+capLen > len(ms.src) {
		return 0, false
	}
	if !bytes.Equal(ms.src[sIdx:sIdx+capLen], ms.src[start:start+capLen]) {
		return 0, false
	}
	return sIdx + capLen, true
}

func (ms *matchState) matchBalance(sIdx, pIdx int) (int, bool) {
	if sIdx >= len(ms.src) || ms.src[sIdx] != ms.patt[pIdx] {
		return 0, false
	}
	b, e := ms.patt[pIdx], ms.patt[pIdx+1]
	cont := 1
	i := sIdx + 1
	for i < len(ms.src) {
		if ms.src[i] == e {
			cont--
			if cont == 0 {
				return i + 1, true
			}
		} else if ms.src[i] == b {
			cont++
		}
		i++
	}
	return 0, false
}

// buildItemClassSet returns a bitmap for the repeated item starting at
// pIdx, used by maxExpand to seed the greedy run count via simd.ScanClassRun
// instead of a byte-at-a-time singlematch loop.
func buildItemClassSet(patt []byte, pIdx, ep int) simd.ClassSet {
	return ItemClassSet(patt, pIdx, ep)
}

func (ms *matchState) maxExpand(sIdx, pIdx, ep int) int {
	set := buildItemClassSet(ms.patt, pIdx, ep)
	var i int
	if ms.fastScan {
		i = simd.ScanClassRun(ms.src[sIdx:], set)
	} else {
		rest := ms.src[sIdx:]
		for i < len(rest) && set.Has(rest[i]) {
			i++
		}
	}
	for i >= 0 {
		if res := ms.doMatch(sIdx+i, ep+1); res != matchFail {
			return res
		}
		i--
	}
	return matchFail
}

func (ms *matchState) minExpand(sIdx, pIdx, ep int) int {
	for {
		if res := ms.doMatch(sIdx, ep+1); res != matchFail {
			return res
		}
		if singleMatch(ms.src, sIdx, ms.patt, pIdx, ep) {
			sIdx++
		} else {
			return matchFail
		}
	}
}
