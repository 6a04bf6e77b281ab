package pattern

const (
	// capUnfinished marks a capture slot whose '(' has been seen but whose
	// ')' has not: the slot is "open".
	capUnfinished = -1
	// capPosition marks a capture slot written as "()": a zero-width
	// position capture.
	capPosition = -2
)

// capture is one entry of the fixed-size capture table. start is a byte
// offset into the subject; len is either a non-negative closed length, or
// one of the two sentinels above while a match is in progress.
type capture struct {
	start int32
	len   int32
}

// DefaultMaxCaptures is Lua's own capture table size (LUA_MAXCAPTURES).
const DefaultMaxCaptures = 32

// Matcher holds a validated pattern and a reusable capture table. It
// performs no allocation once constructed: Match reuses the same capture
// slice on every call.
type Matcher struct {
	patt      []byte
	anchored  bool
	maxDepth  int
	fastScan  bool
	captures  []capture
	nMatch    int
	prefilter Prefilter
}

// Prefilter lets a caller accelerate the anchor loop's choice of start
// offsets. Candidate returns the next subject offset at or after from that
// could possibly begin a match, or -1 if none remains. The pattern package
// never implements this interface itself — it is wired in by higher-level
// packages (prefilter, and the root package) so that pattern never imports
// prefilter and creates an import cycle.
type Prefilter interface {
	Candidate(haystack []byte, from int) int
}

// NumMatches returns 0 after a failed match, or 1+len(user captures) after a
// successful one.
func (m *Matcher) NumMatches() int {
	return m.nMatch
}

// CaptureRange returns the byte offsets of capture slot i (0 is the whole
// match). Defined only for 0 <= i < NumMatches().
func (m *Matcher) CaptureRange(i int) (start, end int, err error) {
	if i < 0 || i >= m.nMatch {
		return 0, 0, &Error{Kind: CapLen}
	}
	c := m.captures[i]
	if c.len == capUnfinished {
		return 0, 0, newCapLen()
	}
	if c.len == capPosition {
		return int(c.start), int(c.start), nil
	}
	return int(c.start), int(c.start) + int(c.len), nil
}

// IsPosition reports whether capture slot i is a position capture ("()").
func (m *Matcher) IsPosition(i int) bool {
	return i >= 0 && i < m.nMatch && m.captures[i].len == capPosition
}

// SetPrefilter installs a candidate-offset accelerator for the anchor loop.
// A nil prefilter (the default) tries every offset in order.
func (m *Matcher) SetPrefilter(pf Prefilter) {
	m.prefilter = pf
}
