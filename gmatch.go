package luapattern

// GmatchIter is a lazy, forward-only iterator over successive leftmost
// matches of a pattern against a fixed subject. It is finite (ends when no
// further match exists on the remaining tail of subject) and not
// restartable: once exhausted, a new one must be created via Gmatch.
type GmatchIter struct {
	p       *Pattern
	subject []byte
	pos     int
	done    bool
	err     error
}

// Gmatch returns an iterator yielding the pattern's successive leftmost
// matches against subject. A zero-width match advances the scan position
// by one byte to guarantee termination.
//
// Example:
//
//	p := luapattern.MustCompile(`%w+`)
//	it := p.Gmatch([]byte("test foo bar"))
//	for it.Next() {
//	    fmt.Println(string(it.Match()))
//	}
func (p *Pattern) Gmatch(subject []byte) *GmatchIter {
	return &GmatchIter{p: p, subject: subject}
}

// Next advances the iterator and reports whether a further match was
// found. On true, Match and CaptureRange describe the current match.
func (it *GmatchIter) Next() bool {
	if it.done || it.pos > len(it.subject) {
		return false
	}
	ok, err := it.p.m.MatchFrom(it.subject, it.pos)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	if !ok {
		it.done = true
		return false
	}
	start, end, _ := it.p.m.CaptureRange(0)
	if end == start {
		it.pos = end + 1
	} else {
		it.pos = end
	}
	return true
}

// Match returns the current match's full text.
func (it *GmatchIter) Match() []byte {
	start, end, _ := it.p.m.CaptureRange(0)
	return it.subject[start:end]
}

// CaptureRange returns the current match's capture slot i offsets, relative
// to the original subject passed to Gmatch.
func (it *GmatchIter) CaptureRange(i int) (start, end int, err error) {
	return it.p.m.CaptureRange(i)
}

// NumMatches returns the current match's slot count (see Pattern.NumMatches).
func (it *GmatchIter) NumMatches() int {
	return it.p.m.NumMatches()
}

// Err returns the error that ended iteration early, if any.
func (it *GmatchIter) Err() error {
	return it.err
}

// GmatchCaptures is Gmatch, but Next additionally exposes every capture
// slot's text via Captures instead of just the whole match.
type GmatchCapturesIter struct {
	*GmatchIter
}

// GmatchCaptures returns an iterator like Gmatch's, additionally exposing
// every capture slot's text per step via Captures.
func (p *Pattern) GmatchCaptures(subject []byte) *GmatchCapturesIter {
	return &GmatchCapturesIter{GmatchIter: p.Gmatch(subject)}
}

// Captures returns every capture slot's text for the current match (slot 0
// first), relative to the original subject.
func (it *GmatchCapturesIter) Captures() [][]byte {
	n := it.NumMatches()
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		start, end, _ := it.CaptureRange(i)
		out[i] = it.subject[start:end]
	}
	return out
}
