package luapattern

import (
	"github.com/coregx/luapattern/pattern"
	"github.com/coregx/luapattern/prefilter"
)

// Pattern is a compiled Lua string pattern: a validated pattern handle plus
// a reusable capture table. A Pattern is not safe for concurrent use by
// multiple goroutines, since matching mutates its capture table; compile
// one Pattern per goroutine, or guard access with a mutex.
//
// Example:
//
//	p := luapattern.MustCompile(`(%a+)@(%a+)`)
//	if p.MatchString("user@example") {
//	    println("matched!")
//	}
type Pattern struct {
	m       *pattern.Matcher
	pattern string
}

// Compile validates patt and returns a ready-to-use Pattern. Returns an
// error from one of the validator's kinds (see pattern.Kind) if patt is
// malformed.
//
// Example:
//
//	p, err := luapattern.Compile(`%d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(patt string) (*Pattern, error) {
	return CompileWithConfig(patt, DefaultConfig())
}

// MustCompile compiles patt and panics if it fails to validate. Useful for
// patterns known to be valid at init time.
//
// Example:
//
//	var wordPattern = luapattern.MustCompile(`%w+`)
func MustCompile(patt string) *Pattern {
	p, err := Compile(patt)
	if err != nil {
		panic("luapattern: Compile(" + patt + "): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles patt with a custom Config, controlling the
// capture table size, recursion depth budget, fast-scan acceleration, and
// prefilter behavior.
//
// Example:
//
//	cfg := luapattern.DefaultConfig()
//	cfg.MaxCaptures = 4
//	p, err := luapattern.CompileWithConfig(`(%a+):(%a+)`, cfg)
func CompileWithConfig(patt string, cfg Config) (*Pattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := pattern.NewWithOptions([]byte(patt), pattern.Options{
		MaxCaptures: cfg.MaxCaptures,
		MaxDepth:    cfg.MaxRecursionDepth,
		FastScan:    cfg.EnableFastScan,
	})
	if err != nil {
		return nil, err
	}

	if cfg.EnablePrefilter {
		if pf, ok := prefilter.Extract([]byte(patt), cfg.MaxPrefilterLiterals); ok {
			m.SetPrefilter(pf)
		}
	}

	return &Pattern{m: m, pattern: patt}, nil
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.pattern
}

// Match reports whether subject contains a match of the pattern, and
// populates the capture table on success. A non-nil error indicates one of
// the runtime-recoverable conditions (TooComplex, TooManyCaptures, CapLen)
// fired during the attempt.
//
// Example:
//
//	p := luapattern.MustCompile(`%d+`)
//	ok, err := p.Match([]byte("room 42"))
func (p *Pattern) Match(subject []byte) (bool, error) {
	return p.m.Match(subject)
}

// MatchString is Match over a string subject.
func (p *Pattern) MatchString(subject string) bool {
	ok, err := p.m.Match([]byte(subject))
	return err == nil && ok
}

// NumMatches returns 0 after a failed match, or 1+len(user captures) after
// a successful one.
func (p *Pattern) NumMatches() int {
	return p.m.NumMatches()
}

// CaptureRange returns the byte offsets of capture slot i (0 is the whole
// match), defined for 0 <= i < NumMatches().
func (p *Pattern) CaptureRange(i int) (start, end int, err error) {
	return p.m.CaptureRange(i)
}

// IsPosition reports whether capture slot i is a position capture.
func (p *Pattern) IsPosition(i int) bool {
	return p.m.IsPosition(i)
}

// Find returns the leftmost match in subject, or nil if there is none.
//
// Example:
//
//	p := luapattern.MustCompile(`%d+`)
//	match := p.Find([]byte("age: 42"))
//	println(string(match)) // "42"
func (p *Pattern) Find(subject []byte) ([]byte, error) {
	ok, err := p.m.Match(subject)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	start, end, _ := p.m.CaptureRange(0)
	return subject[start:end], nil
}

// FindString is Find over a string subject.
func (p *Pattern) FindString(subject string) (string, error) {
	match, err := p.Find([]byte(subject))
	if err != nil || match == nil {
		return "", err
	}
	return string(match), nil
}

// FindIndex returns the [start, end) offsets of the leftmost match, or nil
// if there is none.
func (p *Pattern) FindIndex(subject []byte) ([]int, error) {
	ok, err := p.m.Match(subject)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	start, end, _ := p.m.CaptureRange(0)
	return []int{start, end}, nil
}

// Captures returns every capture slot's text after a successful Match
// (slot 0 first). Must be called only after Match reported true; the
// returned slices alias subject.
func (p *Pattern) Captures(subject []byte) [][]byte {
	n := p.m.NumMatches()
	if n == 0 {
		return nil
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		start, end, _ := p.m.CaptureRange(i)
		out[i] = subject[start:end]
	}
	return out
}

// MatchMaybe runs Match and, on success, returns the first user capture if
// one exists, or else the whole match. Ported from the reference
// implementation's match_maybe: a convenience for the common
// one-field-of-interest pattern.
func (p *Pattern) MatchMaybe(subject []byte) ([]byte, error) {
	ok, err := p.m.Match(subject)
	if err != nil || !ok {
		return nil, err
	}
	idx := 0
	if p.m.NumMatches() > 1 {
		idx = 1
	}
	start, end, _ := p.m.CaptureRange(idx)
	return subject[start:end], nil
}

// MatchMaybe2 runs Match and, only if the pattern has exactly two user
// captures, returns them both. Returns (nil, nil, nil) if the pattern
// didn't match or didn't have exactly two user captures.
func (p *Pattern) MatchMaybe2(subject []byte) (a, b []byte, err error) {
	ok, err := p.m.Match(subject)
	if err != nil || !ok {
		return nil, nil, err
	}
	if p.m.NumMatches() != 3 {
		return nil, nil, nil
	}
	s1, e1, _ := p.m.CaptureRange(1)
	s2, e2, _ := p.m.CaptureRange(2)
	return subject[s1:e1], subject[s2:e2], nil
}

// MatchMaybe3 is MatchMaybe2 for patterns with exactly three user captures.
func (p *Pattern) MatchMaybe3(subject []byte) (a, b, c []byte, err error) {
	ok, err := p.m.Match(subject)
	if err != nil || !ok {
		return nil, nil, nil, err
	}
	if p.m.NumMatches() != 4 {
		return nil, nil, nil, nil
	}
	s1, e1, _ := p.m.CaptureRange(1)
	s2, e2, _ := p.m.CaptureRange(2)
	s3, e3, _ := p.m.CaptureRange(3)
	return subject[s1:e1], subject[s2:e2], subject[s3:e3], nil
}
