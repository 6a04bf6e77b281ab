package luapattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/luapattern/pattern"
)

func TestMatchStringWordClass(t *testing.T) {
	p := MustCompile(`%w+`)
	if !p.MatchString("test foo bar") {
		t.Fatal("expected a match")
	}
	match, err := p.Find([]byte("test foo bar"))
	if err != nil {
		t.Fatal(err)
	}
	if string(match) != "test" {
		t.Fatalf("Find() = %q, want %q", match, "test")
	}
}

func TestCapturesTwoWords(t *testing.T) {
	p := MustCompile(`(%a+) (%a+)`)
	ok, err := p.Match([]byte("hello world"))
	if err != nil || !ok {
		t.Fatalf("Match() = %v, %v", ok, err)
	}
	caps := p.Captures([]byte("hello world"))
	if len(caps) != 3 {
		t.Fatalf("NumMatches = %d, want 3", len(caps))
	}
	if string(caps[0]) != "hello world" || string(caps[1]) != "hello" || string(caps[2]) != "world" {
		t.Fatalf("captures = %q %q %q", caps[0], caps[1], caps[2])
	}
}

func TestAnchoredDigits(t *testing.T) {
	p := MustCompile(`^(%d+)$`)
	if !p.MatchString("12345") {
		t.Fatal("expected a match on all-digit subject")
	}
	if p.MatchString("12a45") {
		t.Fatal("expected no match when subject contains a non-digit")
	}
}

func TestBalancedMatch(t *testing.T) {
	p := MustCompile(`%b()`)
	match, err := p.Find([]byte("a(b(c)d)e"))
	if err != nil {
		t.Fatal(err)
	}
	if string(match) != "(b(c)d)" {
		t.Fatalf("Find() = %q, want %q", match, "(b(c)d)")
	}
}

func TestFrontierPattern(t *testing.T) {
	p := MustCompile(`%f[%a]%a+`)
	match, err := p.Find([]byte("  hello, world"))
	if err != nil {
		t.Fatal(err)
	}
	if string(match) != "hello" {
		t.Fatalf("Find() = %q, want %q", match, "hello")
	}
}

func TestPositionCaptures(t *testing.T) {
	p := MustCompile(`()(%a+)()`)
	ok, err := p.Match([]byte("abc"))
	if err != nil || !ok {
		t.Fatalf("Match() = %v, %v", ok, err)
	}
	if !p.IsPosition(1) || !p.IsPosition(3) {
		t.Fatal("expected slots 1 and 3 to be position captures")
	}
	s1, e1, _ := p.CaptureRange(1)
	if s1 != 0 || e1 != 0 {
		t.Fatalf("CaptureRange(1) = %d,%d want 0,0", s1, e1)
	}
	s3, e3, _ := p.CaptureRange(3)
	if s3 != 3 || e3 != 3 {
		t.Fatalf("CaptureRange(3) = %d,%d want 3,3", s3, e3)
	}
	caps := p.Captures([]byte("abc"))
	if string(caps[2]) != "abc" {
		t.Fatalf("caps[2] = %q, want %q", caps[2], "abc")
	}
}

func TestCompileRejectsBadPatterns(t *testing.T) {
	cases := []struct {
		patt string
		kind pattern.Kind
	}{
		{`abc%`, pattern.EndsWithPercent},
		{`[abc`, pattern.MissingEndBracket},
		{`%b(`, pattern.MissingBalanceArgs},
		{`%fa`, pattern.MissingLBracketF},
		{`(abc`, pattern.UnfinishedCapture},
		{`abc)`, pattern.NoOpenCapture},
		{`(1) (2(3)%2)%1`, pattern.InvalidCapture},
	}
	for _, c := range cases {
		_, err := Compile(c.patt)
		if err == nil {
			t.Errorf("Compile(%q): expected error", c.patt)
			continue
		}
		var perr *pattern.Error
		if !errors.As(err, &perr) {
			t.Errorf("Compile(%q): error %v is not *pattern.Error", c.patt, err)
			continue
		}
		if perr.Kind != c.kind {
			t.Errorf("Compile(%q): Kind = %v, want %v", c.patt, perr.Kind, c.kind)
		}
	}
}

func TestCompileInvalidCaptureIndex(t *testing.T) {
	_, err := Compile(`(1) (2(3)%2)%1`)
	var perr *pattern.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not *pattern.Error", err)
	}
	if perr.N != 2 {
		t.Fatalf("N = %d, want 2", perr.N)
	}
}

func TestFindIndex(t *testing.T) {
	p := MustCompile(`%d+`)
	idx, err := p.FindIndex([]byte("room 42"))
	if err != nil {
		t.Fatal(err)
	}
	if idx[0] != 5 || idx[1] != 7 {
		t.Fatalf("FindIndex() = %v, want [5 7]", idx)
	}
}

func TestFindIndexNoMatch(t *testing.T) {
	p := MustCompile(`%d+`)
	idx, err := p.FindIndex([]byte("no digits here"))
	if err != nil {
		t.Fatal(err)
	}
	if idx != nil {
		t.Fatalf("FindIndex() = %v, want nil", idx)
	}
}

func TestMatchMaybe(t *testing.T) {
	p := MustCompile(`key=(%a+)`)
	v, err := p.MatchMaybe([]byte("key=value"))
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "value" {
		t.Fatalf("MatchMaybe() = %q, want %q", v, "value")
	}

	p2 := MustCompile(`%a+`)
	whole, err := p2.MatchMaybe([]byte("value"))
	if err != nil {
		t.Fatal(err)
	}
	if string(whole) != "value" {
		t.Fatalf("MatchMaybe() = %q, want %q", whole, "value")
	}
}

func TestMatchMaybe2(t *testing.T) {
	p := MustCompile(`(%a+)=(%d+)`)
	a, b, err := p.MatchMaybe2([]byte("count=42"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != "count" || string(b) != "42" {
		t.Fatalf("MatchMaybe2() = %q, %q", a, b)
	}

	p2 := MustCompile(`%a+`)
	a2, b2, err := p2.MatchMaybe2([]byte("count"))
	if err != nil {
		t.Fatal(err)
	}
	if a2 != nil || b2 != nil {
		t.Fatalf("MatchMaybe2() on single-capture pattern = %q, %q, want nil, nil", a2, b2)
	}
}

func TestMatchMaybe3(t *testing.T) {
	p := MustCompile(`(%a+)-(%a+)-(%a+)`)
	a, b, c, err := p.MatchMaybe3([]byte("a-b-c"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != "a" || string(b) != "b" || string(c) != "c" {
		t.Fatalf("MatchMaybe3() = %q, %q, %q", a, b, c)
	}
}

func TestCompileWithConfigCustomMaxCaptures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCaptures = 2
	_, err := CompileWithConfig(`(a)(b)(c)`, cfg)
	if err == nil {
		t.Fatal("expected TooManyCaptures error")
	}
	var perr *pattern.Error
	if !errors.As(err, &perr) || perr.Kind != pattern.TooManyCaptures {
		t.Fatalf("error = %v, want TooManyCaptures", err)
	}
}

func TestCompileWithConfigCustomMaxRecursionDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecursionDepth = 10
	// Every "a?" item that actually matches forces a real recursive call
	// (doMatch's '?' trial branch), so 20 of them against an all-'a'
	// subject exhausts a depth budget of 10 well before the subject does.
	p, err := CompileWithConfig(strings.Repeat("a?", 20), cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Match([]byte(strings.Repeat("a", 20)))
	if err == nil {
		t.Fatal("expected TooComplex error")
	}
	var perr *pattern.Error
	if !errors.As(err, &perr) || perr.Kind != pattern.TooComplex {
		t.Fatalf("error = %v, want TooComplex", err)
	}
}

func TestCompileWithConfigFastScanMatchesDefault(t *testing.T) {
	subject := []byte("          x")

	fast := DefaultConfig()
	fast.EnableFastScan = true
	pFast, err := CompileWithConfig(`%s*x`, fast)
	if err != nil {
		t.Fatal(err)
	}
	fastMatch, err := pFast.Find(subject)
	if err != nil {
		t.Fatal(err)
	}

	slow := DefaultConfig()
	slow.EnableFastScan = false
	pSlow, err := CompileWithConfig(`%s*x`, slow)
	if err != nil {
		t.Fatal(err)
	}
	slowMatch, err := pSlow.Find(subject)
	if err != nil {
		t.Fatal(err)
	}

	if string(fastMatch) != string(slowMatch) {
		t.Fatalf("fast/slow scan disagree: %q vs %q", fastMatch, slowMatch)
	}
	if string(fastMatch) != "          x" {
		t.Fatalf("Find() = %q, want %q", fastMatch, "          x")
	}
}

func TestMustCompilePanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic")
		}
	}()
	MustCompile(`abc%`)
}

func TestStringReturnsOriginalPattern(t *testing.T) {
	p := MustCompile(`%d+`)
	if p.String() != `%d+` {
		t.Fatalf("String() = %q", p.String())
	}
}
