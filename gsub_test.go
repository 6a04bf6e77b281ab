package luapattern

import (
	"bytes"
	"testing"
)

func TestGsubWrapWords(t *testing.T) {
	p := MustCompile(`%w+`)
	out, err := p.Gsub([]byte("a b"), "<%0>")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "<a> <b>" {
		t.Fatalf("Gsub() = %q, want %q", out, "<a> <b>")
	}
}

func TestGsubWithCaptureTemplate(t *testing.T) {
	p := MustCompile(`(%a+)=(%d+)`)
	out, err := p.Gsub([]byte("x=1 y=2"), "%2:%1")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "1:x 2:y" {
		t.Fatalf("Gsub() = %q, want %q", out, "1:x 2:y")
	}
}

func TestGsubNoMatchReturnsSubject(t *testing.T) {
	p := MustCompile(`%d+`)
	out, err := p.Gsub([]byte("no digits here"), "#")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "no digits here" {
		t.Fatalf("Gsub() = %q, want unchanged subject", out)
	}
}

func TestGsubFunc(t *testing.T) {
	p := MustCompile(`%a+`)
	out, err := p.GsubFunc([]byte("hello world"), func(p *Pattern, subject []byte) ([]byte, error) {
		return bytes.ToUpper(p.Captures(subject)[0]), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "HELLO WORLD" {
		t.Fatalf("GsubFunc() = %q, want %q", out, "HELLO WORLD")
	}
}

func TestGsubZeroWidthMatchAdvances(t *testing.T) {
	p := MustCompile(`%f[%w]`)
	out, err := p.Gsub([]byte("ab cd"), "|")
	if err != nil {
		t.Fatal(err)
	}
	// Frontier fires at the start of each word; the character under the
	// zero-width match is preserved and copied forward untouched.
	if string(out) != "|ab |cd" {
		t.Fatalf("Gsub() = %q, want %q", out, "|ab |cd")
	}
}

func TestGsubZeroWidthPositionCapture(t *testing.T) {
	p := MustCompile(`()`)
	out, err := p.Gsub([]byte("ab"), "%1:")
	if err != nil {
		t.Fatal(err)
	}
	// A position capture matches at every offset including one past the
	// last byte; each zero-width hit advances by one, copying the byte
	// under it forward untouched.
	if string(out) != "1:a2:b3:" {
		t.Fatalf("Gsub() = %q, want %q", out, "1:a2:b3:")
	}
}

func TestGsubInvalidCaptureInTemplate(t *testing.T) {
	p := MustCompile(`%a+`)
	_, err := p.Gsub([]byte("hello"), "%1")
	if err == nil {
		t.Fatal("expected an error referencing a non-existent capture")
	}
}
