package luapattern

import "github.com/coregx/luapattern/replace"

// Gsub implements global substitution: repeatedly finds the leftmost match
// on the remaining tail of subject, appends the unmatched prefix, appends
// the instantiated template, and advances past the match end (by one byte
// past the match if the match was zero-width, to guarantee progress).
// Terminates when no further match is found, appending the remaining tail.
//
// Example:
//
//	p := luapattern.MustCompile(`%w+`)
//	out, err := p.Gsub([]byte("a b"), "<%0>")
//	// out = "<a> <b>"
func (p *Pattern) Gsub(subject []byte, template string) ([]byte, error) {
	tpl, err := replace.Compile([]byte(template))
	if err != nil {
		return nil, err
	}
	return p.gsub(subject, func(subject []byte) ([]byte, error) {
		return replace.Apply(tpl, p.m, subject)
	})
}

// ReplacerFunc computes the replacement bytes for one match; it receives
// the full subject the match ran against (Pattern.Captures(subject) reads
// the matched capture text out of it).
type ReplacerFunc func(p *Pattern, subject []byte) ([]byte, error)

// GsubFunc is Gsub with a caller-supplied replacement function instead of a
// template, for substitutions that can't be expressed as a fixed %n
// template (e.g. case conversion, lookups).
//
// Example:
//
//	p := luapattern.MustCompile(`%a+`)
//	out, err := p.GsubFunc(subject, func(p *luapattern.Pattern, subject []byte) ([]byte, error) {
//	    return bytes.ToUpper(p.Captures(subject)[0]), nil
//	})
func (p *Pattern) GsubFunc(subject []byte, fn ReplacerFunc) ([]byte, error) {
	return p.gsub(subject, func(subject []byte) ([]byte, error) {
		return fn(p, subject)
	})
}

// gsub drives MatchFrom over one fixed subject buffer, advancing a cursor
// rather than re-slicing subject on every step. Re-slicing would feed a
// frontier pattern ("%f") a false start-of-string at every match boundary,
// since it checks the byte just before the search's start offset; advancing
// a cursor instead (as Lua's own str_gsub does) keeps that lookbehind byte
// available across iterations.
func (p *Pattern) gsub(subject []byte, replacement func(subject []byte) ([]byte, error)) ([]byte, error) {
	var out []byte
	pos := 0
	for pos <= len(subject) {
		ok, err := p.m.MatchFrom(subject, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		start, end, _ := p.m.CaptureRange(0)
		out = append(out, subject[pos:start]...)

		repl, err := replacement(subject)
		if err != nil {
			return nil, err
		}
		out = append(out, repl...)

		if end == start {
			// Zero-width match: copy the byte at the match point (if any)
			// and advance past it, to guarantee forward progress.
			if end < len(subject) {
				out = append(out, subject[end])
			}
			pos = end + 1
		} else {
			pos = end
		}
	}
	if pos < len(subject) {
		out = append(out, subject[pos:]...)
	}
	return out, nil
}
