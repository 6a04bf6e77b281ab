package pattern

import "github.com/coregx/luapattern/simd"

// isDigit, isAlpha and friends mirror Lua's ASCII-only ctype checks; Lua
// never consults the platform locale, so these are plain range tests rather
// than unicode.Is* calls.

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool  { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool  { return isAlpha(c) || isDigit(c) }
func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r' }
func isCntrl(c byte) bool  { return c < 0x20 || c == 0x7f }
func isPunct(c byte) bool  { return isGraph(c) && !isAlnum(c) }
func isGraph(c byte) bool  { return c > 0x20 && c < 0x7f }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// classEnd scans past a single pattern item starting at p[i] (which must not
// itself be '(' or ')') and returns the index just past it. It translates
// Lua's classend() in lstrlib.c: for a bracket set, the byte immediately
// following '[' (or '[^') is always consumed as a member even if it is ']',
// since the loop only checks for the closing bracket on later iterations.
func classEnd(p []byte, i int) (int, *Error) {
	c := p[i]
	i++
	switch c {
	case '%':
		if i == len(p) {
			return 0, newEndsWithPercent()
		}
		return i + 1, nil
	case '[':
		if i < len(p) && p[i] == '^' {
			i++
		}
		for {
			if i == len(p) {
				return 0, newMissingEndBracket()
			}
			cc := p[i]
			i++
			if cc == '%' && i < len(p) {
				i++
			}
			if i < len(p) && p[i] == ']' {
				break
			}
		}
		return i + 1, nil
	default:
		return i, nil
	}
}

// matchClass tests c against a single-letter %-class cl, translating Lua's
// match_class(). A lowercase letter tests the class directly; an uppercase
// letter tests the complement. Any other cl (the %X escape form, or a letter
// that names no class) is a literal-equality test against c.
func matchClass(c, cl byte) bool {
	var res bool
	switch lower(cl) {
	case 'a':
		res = isAlpha(c)
	case 'c':
		res = isCntrl(c)
	case 'd':
		res = isDigit(c)
	case 'g':
		res = isGraph(c)
	case 'l':
		res = isLower(c)
	case 'p':
		res = isPunct(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = isUpper(c)
	case 'w':
		res = isAlnum(c)
	case 'x':
		res = isHexDigit(c)
	default:
		return cl == c
	}
	if isUpper(cl) {
		return !res
	}
	return res
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// matchBracketClass tests c against a bracket set [set] or [^set], where p
// spans the whole pattern and the set body runs from bracketIdx+1 (or +2 if
// negated) up to closeIdx (the index of the closing ']'). Translates Lua's
// matchbracketclass().
func matchBracketClass(c byte, p []byte, bracketIdx, closeIdx int) bool {
	sig := true
	i := bracketIdx
	if i+1 < len(p) && p[i+1] == '^' {
		sig = false
		i++
	}
	for {
		i++
		if i >= closeIdx {
			break
		}
		if p[i] == '%' {
			i++
			if i < closeIdx && matchClass(c, p[i]) {
				return sig
			}
		} else if i+1 < closeIdx && p[i+1] == '-' && i+2 < closeIdx {
			if p[i] <= c && c <= p[i+2] {
				return sig
			}
			i += 2
		} else if p[i] == c {
			return sig
		}
	}
	return !sig
}

// singleMatch reports whether the single pattern item p[pIdx:ep] matches the
// subject byte at sIdx, translating Lua's singlematch(). ep is classEnd's
// return value for this item.
func singleMatch(src []byte, sIdx int, p []byte, pIdx, ep int) bool {
	if sIdx >= len(src) {
		return false
	}
	c := src[sIdx]
	switch p[pIdx] {
	case '.':
		return true
	case '%':
		return matchClass(c, p[pIdx+1])
	case '[':
		return matchBracketClass(c, p, pIdx, ep-1)
	default:
		return p[pIdx] == c
	}
}

// ItemClassSet expands the single pattern item p[pIdx:ep] into a 256-bit
// membership bitmap, for use by the quantifier fast paths and by the
// leading-item prefilter extractor. ep must be classEnd's return value for
// this item.
func ItemClassSet(p []byte, pIdx, ep int) simd.ClassSet {
	var set simd.ClassSet
	for b := 0; b < 256; b++ {
		if singleMatch([]byte{byte(b)}, 0, p, pIdx, ep) {
			set.Set(byte(b))
		}
	}
	return set
}

// ClassEnd exposes classEnd to other packages in this module (prefilter in
// particular, which needs to walk pattern items without re-deriving the
// scan).
func ClassEnd(p []byte, i int) (int, error) {
	end, err := classEnd(p, i)
	if err != nil {
		return 0, err
	}
	return end, nil
}
