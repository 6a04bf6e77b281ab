package simd

// scanClassRunScalar counts leading set-membership bytes one at a time. Used
// for small inputs (loop-unrolling setup cost isn't worth it) and as the sole
// implementation on platforms without the wide path.
func scanClassRunScalar(haystack []byte, set ClassSet) int {
	t := set.table()
	n := 0
	for n < len(haystack) && t[haystack[n]] {
		n++
	}
	return n
}

// scanClassRunWide counts leading set-membership bytes 8 at a time, only
// falling back to the scalar loop at the tail or at the first non-member
// byte. This is plain Go (no assembly, no actual vector instructions) — the
// "wide" name refers to the unrolled stride, not to SIMD hardware use.
func scanClassRunWide(haystack []byte, set ClassSet) int {
	t := set.table()
	n := 0
	limit := len(haystack) - len(haystack)%8
	for n < limit {
		if t[haystack[n]] && t[haystack[n+1]] && t[haystack[n+2]] && t[haystack[n+3]] &&
			t[haystack[n+4]] && t[haystack[n+5]] && t[haystack[n+6]] && t[haystack[n+7]] {
			n += 8
			continue
		}
		break
	}
	// Finish the current (possibly partial) chunk byte-by-byte: either the
	// tail past `limit`, or the 8-byte chunk that broke the loop above.
	for n < len(haystack) && t[haystack[n]] {
		n++
	}
	return n
}
