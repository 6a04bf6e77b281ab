//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// scanClassRun dispatches to the unrolled wide path when the haystack is
// long enough to amortize it and the CPU advertises AVX2 (mirroring the
// teacher's ASCII fast-path gate), falling back to the scalar loop
// otherwise.
func scanClassRun(haystack []byte, set ClassSet) int {
	if cpu.X86.HasAVX2 && len(haystack) >= 64 {
		return scanClassRunWide(haystack, set)
	}
	return scanClassRunScalar(haystack, set)
}
