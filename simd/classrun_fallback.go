//go:build !amd64

package simd

// scanClassRun is the non-amd64 implementation: the wide unrolled loop in
// classrun_generic.go is plain Go and portable, so it's always safe to use,
// but without a cpu feature gate to check there's no reason to special-case
// short inputs here the way classrun_amd64.go does.
func scanClassRun(haystack []byte, set ClassSet) int {
	return scanClassRunWide(haystack, set)
}
