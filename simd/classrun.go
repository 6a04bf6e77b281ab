package simd

// ScanClassRun returns the number of leading bytes of haystack that are
// members of set. It is used by the pattern interpreter's '*'/'+' quantifier
// to seed the greedy backtracking loop: instead of counting the run one byte
// at a time (singlematch in a while loop), the count is produced by a single
// scan and the interpreter backs off from there.
//
// The result is identical to counting with set.Has in a byte-at-a-time loop;
// this function only changes how fast that count is produced, never what it
// is. See classrun_amd64.go / classrun_fallback.go / classrun_generic.go for
// the platform-specific implementations.
func ScanClassRun(haystack []byte, set ClassSet) int {
	return scanClassRun(haystack, set)
}
