// Package luapattern implements the Lua 5.x string-pattern matching
// language: pattern compilation, leftmost-match search, capture access,
// global iteration, and gsub-style replacement, built over a recursive
// backtracking interpreter.
package luapattern

// Config controls pattern compilation behavior.
//
// Example:
//
//	cfg := luapattern.DefaultConfig()
//	cfg.MaxCaptures = 8
//	p, err := luapattern.CompileWithConfig(`(%a+)=(%d+)`, cfg)
type Config struct {
	// MaxCaptures bounds the capture table size. Lua itself fixes this at
	// 32 (LUA_MAXCAPTURES); patterns that open more captures than this
	// fail compilation with TooManyCaptures.
	// Default: 32
	MaxCaptures int

	// MaxRecursionDepth bounds the recursive backtracker's call depth. Lua
	// itself fixes this at 200 (lstrlib.c's matchdepth); a match that
	// exhausts this budget fails with TooComplex rather than growing the
	// Go call stack without limit.
	// Default: 200
	MaxRecursionDepth int

	// EnableFastScan enables simd.ScanClassRun's 8-byte-unrolled counting
	// of a quantified item's run length (e.g. the greedy seed count for
	// "%s*"). When false, the matcher falls back to a byte-at-a-time
	// membership loop; the match result is identical either way.
	// Default: true
	EnableFastScan bool

	// MaxPrefilterLiterals bounds how many distinct bytes a mandatory
	// leading class set may expand to before the compiler gives up
	// building an Aho-Corasick prefilter for it and falls back to trying
	// every subject offset in order.
	// Default: 64
	MaxPrefilterLiterals int

	// EnablePrefilter enables the leading-byte-set prefilter described by
	// MaxPrefilterLiterals. When false, the anchor loop always tries every
	// offset in order, regardless of pattern shape.
	// Default: true
	EnablePrefilter bool
}

// DefaultConfig returns Lua-compatible defaults.
func DefaultConfig() Config {
	return Config{
		MaxCaptures:          32,
		MaxRecursionDepth:    200,
		EnableFastScan:       true,
		MaxPrefilterLiterals: 64,
		EnablePrefilter:      true,
	}
}

// Validate checks that c's fields are within supported ranges.
//
// Valid ranges:
//   - MaxCaptures: 1 to 255
//   - MaxRecursionDepth: 10 to 1,000
//   - MaxPrefilterLiterals: 1 to 256 (only checked when EnablePrefilter)
func (c Config) Validate() error {
	if c.MaxCaptures < 1 || c.MaxCaptures > 255 {
		return &ConfigError{
			Field:   "MaxCaptures",
			Message: "must be between 1 and 255",
		}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 1,000",
		}
	}
	if c.EnablePrefilter {
		if c.MaxPrefilterLiterals < 1 || c.MaxPrefilterLiterals > 256 {
			return &ConfigError{
				Field:   "MaxPrefilterLiterals",
				Message: "must be between 1 and 256",
			}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "luapattern: invalid config: " + e.Field + ": " + e.Message
}
