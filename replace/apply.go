package replace

import (
	"strconv"

	"github.com/coregx/luapattern/pattern"
)

// Apply produces the replacement byte sequence for a single match: template
// literals are copied verbatim; %0 expands to the whole match; %n expands
// to capture slot n, which must be closed at the time of the call (a
// position capture renders as the ASCII decimal of its 1-based position,
// matching Lua's own %n-on-a-position-capture behavior).
func Apply(tpl *Template, m *pattern.Matcher, subject []byte) ([]byte, error) {
	var out []byte
	for _, it := range tpl.items {
		switch it.kind {
		case itemLiteral:
			out = append(out, it.literal...)
		case itemCapture:
			if it.capture >= m.NumMatches() {
				return nil, &pattern.Error{Kind: pattern.InvalidCapture, N: it.capture}
			}
			if m.IsPosition(it.capture) {
				start, _, err := m.CaptureRange(it.capture)
				if err != nil {
					return nil, err
				}
				out = strconv.AppendInt(out, int64(start+1), 10)
				continue
			}
			start, end, err := m.CaptureRange(it.capture)
			if err != nil {
				return nil, err
			}
			out = append(out, subject[start:end]...)
		}
	}
	return out, nil
}
