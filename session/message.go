package session

import (
	"fmt"
	"strings"
)

// unlockMarker is the token the receiver scans for anywhere in a read.
const unlockMarker = "UNLOCK"

// Tint is the RGB color payload carried by the unlock message, each
// component in [0,1].
type Tint struct {
	R, G, B float64
}

// DefaultTint is substituted when an unlock arrives with an unparsable
// color payload.
var DefaultTint = Tint{R: 1, G: 1, B: 1}

// FormatUnlock renders the one application-level message of the
// protocol: the marker token plus three decimal components.
func FormatUnlock(t Tint) []byte {
	return []byte(fmt.Sprintf("%s %.3f %.3f %.3f", unlockMarker, t.R, t.G, t.B))
}

// ParseUnlock looks for the marker anywhere in a received buffer. The
// second return is whether an unlock was found at all; a found marker
// with garbage after it still unlocks, just with DefaultTint. A message
// split across reads will not match in either fragment and is lost;
// the wire format has no framing to recover it with.
func ParseUnlock(data []byte) (Tint, bool) {
	i := strings.Index(string(data), unlockMarker)
	if i < 0 {
		return Tint{}, false
	}
	rest := string(data[i+len(unlockMarker):])
	var t Tint
	if n, err := fmt.Sscanf(rest, "%f %f %f", &t.R, &t.G, &t.B); err != nil || n != 3 {
		return DefaultTint, true
	}
	return t, true
}
