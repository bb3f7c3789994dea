package peer

import (
	"fmt"
	"strings"
)

// Filter applies a free-text query and a status filter over a normalized
// list. The text predicate is a case-insensitive substring match against
// name, tunnel address or comment; an empty query always passes. StatusAll
// disables status filtering. Both predicates must hold. Input order is
// preserved and the input slice is never mutated.
func Filter(peers []Peer, query string, status Status) []Peer {
	q := strings.ToLower(query)
	out := make([]Peer, 0, len(peers))
	for _, p := range peers {
		if status != StatusAll && p.Status != status {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Peer, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(p.TunnelAddress, q) ||
		strings.Contains(strings.ToLower(p.Comment), q)
}

// ParseStatus maps a wire/CLI value to a Status. The empty string means no
// filter. "static-override" is accepted as a long spelling of "static".
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return StatusAll, nil
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	case "reserved":
		return StatusReserved, nil
	case "static", "static-override":
		return StatusStatic, nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}
