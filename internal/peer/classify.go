package peer

import (
	"regexp"
	"strconv"
	"strings"
)

// tunnelNumPattern extracts the numeric tunnel number from peer names like
// "MC7" or "mc42-office".
var tunnelNumPattern = regexp.MustCompile(`(?i)mc(\d+)`)

// slowUnits are the relative-time unit markers that indicate a stale
// handshake. The router reports last-handshake as a compound duration
// ("2d3h10m5s", "15s"); anything measured in hours or longer means the link
// has not exchanged traffic recently.
const slowUnits = "hdw"

// Classify assigns exactly one status to a peer. The handshake text gives
// the default, then the static tables override it: a tunnel number in the
// reserved set forces StatusReserved, and one in the static table forces
// StatusStatic. Static wins when a number is in both tables.
//
// Classification is a textual heuristic over the router's relative-time
// string, not a parsed duration. An empty handshake field means no
// handshake ever happened and classifies as inactive.
func Classify(lastHandshake, name string, rules Rules) Status {
	status := StatusInactive
	if lastHandshake != "" && !strings.ContainsAny(lastHandshake, slowUnits) {
		status = StatusActive
	}

	num, ok := tunnelNumber(name)
	if !ok {
		return status
	}
	if _, reserved := rules.Reserved[num]; reserved {
		status = StatusReserved
	}
	if _, static := rules.Static[num]; static {
		status = StatusStatic
	}
	return status
}

// tunnelNumber parses the numeric id out of a peer name. Names without an
// "MC<n>" token have no tunnel number and skip override classification.
func tunnelNumber(name string) (int, bool) {
	m := tunnelNumPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
