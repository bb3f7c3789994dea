package peer

// Defaults for the reference deployment.
const DefaultPoolCapacity = 200

// DefaultInfraPrefixes are the two infrastructure-reserved address prefixes
// stripped from local-network lists: the tunnel overlay subnet and the
// gateway-management subnet. Entries containing either prefix are plumbing,
// not customer LANs.
var DefaultInfraPrefixes = []string{"10.0.0.", "172.16.100."}

// Rules hold the static classification tables and deployment constants.
// They are injected once at construction and never mutated afterwards.
type Rules struct {
	// Reserved maps tunnel numbers exempted into StatusReserved
	// (dynamic-DNS reservations) regardless of handshake activity.
	Reserved map[int]struct{}

	// Static maps tunnel numbers with a fixed local-network assignment;
	// membership forces StatusStatic and wins over Reserved.
	Static map[int]string

	// PoolCapacity is the fixed size of the address pool peers are
	// allocated from.
	PoolCapacity int

	// InfraPrefixes are substrings marking infrastructure entries in the
	// allowed-address list.
	InfraPrefixes []string
}

// DefaultRules returns empty classification tables with reference-deployment
// constants filled in.
func DefaultRules() Rules {
	return Rules{
		Reserved:      map[int]struct{}{},
		Static:        map[int]string{},
		PoolCapacity:  DefaultPoolCapacity,
		InfraPrefixes: DefaultInfraPrefixes,
	}
}
