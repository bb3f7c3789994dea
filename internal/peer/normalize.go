package peer

import (
	"regexp"
	"strings"
)

var ipv4Pattern = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+`)

// Normalize converts one raw record into its display form. It never fails:
// missing fields fall back to sentinels. The status field is filled in by
// Classify; use NormalizeAll for the full pipeline.
//
// The tunnel address is the first dotted quad found anywhere in the
// allowed-address field. If a LAN entry happens to be listed before the
// tunnel entry it wins — a positional heuristic the panel has always used,
// kept as-is for compatibility with existing router data.
func Normalize(raw RawPeer, rules Rules) Peer {
	name := raw.Name
	if name == "" {
		name = raw.Comment
	}
	if name == "" {
		name = NameUnnamed
	}

	tunnel := AddrUnknown
	if m := ipv4Pattern.FindString(raw.AllowedAddress); m != "" {
		tunnel = m
	}

	handshake := raw.LastHandshake
	if handshake == "" {
		handshake = HandshakeNever
	}

	endpoint := raw.Endpoint
	if endpoint == "" {
		endpoint = AddrUnknown
	}

	return Peer{
		ID:            raw.ID,
		Name:          name,
		TunnelAddress: tunnel,
		LocalNetworks: localNetworks(raw.AllowedAddress, rules.InfraPrefixes),
		LastHandshake: handshake,
		Comment:       raw.Comment,
		Endpoint:      endpoint,
	}
}

// NormalizeAll runs normalization and classification over a whole batch,
// preserving input order.
func NormalizeAll(raws []RawPeer, rules Rules) []Peer {
	peers := make([]Peer, 0, len(raws))
	for _, raw := range raws {
		p := Normalize(raw, rules)
		p.Status = Classify(raw.LastHandshake, p.Name, rules)
		peers = append(peers, p)
	}
	return peers
}

// localNetworks splits the allowed-address list and drops infrastructure
// entries. Order is preserved and duplicates are kept.
func localNetworks(allowed string, infraPrefixes []string) []string {
	networks := []string{}
	for _, part := range strings.Split(allowed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if containsAny(part, infraPrefixes) {
			continue
		}
		networks = append(networks, part)
	}
	return networks
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
