// Package peer implements the classification pipeline for WireGuard peer
// records fetched from a router: normalization of the raw REST fields,
// status classification, aggregate counting and list filtering.
package peer

// Status is the administrative/liveness classification of a peer.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusReserved Status = "reserved"
	StatusStatic   Status = "static"

	// StatusAll is only valid as a filter value, never as a peer status.
	StatusAll Status = "all"
)

// Sentinel values used instead of empty fields so the panel never renders blanks.
const (
	NameUnnamed    = "unnamed"
	AddrUnknown    = "N/A"
	HandshakeNever = "never"
)

// RawPeer mirrors one entry of the router's WireGuard peers REST response.
// Absent fields decode to empty strings.
type RawPeer struct {
	ID             string `json:".id"`
	Name           string `json:"name"`
	Comment        string `json:"comment"`
	AllowedAddress string `json:"allowed-address"`
	LastHandshake  string `json:"last-handshake"`
	Endpoint       string `json:"current-endpoint-address"`
}

// Peer is the normalized, display-ready form of a RawPeer.
type Peer struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	TunnelAddress string   `json:"tunnel_address" yaml:"tunnel_address"`
	LocalNetworks []string `json:"local_networks" yaml:"local_networks"`
	Status        Status   `json:"status" yaml:"status"`
	LastHandshake string   `json:"last_handshake" yaml:"last_handshake"`
	Comment       string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Endpoint      string   `json:"endpoint" yaml:"endpoint"`
}

// Stats are aggregate counts over one normalized batch.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	Reserved  int `json:"reserved"`
	Static    int `json:"static"`
	Available int `json:"available"`
}
