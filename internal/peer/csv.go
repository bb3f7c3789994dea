package peer

import (
	"encoding/csv"
	"io"
	"strings"
)

// WriteCSV writes a normalized batch as CSV with a fixed column order.
// Local networks are joined with ";" inside one cell.
func WriteCSV(w io.Writer, peers []Peer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"id",
		"name",
		"tunnel_address",
		"local_networks",
		"status",
		"last_handshake",
		"endpoint",
		"comment",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range peers {
		record := []string{
			p.ID,
			p.Name,
			p.TunnelAddress,
			strings.Join(p.LocalNetworks, ";"),
			string(p.Status),
			p.LastHandshake,
			p.Endpoint,
			p.Comment,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
