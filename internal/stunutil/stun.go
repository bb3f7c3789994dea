// Package stunutil discovers the public address of the host running wgboard.
// The doctor command uses it to tell an admin which endpoint to put into new
// peer configurations.
package stunutil

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of a discovery round.
type Result struct {
	// PublicAddr is the first mapped address reported by a STUN server.
	PublicAddr string

	// Stable is true when every queried server reported the same mapping.
	// An unstable mapping (symmetric NAT) means the discovered address is
	// not usable as a fixed peer endpoint.
	Stable bool
}

// Discover queries the given STUN servers for the public mapped address.
// At least one server must answer; per-server failures are tolerated.
func Discover(ctx context.Context, servers []string, timeout time.Duration) (Result, error) {
	if len(servers) == 0 {
		return Result{}, fmt.Errorf("no STUN servers provided")
	}

	mapped := make([]string, 0, len(servers))
	var lastErr error
	for _, server := range servers {
		addr, err := queryServer(ctx, server, timeout)
		if err != nil {
			lastErr = err
			continue
		}
		mapped = append(mapped, addr)
	}

	if len(mapped) == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("STUN discovery failed")
		}
		return Result{}, lastErr
	}

	return Result{
		PublicAddr: mapped[0],
		Stable:     stableMapping(mapped),
	}, nil
}

// stableMapping reports whether all observed mappings agree. A single
// observation is treated as stable; there is no counter-evidence.
func stableMapping(addrs []string) bool {
	for _, addr := range addrs[1:] {
		if addr != addrs[0] {
			return false
		}
	}
	return true
}

func normalizeServerURI(server string) (string, error) {
	uri := strings.TrimSpace(server)
	if uri == "" {
		return "", fmt.Errorf("empty STUN server")
	}
	if !strings.HasPrefix(uri, "stun:") {
		uri = "stun:" + uri
	}
	return uri, nil
}
