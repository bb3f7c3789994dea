// Package routeros is a thin client for the router's REST API. It covers the
// two endpoints the dashboard needs: the WireGuard peers table and the system
// identity (as a reachability check).
package routeros

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wgboard/internal/peer"
)

const defaultTimeout = 10 * time.Second

// Client talks to one router over its REST API using basic auth.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewClient creates a client for the given router address. The address may
// omit the scheme; https is assumed since RouterOS serves REST over the
// www-ssl service by default.
func NewClient(address, username, password string) *Client {
	return &Client{
		baseURL:  normalizeBaseURL(address),
		username: username,
		password: password,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// AllowInsecure disables TLS certificate verification. Routers commonly ship
// with self-signed certificates.
func (c *Client) AllowInsecure() {
	c.http.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// Peers fetches the full WireGuard peers table. The response must be a JSON
// array; anything else is an error, never coerced into an empty batch.
func (c *Client) Peers(ctx context.Context) ([]peer.RawPeer, error) {
	body, err := c.get(ctx, "/rest/interface/wireguard/peers")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raws []peer.RawPeer
	if err := json.NewDecoder(body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode peers: %w", err)
	}
	return raws, nil
}

// Ping checks that the router is reachable and the credentials work.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.get(ctx, "/rest/system/identity")
	if err != nil {
		return err
	}
	return body.Close()
}

func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return nil, fmt.Errorf("router request failed: %s: %s", res.Status, msg)
		}
		return nil, fmt.Errorf("router request failed: %s", res.Status)
	}

	return res.Body, nil
}

func normalizeBaseURL(address string) string {
	a := strings.TrimSpace(address)
	if a != "" && !strings.HasPrefix(a, "http://") && !strings.HasPrefix(a, "https://") {
		a = "https://" + a
	}
	return strings.TrimRight(a, "/")
}
