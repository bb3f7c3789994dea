package routeros

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_PeersParsesRouterFields(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/interface/wireguard/peers" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{".id":"*1","name":"MC7","allowed-address":"10.0.0.5/32,192.168.1.0/24","last-handshake":"2d3h","current-endpoint-address":"203.0.113.9"},
			{".id":"*2","comment":"spare"}
		]`))
	}))
	defer s.Close()

	c := NewClient(s.URL, "admin", "secret")
	raws, err := c.Peers(context.Background())
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("len=%d", len(raws))
	}
	if raws[0].ID != "*1" || raws[0].Name != "MC7" || raws[0].LastHandshake != "2d3h" {
		t.Fatalf("raw[0]=%+v", raws[0])
	}
	if raws[0].AllowedAddress != "10.0.0.5/32,192.168.1.0/24" {
		t.Fatalf("allowed=%q", raws[0].AllowedAddress)
	}
	if raws[1].Comment != "spare" || raws[1].Name != "" || raws[1].LastHandshake != "" {
		t.Fatalf("raw[1]=%+v", raws[1])
	}
}

func TestClient_ErrorIncludesStatusAndBody(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":401,"message":"Unauthorized"}`))
	}))
	defer s.Close()

	c := NewClient(s.URL, "admin", "wrong")
	_, err := c.Peers(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "401") || !strings.Contains(got, "Unauthorized") {
		t.Fatalf("error=%q", got)
	}
}

func TestClient_RejectsNonArrayPayload(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"detail":"not a list"}`))
	}))
	defer s.Close()

	c := NewClient(s.URL, "admin", "secret")
	_, err := c.Peers(context.Background())
	if err == nil {
		t.Fatalf("expected decode error for non-array payload")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	if got := normalizeBaseURL("192.168.88.1"); got != "https://192.168.88.1" {
		t.Fatalf("got %q", got)
	}
	if got := normalizeBaseURL("http://192.168.88.1/"); got != "http://192.168.88.1" {
		t.Fatalf("got %q", got)
	}
}
