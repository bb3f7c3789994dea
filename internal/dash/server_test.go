package dash

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wgboard/internal/config"
	"wgboard/internal/peer"
	"wgboard/internal/store"
)

type fakeSource struct {
	raws []peer.RawPeer
	err  error
}

func (f *fakeSource) Peers(ctx context.Context) ([]peer.RawPeer, error) {
	return f.raws, f.err
}

func testFixture(t *testing.T, src *fakeSource) *Server {
	t.Helper()

	rules := peer.DefaultRules()
	rules.Reserved = map[int]struct{}{7: {}}
	rules.Static = map[int]string{8: "192.168.8.0/24"}

	s, err := NewServer(config.DashboardConfig{Listen: "127.0.0.1:0"}, rules, src, nil)
	require.NoError(t, err)
	return s
}

func defaultRaws() []peer.RawPeer {
	return []peer.RawPeer{
		{ID: "*1", Name: "MC7", AllowedAddress: "10.0.0.5/32,192.168.1.0/24,172.16.100.5", LastHandshake: "2d3h"},
		{ID: "*2", Name: "MC8", AllowedAddress: "10.0.0.8/32"},
		{ID: "*3", Name: "MC99", AllowedAddress: "10.0.0.99/32", LastHandshake: "15s", Comment: "warehouse"},
		{ID: "*4"},
	}
}

func TestServer_PeersEndpoint(t *testing.T) {
	t.Parallel()

	s := testFixture(t, &fakeSource{raws: defaultRaws()})
	require.NoError(t, s.Refresh(context.Background()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var resp peersResponse
	getJSON(t, ts.URL+"/api/peers", &resp)
	require.Equal(t, 4, resp.Count)
	require.Equal(t, "MC7", resp.Peers[0].Name)
	require.Equal(t, peer.StatusReserved, resp.Peers[0].Status)
	require.Equal(t, []string{"192.168.1.0/24"}, resp.Peers[0].LocalNetworks)
	require.Equal(t, peer.StatusStatic, resp.Peers[1].Status)
	require.Equal(t, peer.StatusActive, resp.Peers[2].Status)
	require.Equal(t, "unnamed", resp.Peers[3].Name)
	require.Equal(t, peer.StatusInactive, resp.Peers[3].Status)

	getJSON(t, ts.URL+"/api/peers?status=static", &resp)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "MC8", resp.Peers[0].Name)

	getJSON(t, ts.URL+"/api/peers?q=warehouse&status=active", &resp)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "MC99", resp.Peers[0].Name)

	res, err := http.Get(ts.URL + "/api/peers?status=bogus")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServer_StatsEndpoint(t *testing.T) {
	t.Parallel()

	s := testFixture(t, &fakeSource{raws: defaultRaws()})
	require.NoError(t, s.Refresh(context.Background()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var resp statsResponse
	getJSON(t, ts.URL+"/api/stats", &resp)
	require.Equal(t, 4, resp.Stats.Total)
	require.Equal(t, 1, resp.Stats.Active)
	require.Equal(t, 1, resp.Stats.Inactive)
	require.Equal(t, 1, resp.Stats.Reserved)
	require.Equal(t, 1, resp.Stats.Static)
	require.Equal(t, peer.DefaultPoolCapacity-4, resp.Stats.Available)
}

func TestServer_RefreshEndpoint(t *testing.T) {
	t.Parallel()

	src := &fakeSource{raws: defaultRaws()[:1]}
	s := testFixture(t, src)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp statsResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	require.Equal(t, 1, resp.Stats.Total)

	// A refresh replaces the previous snapshot wholesale.
	src.raws = defaultRaws()
	res2, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	res2.Body.Close()

	var peers peersResponse
	getJSON(t, ts.URL+"/api/peers", &peers)
	require.Equal(t, 4, peers.Count)
}

func TestServer_RefreshUpstreamFailure(t *testing.T) {
	t.Parallel()

	s := testFixture(t, &fakeSource{err: errors.New("connection refused")})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestServer_ExportCSV(t *testing.T) {
	t.Parallel()

	s := testFixture(t, &fakeSource{raws: defaultRaws()[:1]})
	require.NoError(t, s.Refresh(context.Background()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/export.csv")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, "text/csv", res.Header.Get("Content-Type"))

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "MC7")
	require.Contains(t, string(body), "reserved")
}

func TestServer_RefreshPersistsSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	rules := peer.DefaultRules()
	src := &fakeSource{raws: defaultRaws()}

	s, err := NewServer(config.DashboardConfig{Listen: "127.0.0.1:0", SnapshotPath: path}, rules, src, nil)
	require.NoError(t, err)
	require.NoError(t, s.Refresh(context.Background()))

	snap, err := store.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snap.Peers, 4)

	// A new server picks up the persisted snapshot before any refresh.
	s2, err := NewServer(config.DashboardConfig{Listen: "127.0.0.1:0", SnapshotPath: path}, rules, src, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(s2.Handler())
	defer ts.Close()

	var resp peersResponse
	getJSON(t, ts.URL+"/api/peers", &resp)
	require.Equal(t, 4, resp.Count)
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}
