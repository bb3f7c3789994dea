// Package dash serves the dashboard JSON API over the normalized peer list.
package dash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wgboard/internal/config"
	"wgboard/internal/peer"
	"wgboard/internal/store"
)

// PeerSource fetches one raw peer batch per refresh. Satisfied by
// *routeros.Client.
type PeerSource interface {
	Peers(ctx context.Context) ([]peer.RawPeer, error)
}

// Server holds the latest normalized snapshot and serves it to the panel.
type Server struct {
	cfg    config.DashboardConfig
	rules  peer.Rules
	source PeerSource
	logger *log.Logger

	// refreshMu serializes refresh cycles at the collaborator boundary.
	// Overlapping triggers are not deduplicated; last write wins.
	refreshMu sync.Mutex

	mu   sync.Mutex
	snap store.Snapshot
}

// NewServer constructs a dashboard server. If a snapshot path is configured
// and a snapshot exists on disk, it is loaded so the panel has data before
// the first successful refresh.
func NewServer(cfg config.DashboardConfig, rules peer.Rules, source PeerSource, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		rules:  rules,
		source: source,
		logger: logger,
	}
	if cfg.SnapshotPath != "" {
		snap, err := store.LoadSnapshot(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		s.snap = snap
	}
	return s, nil
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/peers", s.handlePeers)
		r.Get("/stats", s.handleStats)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/export.csv", s.handleExportCSV)
	})

	return r
}

// Run refreshes once, starts the optional poll loop and serves HTTP until
// the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		// Keep serving the last persisted snapshot while the router is down.
		s.logger.Warn("initial refresh failed", "err", err)
	}

	if s.cfg.RefreshIntervalSec > 0 {
		go s.pollLoop(ctx)
	}

	server := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("dashboard listening", "addr", s.cfg.Listen)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(s.cfg.RefreshIntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("refresh failed", "err", err)
			}
		}
	}
}

// Refresh fetches a fresh batch from the router, runs the pipeline and
// replaces the previous snapshot. The previous list is discarded, never
// merged.
func (s *Server) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	raws, err := s.source.Peers(ctx)
	if err != nil {
		return err
	}

	snap := store.Snapshot{
		FetchedAt: time.Now().UTC(),
		Peers:     peer.NormalizeAll(raws, s.rules),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.cfg.SnapshotPath != "" {
		if err := store.SaveSnapshot(s.cfg.SnapshotPath, snap); err != nil {
			s.logger.Warn("snapshot save failed", "path", s.cfg.SnapshotPath, "err", err)
		}
	}

	s.logger.Debug("refreshed", "peers", len(snap.Peers))
	return nil
}

func (s *Server) snapshot() store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

type peersResponse struct {
	FetchedAt time.Time   `json:"fetched_at"`
	Count     int         `json:"count"`
	Peers     []peer.Peer `json:"peers"`
}

type statsResponse struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Stats     peer.Stats `json:"stats"`
}

func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	status, err := peer.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.snapshot()
	filtered := peer.Filter(snap.Peers, r.URL.Query().Get("q"), status)
	writeJSON(w, http.StatusOK, peersResponse{
		FetchedAt: snap.FetchedAt,
		Count:     len(filtered),
		Peers:     filtered,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	writeJSON(w, http.StatusOK, statsResponse{
		FetchedAt: snap.FetchedAt,
		Stats:     peer.Aggregate(snap.Peers, s.rules),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Refresh(r.Context()); err != nil {
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap := s.snapshot()
	writeJSON(w, http.StatusOK, statsResponse{
		FetchedAt: snap.FetchedAt,
		Stats:     peer.Aggregate(snap.Peers, s.rules),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="peers.csv"`)
	if err := peer.WriteCSV(w, snap.Peers); err != nil {
		s.logger.Warn("csv export failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
