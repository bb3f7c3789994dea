// Package store persists the last fetched peer snapshot so the dashboard can
// render known state while the router is unreachable.
package store

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"wgboard/internal/peer"
)

// Snapshot is one normalized refresh result.
type Snapshot struct {
	FetchedAt time.Time   `yaml:"fetched_at"`
	Peers     []peer.Peer `yaml:"peers"`
}

// LoadSnapshot loads a snapshot from disk. A missing file returns an empty
// snapshot, not an error.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// SaveSnapshot writes a snapshot to disk.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
