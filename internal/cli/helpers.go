package cli

import (
	"context"
	"os"
	"path/filepath"

	"wgboard/internal/config"
	"wgboard/internal/peer"
	"wgboard/internal/routeros"
)

const configEnv = "WGBOARD_CONFIG"

// resolveConfigPath picks the config location: --config flag, then the
// WGBOARD_CONFIG environment variable, then the per-user default.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	if env := os.Getenv(configEnv); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wgboard", "config.yaml"), nil
}

func loadConfig() (config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRouterClient(cfg config.RouterConfig) *routeros.Client {
	client := routeros.NewClient(cfg.Address, cfg.Username, cfg.Password)
	if cfg.Insecure {
		client.AllowInsecure()
	}
	client.SetTimeout(cfg.Timeout())
	return client
}

// fetchPeers runs one full fetch-and-classify cycle against the router.
func fetchPeers(ctx context.Context, cfg config.Config) ([]peer.Peer, peer.Rules, error) {
	rules := cfg.Rules.Rules()
	raws, err := newRouterClient(cfg.Router).Peers(ctx)
	if err != nil {
		return nil, rules, err
	}
	return peer.NormalizeAll(raws, rules), rules, nil
}
