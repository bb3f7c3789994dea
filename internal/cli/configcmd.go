package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgboard/internal/config"
)

func init() {
	configInitCmd.Flags().StringVar(&initAddress, "address", "", "Router address (host or URL)")
	configInitCmd.Flags().StringVar(&initUsername, "username", "admin", "Router API username")
	configInitCmd.Flags().StringVar(&initPassword, "password", "", "Router API password")
	configInitCmd.Flags().StringVar(&initListen, "listen", "", "Dashboard listen address")
	configInitCmd.Flags().BoolVar(&initInsecure, "insecure", false, "Skip router TLS certificate verification")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	initAddress  string
	initUsername string
	initPassword string
	initListen   string
	initInsecure bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the wgboard configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}

	cfg := config.Config{
		Router: config.RouterConfig{
			Address:  initAddress,
			Username: initUsername,
			Password: initPassword,
			Insecure: initInsecure,
		},
		Dashboard: config.DashboardConfig{
			Listen: initListen,
		},
	}
	config.ApplyDefaults(&cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
