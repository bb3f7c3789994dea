// Package cli implements the wgboard command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wgboard",
	Short: "wgboard — WireGuard peer dashboard for RouterOS",
	Long: `wgboard polls a router's REST API for WireGuard peer records, classifies
each peer (active, inactive, reserved, static) and serves the result as a
JSON API for the web panel or prints it straight to the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
