package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgboard/internal/peer"
)

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(statsCmd)
}

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate peer counts and remaining pool capacity",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	peers, rules, err := fetchPeers(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	stats := peer.Aggregate(peers, rules)

	if statsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	}

	fmt.Printf("total:     %d\n", stats.Total)
	fmt.Printf("active:    %d\n", stats.Active)
	fmt.Printf("inactive:  %d\n", stats.Inactive)
	fmt.Printf("reserved:  %d\n", stats.Reserved)
	fmt.Printf("static:    %d\n", stats.Static)
	fmt.Printf("available: %d\n", stats.Available)
	if stats.Available < 0 {
		fmt.Println("warning: pool is over-provisioned")
	}
	return nil
}
