package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wgboard/internal/peer"
)

func init() {
	peersCmd.Flags().StringVar(&peersQuery, "query", "", "Free-text filter over name, tunnel address and comment")
	peersCmd.Flags().StringVar(&peersStatus, "status", "all", "Status filter: all|active|inactive|reserved|static")
	peersCmd.Flags().BoolVar(&peersJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(peersCmd)
}

var (
	peersQuery  string
	peersStatus string
	peersJSON   bool
)

var peersCmd = &cobra.Command{
	Use:     "peers",
	Aliases: []string{"ls"},
	Short:   "Fetch and list classified peers",
	RunE:    runPeers,
}

func runPeers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	status, err := peer.ParseStatus(peersStatus)
	if err != nil {
		return err
	}

	peers, _, err := fetchPeers(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	peers = peer.Filter(peers, peersQuery, status)

	if peersJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(peers)
	}

	if len(peers) == 0 {
		fmt.Println("No peers matched.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tSTATUS\tHANDSHAKE\tLOCAL NETWORKS\tCOMMENT")
	for _, p := range peers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.TunnelAddress, p.Status, p.LastHandshake,
			strings.Join(p.LocalNetworks, " "), p.Comment)
	}
	return w.Flush()
}
