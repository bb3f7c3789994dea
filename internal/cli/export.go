package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgboard/internal/peer"
)

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the classified peer list as CSV",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	peers, _, err := fetchPeers(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := peer.WriteCSV(out, peers); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "wrote %d peers to %s\n", len(peers), exportOut)
	}
	return nil
}
