package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wgboard/internal/stunutil"
)

func init() {
	doctorCmd.Flags().StringSliceVar(&doctorSTUN, "stun", []string{"stun.l.google.com:19302", "stun.cloudflare.com:3478"}, "STUN servers for public address discovery")
	rootCmd.AddCommand(doctorCmd)
}

var doctorSTUN []string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check router reachability and discover the public endpoint address",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	fmt.Printf("router %s: ", cfg.Router.Address)
	if err := newRouterClient(cfg.Router).Ping(ctx); err != nil {
		fmt.Printf("FAIL (%v)\n", err)
	} else {
		fmt.Println("OK")
	}

	fmt.Print("public address: ")
	res, err := stunutil.Discover(ctx, doctorSTUN, 5*time.Second)
	if err != nil {
		fmt.Printf("FAIL (%v)\n", err)
		return nil
	}
	fmt.Println(res.PublicAddr)
	if !res.Stable {
		fmt.Println("note: NAT mapping differs between servers; this address is not usable as a fixed peer endpoint")
	}
	return nil
}
