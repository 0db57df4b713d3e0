// Command shipctl checks ShipStation credentials and lists stores so the
// store id for SHIPSTATION_STORE_ID can be found.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"intake-backend/internal/fulfillment"
	"intake-backend/internal/shared/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "shipctl",
		Short:         "ShipStation helper for the intake backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout")
	rootCmd.AddCommand(storesCmd(), verifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func storesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List ShipStation stores and highlight the pharmacy store",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := clientFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			stores, err := client.ListStores(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printStores(out, stores)
			if match, ok := findPharmacyStore(stores); ok {
				fmt.Fprintf(out, "\nPharmacy store: %s (id %d)\n", match.StoreName, match.StoreID)
			} else {
				fmt.Fprintln(out, "\nNo store named like City Life Pharmacy was found.")
			}
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the configured API key and secret are accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := clientFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			stores, err := client.ListStores(ctx)
			if err != nil {
				return fmt.Errorf("credentials rejected: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credentials OK: %d store(s) visible\n", len(stores))
			return nil
		},
	}
}

func clientFor(cmd *cobra.Command) (*fulfillment.Client, context.Context, context.CancelFunc, error) {
	cfg := config.Load()
	timeout, _ := cmd.Flags().GetDuration("timeout")
	cfg.ShipStation.Timeout = timeout
	client, err := fulfillment.NewClient(cfg.ShipStation)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: set SHIPSTATION_API_KEY and SHIPSTATION_API_SECRET", err)
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	return client, ctx, cancel, nil
}
