package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sweetd",
	Short: "Sweet Delights - sweet shop backend",
	Long: `Sweet Delights is the REST backend of a sweet shop: catalog and
stock management, cart and checkout, and customer analytics derived from
the purchase ledger.

Use the run command to start the API server, migrate to manage the
database schema, and seed to load demo data for local development.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
