// Package cmd provides the command-line interface for constcheck.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "constcheck",
	Short: "constcheck validates build configuration constants and reports the derived conformance value.",
	Long: `constcheck validates three externally supplied configuration constants ` +
		`(an integer bound, a boolean flag, and a power-of-two value) and, when all ` +
		`constraints hold, prints the derived conformance value. It can run a single ` +
		`parameter set (run), a batch of sets recorded to SQLite (batch), or serve ` +
		`recorded results over HTTP (serve).`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
