package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/conformlab/constcheck/check"
	"github.com/conformlab/constcheck/config"
	"github.com/conformlab/constcheck/recording"
	"github.com/conformlab/constcheck/runner"
)

var batchOutput string

var batchCmd = &cobra.Command{
	Use:   "batch [env-file]...",
	Short: "Run a batch of conformance checks and record the outcomes",
	Long: `Batch runs one check per dotenv file, records every outcome into a ` +
		`SQLite database, and exits non-zero when any parameter set violates a ` +
		`constraint. Violated sets never produce an output line.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SilenceUsage = true

		var sets []check.Params
		for _, file := range args {
			p, err := config.ParseFile(file)
			if err != nil {
				log.Fatalf("Error loading parameters: %v", err)
			}
			sets = append(sets, p)
		}

		store := recording.NewRunStore(batchOutput)

		r := runner.MakeBuilder().
			WithRecorder(store).
			WithWriter(os.Stdout).
			Build()

		summary := r.RunAll(sets)

		fmt.Fprintf(os.Stderr, "%d run(s): %d passed, %d violated\n",
			summary.Total, summary.Passed, summary.Violated)

		if !summary.AllPassed() {
			atexit.Fatalf("%d parameter set(s) violated a constraint",
				summary.Violated)
		}

		atexit.Exit(0)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOutput, "output", "",
		"run database path without the .sqlite3 suffix (default: generated)")

	rootCmd.AddCommand(batchCmd)
}
