package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/conformlab/constcheck/check"
	"github.com/conformlab/constcheck/config"
)

var (
	runBound      int
	runFlag       int
	runPowerValue int
	runEnvFile    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single conformance check",
	Long: `Run validates one parameter set and prints the derived value. ` +
		`Parameters come from --env-file and the environment; explicit flags win. ` +
		`A constraint violation terminates the process with a non-zero status ` +
		`before anything is written to standard output.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.SilenceUsage = true

		params, err := config.Load(runEnvFile)
		if err != nil {
			log.Fatalf("Error loading parameters: %v", err)
		}

		if cmd.Flags().Changed("bound") {
			params.Bound = runBound
		}
		if cmd.Flags().Changed("flag") {
			params.Flag = runFlag
		}
		if cmd.Flags().Changed("power-value") {
			params.PowerValue = runPowerValue
		}

		c := check.MakeBuilder().
			WithParams(params).
			WithWriter(os.Stdout).
			Build()

		if _, err := c.Run(); err != nil {
			log.Fatalf("Check failed: %v", err)
		}
	},
}

func init() {
	runCmd.Flags().IntVar(&runBound, "bound", 10,
		"integer bound, must be > 7")
	runCmd.Flags().IntVar(&runFlag, "flag", 1,
		"boolean-as-integer flag, must be 0 or 1")
	runCmd.Flags().IntVar(&runPowerValue, "power-value", 4,
		"power-of-two value")
	runCmd.Flags().StringVar(&runEnvFile, "env-file", "",
		"dotenv file with CONSTCHECK_* parameters")

	rootCmd.AddCommand(runCmd)
}
