package cmd

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/conformlab/constcheck/recording"
	"github.com/conformlab/constcheck/report"
)

var (
	serveDB   string
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded check runs over HTTP",
	Long: `Serve exposes a run database produced by batch as JSON ` +
		`(/api/runs and /api/summary).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.SilenceUsage = true

		filename := serveDB + ".sqlite3"
		if _, err := os.Stat(filename); err != nil {
			log.Fatalf("Error opening run database: %v", err)
		}

		db, err := sql.Open("sqlite3", filename)
		if err != nil {
			log.Fatalf("Error opening run database: %v", err)
		}

		store := recording.NewRunStoreWithDB(db)

		server := report.NewServer(store)
		if servePort > 0 {
			server.WithPortNumber(servePort)
		}
		server.StartServer()

		if serveOpen {
			server.OpenInBrowser()
		}

		select {}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveDB, "db", "",
		"run database path without the .sqlite3 suffix")
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"port to listen on (default: random)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false,
		"open the run listing in the default browser")
	serveCmd.MarkFlagRequired("db")

	rootCmd.AddCommand(serveCmd)
}
