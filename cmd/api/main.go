package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/company-directory-go/internal/config"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/logger"
	"github.com/spf13/cobra"
)

const version = "v1.0.0"

var cfg *config.Config

// rootCmd serves the API when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Company directory API",
	Long: `Company directory API.

Available subcommands:
  serve   - Run the HTTP API (default)
  migrate - Apply database migrations
  seed    - Load the demo directory
  worker  - Process queued emails`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(logger.New(os.Stdout, logger.Options{
			App:     cfg.App.Name,
			Version: version,
			Env:     cfg.App.Env,
			Level:   cfg.App.LogLevel,
		}))
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, workerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
