package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "baseball-scraper",
	Short: "Baseball Almanac season data pipeline",
	Long:  "Scrapes league season pages into per-dataset CSVs, cleans and repairs the records, applies season-specific fixes, and migrates the result into SQLite.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
