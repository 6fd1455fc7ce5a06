package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Apply season-specific corrections",
	Long: `Apply the corrections file to the datasets: rows recorded under the
wrong dataset are relocated, mis-scaled values are divided back. Each
touched dataset is backed up first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "fix"))

		out, err := sink.New(cfg.Scrape.OutputDir)
		if err != nil {
			return err
		}
		corrections, err := clean.LoadCorrections(cfg.Fix.CorrectionsFile)
		if err != nil {
			return err
		}

		results, err := clean.ApplyCorrections(out, corrections, cfg.Fix.BackupDir)
		if err != nil {
			return err
		}

		total := 0
		for _, r := range results {
			total += r.Rows
		}
		log.Info("corrections complete",
			zap.Int("corrections", len(results)),
			zap.Int("rows", total),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
