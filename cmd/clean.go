package main

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
	"github.com/jackie3981/baseball-scrapping/internal/report"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize and repair every dataset",
	Long: `Run the normalizer over every dataset CSV: drop empty rows, dedup on
the key columns, repair encoding artifacts and decimal glitches, null the
placeholders, and coerce numeric columns. The pass is idempotent.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "clean"))

		out, err := sink.New(cfg.Scrape.OutputDir)
		if err != nil {
			return err
		}
		names, err := out.List()
		if err != nil {
			return err
		}
		reports, err := report.New(cfg.Report.Dir)
		if err != nil {
			return err
		}

		var (
			mu   sync.Mutex
			sums []*clean.Summary
		)
		g := new(errgroup.Group)
		g.SetLimit(cfg.Clean.MaxWorkers)
		for _, name := range names {
			name := name
			g.Go(func() error {
				ds, err := out.Load(name)
				if err != nil {
					return err
				}
				sum := clean.Normalize(ds)
				if sum.Changed() {
					if err := out.Write(ds); err != nil {
						return err
					}
				}
				log.Info("dataset cleaned",
					zap.String("dataset", name),
					zap.Int("rows", sum.RowsAfter),
					zap.Bool("changed", sum.Changed()),
				)
				mu.Lock()
				sums = append(sums, sum)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		path, err := reports.WriteCleaning(sums)
		if err != nil {
			return err
		}
		log.Info("cleaning complete", zap.Int("datasets", len(sums)), zap.String("report", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
