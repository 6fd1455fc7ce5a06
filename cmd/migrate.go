package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/report"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
	"github.com/jackie3981/baseball-scrapping/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Load the cleaned datasets into SQLite",
	Long: `Load every dataset CSV into the SQLite database, one table per
dataset with typed columns, lookup indexes, and post-load validations.
Existing tables are replaced.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "migrate"))

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

		db, err := store.Open(cfg.Store.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		// Sequential on purpose: SQLite has a single writer.
		var results []*store.LoadResult
		for _, name := range names {
			ds, err := out.Load(name)
			if err != nil {
				return err
			}
			res, err := db.LoadDataset(ctx, ds)
			if err != nil {
				return err
			}
			log.Info("table loaded",
				zap.String("table", res.Table),
				zap.Int("rows", res.Rows),
				zap.Int("checks", len(res.Validations)),
			)
			for _, v := range res.Validations {
				log.Warn("validation finding", zap.String("table", res.Table), zap.String("finding", v))
			}
			results = append(results, res)
		}

		path, err := reports.WriteMigration(results)
		if err != nil {
			return err
		}
		log.Info("migration complete", zap.Int("tables", len(results)), zap.String("report", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
