package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackie3981/baseball-scrapping/internal/checkpoint"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show checkpoint and dataset status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, code := range leagueOrder {
			ckpt, err := checkpoint.Open(checkpointPath(cfg.Scrape.CheckpointFile, code), code, cfg.Scrape.SaveEvery)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d seasons completed\n", code, ckpt.Count())
			if units := ckpt.Snapshot(); len(units) > 0 {
				fmt.Printf("  %s .. %s\n", units[0], units[len(units)-1])
			}
		}

		out, err := sink.New(cfg.Scrape.OutputDir)
		if err != nil {
			return err
		}
		names, err := out.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no datasets")
			return nil
		}

		fmt.Println("\nDatasets:")
		for _, name := range names {
			ds, err := out.Load(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %-40s %d rows\n", name, len(ds.Rows))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
