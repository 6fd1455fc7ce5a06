package main

import (
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/checkpoint"
	"github.com/jackie3981/baseball-scrapping/internal/engine"
	"github.com/jackie3981/baseball-scrapping/internal/report"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

// leagueOpts maps the short league code to the league-name phrase of its
// banner on the year-by-year menu ("The History of the American League
// From 1901 to 2025"); the engine matches banners by containment.
var leagueOpts = map[string]engine.Options{
	"AL": {League: "AL", LeagueKey: "American League"},
	"NL": {League: "NL", LeagueKey: "National League"},
	"FL": {League: "FL", LeagueKey: "Federal League"},
	"PL": {League: "PL", LeagueKey: "Players League"},
	"UA": {League: "UA", LeagueKey: "Union Association"},
	"AA": {League: "AA", LeagueKey: "American Association"},
}

// leagueOrder fixes the processing order for --league all.
var leagueOrder = []string{"AL", "NL", "FL", "PL", "UA", "AA"}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract season pages into per-dataset CSVs",
	Long: `Walk the year-by-year menu of each selected league, extract every
recognized table on each season page, and merge the records into the
per-dataset CSVs. Completed seasons are checkpointed; an interrupted run
resumes where it left off.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "scrape"))

		codes, err := selectedLeagues(cmd)
		if err != nil {
			return err
		}

		client := almanac.NewClient(almanac.ClientOptions{
			BaseURL:    cfg.Scrape.BaseURL,
			UserAgent:  cfg.Scrape.UserAgent,
			Timeout:    cfg.Scrape.Timeout(),
			MaxRetries: cfg.Scrape.MaxRetries,
			Delay:      cfg.Scrape.Delay(),
		})
		out, err := sink.New(cfg.Scrape.OutputDir)
		if err != nil {
			return err
		}
		reports, err := report.New(cfg.Report.Dir)
		if err != nil {
			return err
		}

		for _, code := range codes {
			opts := leagueOpts[code]

			ckpt, err := checkpoint.Open(checkpointPath(cfg.Scrape.CheckpointFile, code), code, cfg.Scrape.SaveEvery)
			if err != nil {
				return err
			}

			sum, err := engine.New(client, out, ckpt).Run(ctx, opts)
			if err != nil {
				return eris.Wrapf(err, "scrape: league %s", code)
			}

			path, err := reports.WriteRun(sum)
			if err != nil {
				return err
			}
			log.Info("league scraped",
				zap.String("league", code),
				zap.Int("processed", sum.Processed),
				zap.Int("failed", len(sum.Failed)),
				zap.String("report", path),
			)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().String("league", "all", "league to scrape: al, nl, fl, pl, ua, aa, or all")
	rootCmd.AddCommand(scrapeCmd)
}

// selectedLeagues resolves the --league flag to league codes, stable order.
func selectedLeagues(cmd *cobra.Command) ([]string, error) {
	raw, _ := cmd.Flags().GetString("league")
	code := strings.ToUpper(raw)
	if code == "ALL" {
		return leagueOrder, nil
	}
	if _, ok := leagueOpts[code]; ok {
		return []string{code}, nil
	}
	return nil, eris.Errorf("scrape: unknown league %q", raw)
}

// checkpointPath derives the per-league checkpoint file from the configured
// base path, e.g. data/checkpoint.json -> data/checkpoint_AL.json.
func checkpointPath(base, league string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + league + ext
}
