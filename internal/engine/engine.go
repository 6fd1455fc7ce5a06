// Package engine drives extraction: for each season of a league it fetches
// the page, classifies its tables, runs the matching extractors, merges the
// records into the sink, and checkpoints the unit. Units are strictly
// sequential and all-or-nothing; a failed unit is left un-checkpointed so
// the next run retries it.
package engine

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/checkpoint"
	"github.com/jackie3981/baseball-scrapping/internal/extract"
	"github.com/jackie3981/baseball-scrapping/internal/model"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

// Options configures one league run.
type Options struct {
	// League is the short code stamped on every record, e.g. "AL".
	League string
	// LeagueKey is the distinctive part of the league's banner title on
	// the year menu, e.g. "American League". Banners carry the league's
	// year range ("The History of the American League From 1901 to 2025"),
	// which grows a season at a time, so lookup matches by containment.
	LeagueKey string
}

// RunSummary is the structured outcome of one run, fed to the report writer.
type RunSummary struct {
	RunID      string
	League     string
	Started    time.Time
	Finished   time.Time
	Total      int
	Processed  int
	Skipped    int
	Failed     []string
	RowIssues  int
	RowsMerged int
	Duplicates int
	Datasets   map[string]int // dataset name -> rows merged this run
}

// Engine wires the page source, sink, and checkpoint tracker together.
type Engine struct {
	source almanac.Source
	sink   *sink.Sink
	ckpt   *checkpoint.Tracker
}

// New creates an engine.
func New(source almanac.Source, s *sink.Sink, ckpt *checkpoint.Tracker) *Engine {
	return &Engine{source: source, sink: s, ckpt: ckpt}
}

// Run extracts every not-yet-checkpointed season of the league. Unit
// failures are logged and counted, never fatal to the run; the checkpoint
// is saved unconditionally before returning.
func (e *Engine) Run(ctx context.Context, opts Options) (*RunSummary, error) {
	log := zap.L().With(
		zap.String("component", "engine"),
		zap.String("league", opts.League),
	)

	summary := &RunSummary{
		RunID:    uuid.New().String(),
		League:   opts.League,
		Started:  time.Now().UTC(),
		Datasets: make(map[string]int),
	}
	defer func() {
		summary.Finished = time.Now().UTC()
		if err := e.ckpt.Save(); err != nil {
			log.Error("final checkpoint save failed", zap.Error(err))
		}
	}()

	leagues, err := e.source.Leagues(ctx)
	if err != nil {
		return summary, eris.Wrap(err, "engine: discover leagues")
	}
	seasons, ok := findLeague(leagues, opts.LeagueKey)
	if !ok {
		return summary, eris.Errorf("engine: league %q not found on year menu", opts.LeagueKey)
	}
	summary.Total = len(seasons)

	log.Info("starting run",
		zap.String("run_id", summary.RunID),
		zap.Int("seasons", len(seasons)),
		zap.Int("already_done", e.ckpt.Count()),
	)

	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return summary, eris.Wrap(err, "engine: run cancelled")
		}
		if e.ckpt.IsDone(season.Year) {
			summary.Skipped++
			continue
		}

		if err := e.processUnit(ctx, season, opts, summary); err != nil {
			log.Error("season failed",
				zap.String("season", season.Year),
				zap.Error(err),
			)
			summary.Failed = append(summary.Failed, season.Year)
			continue
		}

		if err := e.ckpt.MarkDone(season.Year); err != nil {
			log.Error("checkpoint save failed", zap.String("season", season.Year), zap.Error(err))
		}
		summary.Processed++
	}

	log.Info("run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", len(summary.Failed)),
		zap.Int("rows_merged", summary.RowsMerged),
	)
	return summary, nil
}

// findLeague resolves a league's seasons from the year-menu banners by
// banner containment, exact match first. Sorted scan keeps the pick stable
// should a key ever match more than one banner.
func findLeague(leagues map[string][]almanac.Season, key string) ([]almanac.Season, bool) {
	if seasons, ok := leagues[key]; ok {
		return seasons, true
	}
	banners := make([]string, 0, len(leagues))
	for b := range leagues {
		banners = append(banners, b)
	}
	sort.Strings(banners)
	for _, b := range banners {
		if strings.Contains(b, key) {
			return leagues[b], true
		}
	}
	return nil, false
}

// processUnit extracts one season page and merges its records. Records are
// staged per dataset and merged only after the whole page extracts, so a
// mid-unit failure commits nothing.
func (e *Engine) processUnit(ctx context.Context, season almanac.Season, opts Options, summary *RunSummary) error {
	log := zap.L().With(
		zap.String("component", "engine"),
		zap.String("league", opts.League),
		zap.String("season", season.Year),
	)

	year, err := strconv.Atoi(season.Year)
	if err != nil {
		return eris.Wrapf(err, "engine: season label %q", season.Year)
	}

	tables, err := e.source.SeasonTables(ctx, season.URL)
	if err != nil {
		return eris.Wrapf(err, "engine: fetch season %s", season.Year)
	}
	log.Debug("fetched season page", zap.Int("tables", len(tables)))

	staged := make(map[string][]model.Row)
	for _, t := range tables {
		name, rows, issues := extractTable(t, year, opts.League)
		summary.RowIssues += len(issues)
		for _, iss := range issues {
			log.Warn("row skipped",
				zap.String("table", t.Title),
				zap.Int("row", iss.Row),
				zap.Error(iss.Err),
			)
		}
		if name == "" {
			continue
		}
		staged[name] = append(staged[name], rows...)
	}

	for name, rows := range staged {
		stats, err := e.sink.Merge(name, rows)
		if err != nil {
			return eris.Wrapf(err, "engine: merge %s", name)
		}
		summary.RowsMerged += stats.Added
		summary.Duplicates += stats.Duplicates
		summary.Datasets[name] += stats.Added
	}
	return nil
}

// extractTable classifies one table and runs the matching strategy,
// returning the target dataset name and the rows to merge. Unrecognized
// tables return an empty name and no rows.
func extractTable(t almanac.Table, year int, league string) (string, []model.Row, []extract.RowIssue) {
	cls := extract.Classify(t)
	switch cls.Kind {
	case extract.KindPlayerLeaders:
		return DatasetName(league, cls), leaderRows(extract.Leaders(t, year, league)), nil
	case extract.KindPitcherLeaders:
		return DatasetName(league, cls), leaderRows(extract.Leaders(t, year, league)), nil
	case extract.KindStandings:
		records, issues := extract.Standings(t, year, league)
		rows := make([]model.Row, 0, len(records))
		for _, r := range records {
			rows = append(rows, r.ToRow())
		}
		return DatasetName(league, cls), rows, issues
	case extract.KindTeamLeaders:
		return DatasetName(league, cls), leaderRows(extract.TeamLeaders(t, year, league)), nil
	case extract.KindTeamStats:
		records, issues := extract.TeamStats(t, year, league, cls.Stat)
		rows := make([]model.Row, 0, len(records))
		for _, r := range records {
			rows = append(rows, r.ToRow())
		}
		return DatasetName(league, cls), rows, issues
	}
	return "", nil, nil
}

func leaderRows(records []model.LeaderRecord) []model.Row {
	rows := make([]model.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.ToRow())
	}
	return rows
}

// DatasetName maps a classification to its per-league dataset.
func DatasetName(league string, cls extract.Classification) string {
	switch cls.Kind {
	case extract.KindPlayerLeaders:
		return league + "_Player_Hitting_Leaders"
	case extract.KindPitcherLeaders:
		return league + "_Pitcher_Leaders"
	case extract.KindStandings:
		return league + "_Team_Standings"
	case extract.KindTeamLeaders:
		return league + "_Team_" + string(cls.Stat) + "_Leaders"
	case extract.KindTeamStats:
		return league + "_Team_" + string(cls.Stat) + "_Complete"
	}
	return ""
}
