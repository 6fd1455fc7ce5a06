// Package report renders the pipeline's structured summaries into plain-text
// reports. The passes produce counts; this package only formats them.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
	"github.com/jackie3981/baseball-scrapping/internal/engine"
	"github.com/jackie3981/baseball-scrapping/internal/store"
)

// Writer writes reports under a directory, one file per pass.
type Writer struct {
	dir string
}

func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "report: mkdir")
	}
	return &Writer{dir: dir}, nil
}

// WriteRun renders a scrape run summary and returns the report path.
func (w *Writer) WriteRun(sum *engine.RunSummary) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Scrape run %s\n", sum.RunID)
	fmt.Fprintf(&b, "League:    %s\n", sum.League)
	fmt.Fprintf(&b, "Started:   %s\n", sum.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "Finished:  %s\n", sum.Finished.Format(time.RFC3339))
	fmt.Fprintf(&b, "Seasons:   %d total, %d processed, %d skipped, %d failed\n",
		sum.Total, sum.Processed, sum.Skipped, len(sum.Failed))
	fmt.Fprintf(&b, "Rows:      %d merged, %d duplicates dropped, %d row issues\n",
		sum.RowsMerged, sum.Duplicates, sum.RowIssues)

	if len(sum.Failed) > 0 {
		b.WriteString("\nFailed seasons:\n")
		for _, f := range sum.Failed {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	if len(sum.Datasets) > 0 {
		b.WriteString("\nRows merged per dataset:\n")
		for _, name := range sortedKeys(sum.Datasets) {
			fmt.Fprintf(&b, "  %-40s %d\n", name, sum.Datasets[name])
		}
	}

	return w.write("scrape_"+sum.RunID+".txt", b.String())
}

// WriteCleaning renders the normalizer summaries for one clean pass.
func (w *Writer) WriteCleaning(sums []*clean.Summary) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Cleaning pass, %d datasets\n\n", len(sums))
	for _, s := range sums {
		fmt.Fprintf(&b, "%s: %d -> %d rows", s.Dataset, s.RowsBefore, s.RowsAfter)
		if !s.Changed() && len(s.CoercionFailures) == 0 {
			b.WriteString(", no changes\n")
			continue
		}
		b.WriteString("\n")
		writeCount(&b, "empty rows removed", s.EmptyRowsRemoved)
		writeCount(&b, "duplicates removed", s.DuplicatesRemoved)
		writeCount(&b, "glyph artifacts repaired", s.ArtifactsRepaired)
		writeCount(&b, "trailing markers stripped", s.QuestionsStripped)
		writeCount(&b, "placeholders nulled", s.PlaceholdersNulled)
		writeCount(&b, "asterisks stripped", s.AsterisksStripped)
		writeCount(&b, "decimals repaired", s.DecimalsRepaired)
		writeCount(&b, "values coerced", s.ValuesCoerced)
		writeCount(&b, "sentinel values nulled", s.SentinelRepairs)
		for _, f := range s.CoercionFailures {
			fmt.Fprintf(&b, "  row %d column %s: %q left as text\n", f.Row, f.Column, f.Value)
		}
	}
	return w.write(stamped("clean"), b.String())
}

// WriteMigration renders the database load results.
func (w *Writer) WriteMigration(results []*store.LoadResult) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Database migration, %d tables\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&b, "%s: %d rows, indexes on %s\n", r.Table, r.Rows, strings.Join(r.Indexes, ", "))
		if len(r.NullCounts) > 0 {
			b.WriteString("  nulls:")
			for _, col := range sortedKeys(r.NullCounts) {
				fmt.Fprintf(&b, " %s=%d", col, r.NullCounts[col])
			}
			b.WriteString("\n")
		}
		for _, v := range r.Validations {
			fmt.Fprintf(&b, "  check: %s\n", v)
		}
	}
	return w.write(stamped("migrate"), b.String())
}

func (w *Writer) write(name, content string) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", eris.Wrapf(err, "report: write %s", name)
	}
	return path, nil
}

func writeCount(b *strings.Builder, label string, n int) {
	if n > 0 {
		fmt.Fprintf(b, "  %s: %d\n", label, n)
	}
}

func stamped(pass string) string {
	return pass + "_" + time.Now().Format("20060102_150405") + ".txt"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
