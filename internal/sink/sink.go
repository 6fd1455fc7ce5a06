// Package sink persists extracted records as one CSV dataset per
// (league, record kind), merging new rows with key-based dedup so that
// re-running extraction over the same seasons is idempotent.
package sink

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// Dataset is one tabular file in memory: a stable header plus rows whose
// values align with it. Empty string is the null representation.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// KeyColumns returns the subset of the conventional key columns present in
// this dataset, in fixed precedence order. Empty when none are present.
func (d *Dataset) KeyColumns() []string {
	var keys []string
	for _, k := range model.KeyColumns {
		if d.colIndex(k) >= 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *Dataset) colIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// rowKey builds the dedup key for a row from the named key columns.
func (d *Dataset) rowKey(row []string, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = row[d.colIndex(k)]
	}
	return strings.Join(parts, "\x1f")
}

// addColumns extends the header with any new columns, padding existing rows.
func (d *Dataset) addColumns(cols []string) {
	for _, c := range cols {
		if d.colIndex(c) >= 0 {
			continue
		}
		d.Columns = append(d.Columns, c)
		for i := range d.Rows {
			d.Rows[i] = append(d.Rows[i], "")
		}
	}
}

// appendRow adds a record row, aligning its values to the dataset header.
func (d *Dataset) appendRow(r model.Row) {
	d.addColumns(r.Columns)
	row := make([]string, len(d.Columns))
	for i, c := range r.Columns {
		row[d.colIndex(c)] = r.Values[i]
	}
	d.Rows = append(d.Rows, row)
}

// Dedup collapses rows sharing the same key-column tuple, keeping the first
// occurrence. Returns the number of rows removed. With no key columns the
// dataset is left untouched.
func (d *Dataset) Dedup() int {
	keys := d.KeyColumns()
	if len(keys) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(d.Rows))
	kept := d.Rows[:0]
	removed := 0
	for _, row := range d.Rows {
		k := d.rowKey(row, keys)
		if seen[k] {
			removed++
			continue
		}
		seen[k] = true
		kept = append(kept, row)
	}
	d.Rows = kept
	return removed
}

// MergeStats summarizes one merge call.
type MergeStats struct {
	Added      int
	Duplicates int
	// Appended marks the degraded no-key-columns path: rows were appended
	// without dedup, so duplicate-freedom is not guaranteed.
	Appended bool
}

// Sink stores datasets as CSV files under one directory.
type Sink struct {
	dir string
}

// New creates a sink rooted at dir, creating the directory if needed.
func New(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "sink: create dir %s", dir)
	}
	return &Sink{dir: dir}, nil
}

// Dir returns the sink's root directory.
func (s *Sink) Dir() string { return s.dir }

func (s *Sink) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Merge folds new record rows into the named dataset. A missing dataset is
// created verbatim, duplicates included; otherwise existing and new rows are
// concatenated and deduplicated by key columns, first occurrence winning.
// When no key columns are determinable the merge degrades to plain append
// and warns.
func (s *Sink) Merge(name string, rows []model.Row) (MergeStats, error) {
	if len(rows) == 0 {
		return MergeStats{}, nil
	}

	ds, err := s.Load(name)
	if err != nil {
		return MergeStats{}, err
	}
	created := ds == nil
	if created {
		ds = &Dataset{Name: name}
	}

	before := len(ds.Rows)
	for _, r := range rows {
		ds.appendRow(r)
	}

	stats := MergeStats{}
	switch {
	case created:
		stats.Added = len(ds.Rows)
	case len(ds.KeyColumns()) == 0:
		stats.Appended = true
		stats.Added = len(ds.Rows) - before
		zap.L().Warn("sink: no key columns, appending without dedup",
			zap.String("dataset", name),
			zap.Int("rows", stats.Added),
		)
	default:
		stats.Duplicates = ds.Dedup()
		stats.Added = len(ds.Rows) - before
	}

	if err := s.Write(ds); err != nil {
		return stats, err
	}
	return stats, nil
}

// Load reads a dataset, returning nil when the file does not exist.
func (s *Sink) Load(name string) (*Dataset, error) {
	f, err := os.Open(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sink: open %s", name)
	}
	defer f.Close()
	return readDataset(name, f)
}

func readDataset(name string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{Name: name}, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sink: read header of %s", name)
	}

	ds := &Dataset{Name: name, Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "sink: read row of %s", name)
		}
		// Tolerate ragged rows from interrupted appends.
		for len(record) < len(header) {
			record = append(record, "")
		}
		ds.Rows = append(ds.Rows, record[:len(header)])
	}
	return ds, nil
}

// Write replaces the dataset file atomically.
func (s *Sink) Write(ds *Dataset) error {
	tmp := s.path(ds.Name) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return eris.Wrapf(err, "sink: create %s", ds.Name)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		f.Close()
		return eris.Wrapf(err, "sink: write header of %s", ds.Name)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return eris.Wrapf(err, "sink: write row of %s", ds.Name)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return eris.Wrapf(err, "sink: flush %s", ds.Name)
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "sink: close %s", ds.Name)
	}
	if err := os.Rename(tmp, s.path(ds.Name)); err != nil {
		return eris.Wrapf(err, "sink: replace %s", ds.Name)
	}
	return nil
}

// List returns the dataset names present in the sink, sorted.
func (s *Sink) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "sink: list %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names, nil
}
