package clean

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jackie3981/baseball-scrapping/internal/model"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

// Correction is one season-specific repair, loaded from the corrections
// file. Two kinds exist: "relocate" moves matching records between datasets
// (a statistic captured under the wrong record kind for one season), and
// "scale" divides matching numeric values (a dropped decimal point).
// Future corrections are additions to the data file, not code changes.
type Correction struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"`
	Dataset     string          `yaml:"dataset,omitempty"`
	FromDataset string          `yaml:"from_dataset,omitempty"`
	ToDataset   string          `yaml:"to_dataset,omitempty"`
	Match       CorrectionMatch `yaml:"match"`
	Divisor     float64         `yaml:"divisor,omitempty"`
}

// CorrectionMatch selects the rows a correction applies to. All set fields
// must match.
type CorrectionMatch struct {
	Year       int      `yaml:"year,omitempty"`
	League     string   `yaml:"league,omitempty"`
	Statistic  string   `yaml:"statistic,omitempty"`
	Statistics []string `yaml:"statistics,omitempty"`
	ValueGT    *float64 `yaml:"value_gt,omitempty"`
}

// CorrectionsFile is the YAML document shape.
type CorrectionsFile struct {
	Corrections []Correction `yaml:"corrections"`
}

// LoadCorrections reads the correction table from a YAML file.
func LoadCorrections(path string) ([]Correction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "clean: read corrections %s", path)
	}
	var file CorrectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "clean: parse corrections %s", path)
	}
	return file.Corrections, nil
}

// CorrectionResult reports what one correction touched.
type CorrectionResult struct {
	Name string
	Rows int
}

// ApplyCorrections runs every correction against the sink, backing up each
// dataset it is about to rewrite into backupDir.
func ApplyCorrections(s *sink.Sink, corrections []Correction, backupDir string) ([]CorrectionResult, error) {
	var results []CorrectionResult
	for _, c := range corrections {
		var (
			n   int
			err error
		)
		switch c.Kind {
		case "relocate":
			n, err = relocate(s, c, backupDir)
		case "scale":
			n, err = scale(s, c, backupDir)
		default:
			err = eris.Errorf("clean: unknown correction kind %q", c.Kind)
		}
		if err != nil {
			return results, eris.Wrapf(err, "clean: correction %s", c.Name)
		}
		zap.L().Info("correction applied",
			zap.String("correction", c.Name),
			zap.Int("rows", n),
		)
		results = append(results, CorrectionResult{Name: c.Name, Rows: n})
	}
	return results, nil
}

// relocate moves matching rows from one dataset to another and dedups the
// destination.
func relocate(s *sink.Sink, c Correction, backupDir string) (int, error) {
	src, err := s.Load(c.FromDataset)
	if err != nil {
		return 0, err
	}
	if src == nil {
		return 0, eris.Errorf("dataset %s not found", c.FromDataset)
	}
	dst, err := s.Load(c.ToDataset)
	if err != nil {
		return 0, err
	}
	if dst == nil {
		dst = &sink.Dataset{Name: c.ToDataset, Columns: append([]string(nil), src.Columns...)}
	}

	var moved, kept [][]string
	for _, row := range src.Rows {
		if c.Match.matches(src, row) {
			moved = append(moved, row)
		} else {
			kept = append(kept, row)
		}
	}
	if len(moved) == 0 {
		return 0, nil
	}

	if err := backup(s, src, backupDir); err != nil {
		return 0, err
	}
	if err := backup(s, dst, backupDir); err != nil {
		return 0, err
	}

	srcCols := src.Columns
	src.Rows = kept
	for _, row := range moved {
		dst.Rows = append(dst.Rows, alignRow(row, srcCols, dst))
	}
	dst.Dedup()

	if err := s.Write(src); err != nil {
		return 0, err
	}
	if err := s.Write(dst); err != nil {
		return 0, err
	}
	return len(moved), nil
}

// scale divides matching values by the divisor.
func scale(s *sink.Sink, c Correction, backupDir string) (int, error) {
	if c.Divisor == 0 {
		return 0, eris.New("scale correction needs a divisor")
	}
	ds, err := s.Load(c.Dataset)
	if err != nil {
		return 0, err
	}
	if ds == nil {
		return 0, eris.Errorf("dataset %s not found", c.Dataset)
	}

	valueIdx := -1
	for i, col := range ds.Columns {
		if col == model.ColValue {
			valueIdx = i
		}
	}
	if valueIdx < 0 {
		return 0, eris.Errorf("dataset %s has no %s column", c.Dataset, model.ColValue)
	}

	n := 0
	for _, row := range ds.Rows {
		if !c.Match.matches(ds, row) {
			continue
		}
		v, err := strconv.ParseFloat(row[valueIdx], 64)
		if err != nil {
			continue
		}
		row[valueIdx] = strconv.FormatFloat(v/c.Divisor, 'f', -1, 64)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := backup(s, ds, backupDir); err != nil {
		return 0, err
	}
	return n, s.Write(ds)
}

// matches checks every set field of the match against a row.
func (m CorrectionMatch) matches(ds *sink.Dataset, row []string) bool {
	if m.Year != 0 {
		if v, ok := getCol(ds, row, model.ColYear); !ok || v != strconv.Itoa(m.Year) {
			return false
		}
	}
	if m.League != "" {
		if v, ok := getCol(ds, row, model.ColLeague); !ok || v != m.League {
			return false
		}
	}
	stat, _ := getCol(ds, row, model.ColStatistic)
	if m.Statistic != "" && stat != m.Statistic {
		return false
	}
	if len(m.Statistics) > 0 {
		found := false
		for _, s := range m.Statistics {
			if stat == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if m.ValueGT != nil {
		v, ok := getCol(ds, row, model.ColValue)
		if !ok {
			return false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= *m.ValueGT {
			return false
		}
	}
	return true
}

// alignRow reorders a source row into the destination's column order,
// extending the destination header when the source has extra columns.
func alignRow(row []string, srcCols []string, dst *sink.Dataset) []string {
	r := model.Row{Columns: srcCols, Values: row}
	for _, col := range srcCols {
		if hasCol(dst, col) {
			continue
		}
		dst.Columns = append(dst.Columns, col)
		for i := range dst.Rows {
			dst.Rows[i] = append(dst.Rows[i], "")
		}
	}
	out := make([]string, len(dst.Columns))
	for i, col := range dst.Columns {
		if v, ok := r.Get(col); ok {
			out[i] = v
		}
	}
	return out
}

func hasCol(ds *sink.Dataset, name string) bool {
	for _, c := range ds.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// backup copies a dataset file aside before it is rewritten.
func backup(s *sink.Sink, ds *sink.Dataset, backupDir string) error {
	if backupDir == "" {
		return nil
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return eris.Wrapf(err, "clean: create backup dir %s", backupDir)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), ds.Name+".csv"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "clean: read %s for backup", ds.Name)
	}
	stamp := time.Now().UTC().Format("20060102_150405")
	out := filepath.Join(backupDir, ds.Name+"_backup_"+stamp+".csv")
	return eris.Wrapf(os.WriteFile(out, data, 0o644), "clean: write backup %s", out)
}
