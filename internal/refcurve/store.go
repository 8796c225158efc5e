package refcurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juplab/growthref/internal/model"
)

// P10Column is the percentile column used as the growth-restriction threshold.
const P10Column = "per_10"

// Key addresses one boundary table: reference system, sex and growth variable.
type Key struct {
	System System
	Sex    model.Sex
	Var    string // GrowthVar.FileKey
}

// PercentileKey addresses one percentile table. Percentile tables exist for
// the Fenton system only, so the system is implicit.
type PercentileKey struct {
	Sex model.Sex
	Var string
}

// BoundaryTable maps age-in-days to one boundary value per standard-deviation
// label. Values are non-decreasing across the label order at every day; this
// is checked at load time.
type BoundaryTable struct {
	System System
	Sex    model.Sex
	Var    string
	Labels []string

	rows map[int][]float64
}

// Bounds returns the boundary values at the given day in label order.
func (t *BoundaryTable) Bounds(day int) ([]float64, bool) {
	b, ok := t.rows[day]
	return b, ok
}

// Covers reports whether the table has an entry for the given day.
func (t *BoundaryTable) Covers(day int) bool {
	_, ok := t.rows[day]
	return ok
}

// Days returns the number of days the table covers.
func (t *BoundaryTable) Days() int {
	return len(t.rows)
}

// PercentileTable maps age-in-days to one value per percentile column.
type PercentileTable struct {
	Sex     model.Sex
	Var     string
	Columns []string

	rows map[int][]float64
}

// Value returns the percentile value for the given day and column.
func (t *PercentileTable) Value(day int, column string) (float64, bool) {
	row, ok := t.rows[day]
	if !ok {
		return 0, false
	}
	for i, c := range t.Columns {
		if c == column {
			return row[i], true
		}
	}
	return 0, false
}

// Store indexes the loaded reference curve tables. It is read-only after
// Load and safe to share.
type Store struct {
	boundaries  map[Key]*BoundaryTable
	percentiles map[PercentileKey]*PercentileTable
}

// Boundary returns the boundary table for the given system, sex and variable.
func (s *Store) Boundary(sys System, sex model.Sex, v model.GrowthVar) (*BoundaryTable, bool) {
	t, ok := s.boundaries[Key{System: sys, Sex: sex, Var: v.FileKey}]
	return t, ok
}

// Percentile returns the Fenton percentile table for the given sex and variable.
func (s *Store) Percentile(sex model.Sex, v model.GrowthVar) (*PercentileTable, bool) {
	t, ok := s.percentiles[PercentileKey{Sex: sex, Var: v.FileKey}]
	return t, ok
}

// sexDirs maps sexes to the directory name fragment used by the curve files.
var sexDirs = map[model.Sex]string{
	model.SexMale:   "ninos",
	model.SexFemale: "ninas",
}

// Load reads every expected boundary and percentile file under dir:
//
//	<dir>/curvas_desviaciones_<system>/z_scores_<var>_<sex>_<system>.csv
//	<dir>/curvas_percentiles_fenton/percentiles_<var>_<sex>_fenton.csv
//
// Any absent or malformed file fails the whole load.
func Load(dir string) (*Store, error) {
	s := &Store{
		boundaries:  make(map[Key]*BoundaryTable),
		percentiles: make(map[PercentileKey]*PercentileTable),
	}

	for _, v := range model.AllGrowthVars {
		for sex, sexDir := range sexDirs {
			for _, sys := range Systems {
				path := filepath.Join(dir,
					fmt.Sprintf("curvas_desviaciones_%s", sys),
					fmt.Sprintf("z_scores_%s_%s_%s.csv", v.FileKey, sexDir, sys))
				t, err := loadBoundaryTable(path, sys, sex, v.FileKey)
				if err != nil {
					return nil, err
				}
				s.boundaries[Key{System: sys, Sex: sex, Var: v.FileKey}] = t
			}

			path := filepath.Join(dir,
				"curvas_percentiles_fenton",
				fmt.Sprintf("percentiles_%s_%s_fenton.csv", v.FileKey, sexDir))
			t, err := loadPercentileTable(path, sex, v.FileKey)
			if err != nil {
				return nil, err
			}
			s.percentiles[PercentileKey{Sex: sex, Var: v.FileKey}] = t
		}
	}

	return s, nil
}

func loadBoundaryTable(path string, sys System, sex model.Sex, varKey string) (*BoundaryTable, error) {
	labels := Labels(sys)

	header, rows, err := readDayTable(path)
	if err != nil {
		return nil, err
	}
	if len(header) != len(labels) {
		return nil, fmt.Errorf("%s: expected columns %v, got %v", path, labels, header)
	}
	for i, l := range labels {
		if header[i] != l {
			return nil, fmt.Errorf("%s: expected columns %v, got %v", path, labels, header)
		}
	}

	// Boundary values must not decrease across the label order at any day.
	for day, vals := range rows {
		for i := 1; i < len(vals); i++ {
			if vals[i] < vals[i-1] {
				return nil, fmt.Errorf("%s: boundaries not monotonic at day %d (%s=%g > %s=%g)",
					path, day, labels[i-1], vals[i-1], labels[i], vals[i])
			}
		}
	}

	return &BoundaryTable{System: sys, Sex: sex, Var: varKey, Labels: labels, rows: rows}, nil
}

func loadPercentileTable(path string, sex model.Sex, varKey string) (*PercentileTable, error) {
	header, rows, err := readDayTable(path)
	if err != nil {
		return nil, err
	}

	hasP10 := false
	for _, c := range header {
		if c == P10Column {
			hasP10 = true
			break
		}
	}
	if !hasP10 {
		return nil, fmt.Errorf("%s: missing required column %q", path, P10Column)
	}

	return &PercentileTable{Sex: sex, Var: varKey, Columns: header, rows: rows}, nil
}

// readDayTable parses a CSV whose first column is the integer day key and
// whose remaining columns are numeric values. It returns the value column
// names and the day-keyed rows.
func readDayTable(path string) ([]string, map[int][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open curve file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("%s: header needs a day column and at least one value column", path)
	}

	rows := make(map[int][]float64)
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: read row %d: %w", path, line, err)
		}
		line++

		day, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: row %d: bad day %q: %w", path, line, record[0], err)
		}
		vals := make([]float64, len(record)-1)
		for i, raw := range record[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d: bad value %q: %w", path, line, raw, err)
			}
			vals[i] = v
		}
		rows[day] = vals
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}

	return header[1:], rows, nil
}
