package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/juplab/growthref/internal/filter"
	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
)

// Config holds all runtime configuration for a growthref run.
type Config struct {
	CurvesDir        string
	PatientsFile     string
	MeasurementsFile string
	OutDir           string
	CriteriaFile     string
	LogFormat        string // "text" or "json"

	Criteria Criteria
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.CurvesDir == "" {
		return fmt.Errorf("--curves-dir is required")
	}
	if c.PatientsFile == "" {
		return fmt.Errorf("--patients is required")
	}
	if c.MeasurementsFile == "" {
		return fmt.Errorf("--measurements is required")
	}
	for _, path := range []string{c.PatientsFile, c.MeasurementsFile} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return nil
}

// ValidateWithOut additionally checks the output directory for annotate runs.
func (c *Config) ValidateWithOut() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutDir == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

// LoadCriteria reads the YAML criteria file, if configured, and validates it.
func (c *Config) LoadCriteria() error {
	if c.CriteriaFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.CriteriaFile)
	if err != nil {
		return fmt.Errorf("read criteria file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.Criteria); err != nil {
		return fmt.Errorf("parse criteria file: %w", err)
	}
	return c.Criteria.Validate()
}

// Criteria is the on-disk YAML structure describing which cohort filters to
// apply. Nil sections are skipped.
type Criteria struct {
	SexMale             *bool                 `yaml:"sex_male"`
	BirthAgeWeeks       *BirthAgeRange        `yaml:"birth_age_weeks"`
	BirthValues         *BirthValueRanges     `yaml:"birth_values"`
	RCIU                *RestrictionCriteria  `yaml:"rciu"`
	RCEU                *RestrictionCriteria  `yaml:"rceu"`
	HospitalDays        *IntRange             `yaml:"hospital_days"`
	MeasurementAgeWeeks *IntRange             `yaml:"measurement_age_weeks"`
	BirthBands          map[string]LabelRange `yaml:"birth_bands"`
	ExcludeOutliers     *OutlierCriteria      `yaml:"exclude_outliers"`
}

// BirthAgeRange bounds gestational age at birth, in weeks.
type BirthAgeRange struct {
	Min           int  `yaml:"min"`
	Max           int  `yaml:"max"`
	IncludeOver40 bool `yaml:"include_over_40"`
}

// ValueRange is an open interval over a measured value.
type ValueRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BirthValueRanges bounds the three birth measurements.
type BirthValueRanges struct {
	Peso  ValueRange `yaml:"peso"`
	Talla ValueRange `yaml:"talla"`
	PC    ValueRange `yaml:"pc"`
}

// RestrictionCriteria selects patients by restriction flag per variable.
type RestrictionCriteria struct {
	Vars    []string        `yaml:"vars"`
	Include map[string]bool `yaml:"include"`
}

// IntRange is an integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LabelRange bounds a standard-deviation band range; either side can be the
// "none" sentinel to stay open.
type LabelRange struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// Validate rejects internally inconsistent criteria before any mask is built.
func (cr *Criteria) Validate() error {
	if r := cr.BirthAgeWeeks; r != nil && !r.IncludeOver40 && r.Min > r.Max {
		return fmt.Errorf("birth_age_weeks: min %d > max %d", r.Min, r.Max)
	}
	if bv := cr.BirthValues; bv != nil {
		for _, pair := range []struct {
			name string
			r    ValueRange
		}{{"peso", bv.Peso}, {"talla", bv.Talla}, {"pc", bv.PC}} {
			if pair.r.Min >= pair.r.Max {
				return fmt.Errorf("birth_values.%s: min %g >= max %g", pair.name, pair.r.Min, pair.r.Max)
			}
		}
	}
	for kind, rc := range map[string]*RestrictionCriteria{"rciu": cr.RCIU, "rceu": cr.RCEU} {
		if rc == nil {
			continue
		}
		for _, name := range rc.Vars {
			if _, ok := model.GrowthVarByName(name); !ok {
				return fmt.Errorf("%s: unknown variable %q", kind, name)
			}
			if _, ok := rc.Include[name]; !ok {
				return fmt.Errorf("%s: variable %q listed without include value", kind, name)
			}
		}
	}
	if r := cr.HospitalDays; r != nil && r.Min > r.Max {
		return fmt.Errorf("hospital_days: min %d > max %d", r.Min, r.Max)
	}
	if r := cr.MeasurementAgeWeeks; r != nil && r.Min > r.Max {
		return fmt.Errorf("measurement_age_weeks: min %d > max %d", r.Min, r.Max)
	}
	for name, lr := range cr.BirthBands {
		if _, ok := model.GrowthVarByName(name); !ok {
			return fmt.Errorf("birth_bands: unknown variable %q", name)
		}
		for _, label := range []string{lr.Min, lr.Max} {
			if label == filter.NoBound || label == "" {
				continue
			}
			if !knownLabel(label) {
				return fmt.Errorf("birth_bands.%s: unknown label %q", name, label)
			}
		}
	}
	if oc := cr.ExcludeOutliers; oc != nil {
		for _, name := range oc.Vars {
			if _, ok := model.GrowthVarByName(name); !ok {
				return fmt.Errorf("exclude_outliers: unknown variable %q", name)
			}
		}
		for _, d := range oc.Directions {
			if d != model.BandOutlierNeg && d != model.BandOutlierPos {
				return fmt.Errorf("exclude_outliers: unknown direction %q", d)
			}
		}
	}
	return nil
}

// OutlierCriteria drops measurements classified as outliers.
type OutlierCriteria struct {
	Vars       []string `yaml:"vars"`
	Directions []string `yaml:"directions"`
}

func knownLabel(label string) bool {
	for _, l := range refcurve.Labels(refcurve.Fenton) {
		if l == label {
			return true
		}
	}
	return false
}
