// Package curvegen writes a synthetic but structurally faithful reference
// curve directory: linear z-score curves per system, sex and variable plus
// Fenton percentile tables. mkfixture and the tests share it so expected
// values can be computed from Base and Spread instead of hard-coded.
package curvegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
)

// Day ranges covered by the generated tables. Fenton covers the preterm
// range, WHO picks up where Fenton ends.
const (
	FentonMinDay = 154
	FentonMaxDay = 349
	WHOMinDay    = 350
	WHOMaxDay    = 700
)

// FemaleShift is the z offset applied to the girls' tables.
const FemaleShift = -0.2

// P10Z is the z value the generated per_10 column sits at.
const P10Z = -1.28

// Base gives the generated median value for a variable at a corrected age.
func Base(varKey string, day int) float64 {
	switch varKey {
	case "peso":
		return 2800 + float64(day-259)*20
	case "talla":
		return 47 + float64(day-259)*0.1
	default: // pc
		return 33 + float64(day-259)*0.08
	}
}

// Spread gives the generated per-standard-deviation spread for a variable.
func Spread(varKey string) float64 {
	switch varKey {
	case "peso":
		return 450
	case "talla":
		return 2
	default:
		return 1.5
	}
}

// WriteDir writes the full curve directory layout under dir.
func WriteDir(dir string) error {
	for _, v := range model.AllGrowthVars {
		for _, sexDir := range []string{"ninos", "ninas"} {
			shift := 0.0
			if sexDir == "ninas" {
				shift = FemaleShift
			}

			for _, sys := range refcurve.Systems {
				minDay, maxDay := FentonMinDay, FentonMaxDay
				if sys == refcurve.WHO {
					minDay, maxDay = WHOMinDay, WHOMaxDay
				}
				labels := refcurve.Labels(sys)
				offset := (len(labels) - 1) / 2

				var b strings.Builder
				b.WriteString("dias," + strings.Join(labels, ",") + "\n")
				for day := minDay; day <= maxDay; day++ {
					b.WriteString(fmt.Sprintf("%d", day))
					for i := range labels {
						z := float64(i-offset) + shift
						b.WriteString(fmt.Sprintf(",%.4f", Base(v.FileKey, day)+z*Spread(v.FileKey)))
					}
					b.WriteString("\n")
				}

				path := filepath.Join(dir,
					fmt.Sprintf("curvas_desviaciones_%s", sys),
					fmt.Sprintf("z_scores_%s_%s_%s.csv", v.FileKey, sexDir, sys))
				if err := writeFile(path, b.String()); err != nil {
					return err
				}
			}

			percentiles := []struct {
				name string
				z    float64
			}{{"per_3", -1.88}, {"per_10", P10Z}, {"per_50", 0}, {"per_90", 1.28}, {"per_97", 1.88}}

			var b strings.Builder
			b.WriteString("dias")
			for _, p := range percentiles {
				b.WriteString("," + p.name)
			}
			b.WriteString("\n")
			for day := FentonMinDay; day <= FentonMaxDay; day++ {
				b.WriteString(fmt.Sprintf("%d", day))
				for _, p := range percentiles {
					b.WriteString(fmt.Sprintf(",%.4f", Base(v.FileKey, day)+(p.z+shift)*Spread(v.FileKey)))
				}
				b.WriteString("\n")
			}

			path := filepath.Join(dir,
				"curvas_percentiles_fenton",
				fmt.Sprintf("percentiles_%s_%s_fenton.csv", v.FileKey, sexDir))
			if err := writeFile(path, b.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
