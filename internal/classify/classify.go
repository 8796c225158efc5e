package classify

import (
	"errors"
	"fmt"

	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
)

// ErrNoReferenceDay reports that a boundary table has no entry for the
// requested age.
var ErrNoReferenceDay = errors.New("no reference entry for day")

// Classify maps one measurement value at a corrected age onto its color band.
//
// The scan runs over the extended label sequence: a synthetic negative bound
// (lowest curve minus five times the first inter-label gap), the curve
// boundaries in label order, and a symmetric synthetic positive bound. The
// first boundary exceeding the value decides the band: its left neighbor is
// the band's lower label and the pair key selects the color. Values below
// the synthetic negative bound get the negative-outlier color with an empty
// label; values at or above the positive bound get the positive-outlier
// color with the outlier_pos label.
//
// The result depends only on (value, ageDays, table, colors).
func Classify(value float64, ageDays int, t *refcurve.BoundaryTable, colors refcurve.ColorMap) (model.Band, error) {
	bounds, ok := t.Bounds(ageDays)
	if !ok {
		return model.Band{}, fmt.Errorf("%w: day %d (%s %s)", ErrNoReferenceDay, ageDays, t.System, t.Var)
	}

	gap := bounds[1] - bounds[0]
	ext := make([]float64, 0, len(bounds)+2)
	ext = append(ext, bounds[0]-5*gap)
	ext = append(ext, bounds...)
	ext = append(ext, bounds[len(bounds)-1]+5*gap)

	labels := make([]string, 0, len(t.Labels)+2)
	labels = append(labels, model.BandOutlierNeg)
	labels = append(labels, t.Labels...)
	labels = append(labels, model.BandOutlierPos)

	for i, b := range ext {
		if value < b {
			if i == 0 {
				return model.Band{Color: colors[model.BandOutlierNeg]}, nil
			}
			key := labels[i-1] + "_" + labels[i]
			return model.Band{Color: colors[key], Label: labels[i-1]}, nil
		}
	}
	return model.Band{Color: colors[model.BandOutlierPos], Label: model.BandOutlierPos}, nil
}

// Annotate classifies every measurement for every growth variable, choosing
// Fenton when its table covers the visit's corrected age and WHO otherwise.
// Variables with no coverage in either system keep a nil band; the second
// return value counts rows with at least one uncovered variable.
func Annotate(ms []model.Measurement, sexes map[string]model.Sex, store *refcurve.Store) ([]model.Annotated, int) {
	out := make([]model.Annotated, len(ms))
	uncovered := 0

	for i := range ms {
		out[i] = model.Annotated{Measurement: ms[i]}
		sex, ok := sexes[ms[i].PatientID]
		if !ok {
			uncovered++
			continue
		}

		miss := false
		for _, v := range model.AllGrowthVars {
			t, colors, found := tableFor(store, sex, v, ms[i].AgeDays)
			if !found {
				miss = true
				continue
			}
			band, err := Classify(ms[i].Value(v), ms[i].AgeDays, t, colors)
			if err != nil {
				miss = true
				continue
			}
			out[i].SetBand(v, &band)
		}
		if miss {
			uncovered++
		}
	}

	return out, uncovered
}

// tableFor picks the boundary table covering the given day: Fenton first
// (preterm range), then WHO.
func tableFor(store *refcurve.Store, sex model.Sex, v model.GrowthVar, day int) (*refcurve.BoundaryTable, refcurve.ColorMap, bool) {
	for _, sys := range refcurve.Systems {
		if t, ok := store.Boundary(sys, sex, v); ok && t.Covers(day) {
			return t, refcurve.Colors(sys), true
		}
	}
	return nil, nil, false
}
