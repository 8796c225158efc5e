package interpolate

import "github.com/juplab/growthref/internal/model"

// Weekly densifies each patient's visit series to one row per calendar week.
//
// Visits are bucketed by week (ageDays/7, floored); multiple visits in the
// same week collapse to their mean. The series is then reindexed onto the
// full [minWeek, maxWeek] range and gap weeks are filled by linear
// interpolation between the nearest observed weeks. Nothing is extrapolated
// beyond the observed range. Output rows carry ageDays = week*7 and a dense
// 0-based sequence per patient. Patients are emitted in order of first
// appearance in the input, so the result is deterministic.
func Weekly(ms []model.Measurement) []model.Measurement {
	order := make([]string, 0)
	byPatient := make(map[string][]model.Measurement)
	for _, m := range ms {
		if _, ok := byPatient[m.PatientID]; !ok {
			order = append(order, m.PatientID)
		}
		byPatient[m.PatientID] = append(byPatient[m.PatientID], m)
	}

	var out []model.Measurement
	for _, id := range order {
		out = append(out, patientSeries(id, byPatient[id])...)
	}
	return out
}

// weekMean accumulates same-week visits.
type weekMean struct {
	n    int
	sums [3]float64
}

func patientSeries(id string, visits []model.Measurement) []model.Measurement {
	weeks := make(map[int]*weekMean)
	minWeek, maxWeek := 0, 0
	first := true

	for _, m := range visits {
		w := m.AgeDays / 7
		acc, ok := weeks[w]
		if !ok {
			acc = &weekMean{}
			weeks[w] = acc
		}
		acc.n++
		for i, v := range model.AllGrowthVars {
			acc.sums[i] += m.Value(v)
		}
		if first || w < minWeek {
			minWeek = w
		}
		if first || w > maxWeek {
			maxWeek = w
		}
		first = false
	}

	// Observed weeks in ascending order, with per-variable means.
	known := make([]int, 0, len(weeks))
	for w := minWeek; w <= maxWeek; w++ {
		if _, ok := weeks[w]; ok {
			known = append(known, w)
		}
	}

	out := make([]model.Measurement, 0, maxWeek-minWeek+1)
	seq := 0
	ki := 0 // index of the greatest known week <= current week
	for w := minWeek; w <= maxWeek; w++ {
		for ki+1 < len(known) && known[ki+1] <= w {
			ki++
		}

		row := model.Measurement{PatientID: id, Seq: seq, AgeDays: w * 7}
		if acc, ok := weeks[w]; ok {
			for i, v := range model.AllGrowthVars {
				row.SetValue(v, acc.sums[i]/float64(acc.n))
			}
		} else {
			w0, w1 := known[ki], known[ki+1]
			a0, a1 := weeks[w0], weeks[w1]
			frac := float64(w-w0) / float64(w1-w0)
			for i, v := range model.AllGrowthVars {
				v0 := a0.sums[i] / float64(a0.n)
				v1 := a1.sums[i] / float64(a1.n)
				row.SetValue(v, v0+(v1-v0)*frac)
			}
		}
		out = append(out, row)
		seq++
	}
	return out
}
