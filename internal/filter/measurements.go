package filter

import (
	"fmt"
	"strings"

	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
)

// NoBound is the sentinel label that leaves one side of a band range open.
const NoBound = "none"

// ByAge keeps measurements whose corrected age lies strictly inside the
// given week range.
func ByAge(ms []model.Annotated, minWeeks, maxWeeks int) (Mask, string, error) {
	if minWeeks > maxWeeks {
		return nil, "", fmt.Errorf("measurement age: min %d weeks > max %d weeks", minWeeks, maxWeeks)
	}
	mask := make(Mask, len(ms))
	for i := range ms {
		mask[i] = ms[i].AgeDays > minWeeks*7 && ms[i].AgeDays < maxWeeks*7
	}
	return mask, fmt.Sprintf("measurements between %d and %d weeks", minWeeks, maxWeeks), nil
}

// ByBirthBand keeps the rows of patients whose birth measurement for the
// given variable classified inside the label range. Labels resolve against
// the Fenton order; NoBound leaves a side open. An open minimum additionally
// admits births below the lowest curve (empty label) and negative outliers,
// an open maximum admits positive outliers. Eligibility is decided on the
// birth row (AC_Num 0) and applies to every row of the patient.
func ByBirthBand(ms []model.Annotated, v model.GrowthVar, minLabel, maxLabel string) (Mask, string, error) {
	labels := refcurve.Labels(refcurve.Fenton)

	lo, openMin, err := resolveLabel(labels, minLabel, 0)
	if err != nil {
		return nil, "", err
	}
	hi, openMax, err := resolveLabel(labels, maxLabel, len(labels)-1)
	if err != nil {
		return nil, "", err
	}
	if lo > hi {
		return nil, "", fmt.Errorf("birth band: min label %q above max label %q", minLabel, maxLabel)
	}

	allowed := make(map[string]bool, hi-lo+3)
	for _, l := range labels[lo : hi+1] {
		allowed[l] = true
	}
	if openMin {
		allowed[""] = true
		allowed[model.BandOutlierNeg] = true
	}
	if openMax {
		allowed[model.BandOutlierPos] = true
	}

	eligible := make(map[string]bool)
	for i := range ms {
		if ms[i].Seq != 0 {
			continue
		}
		if b := ms[i].Band(v); b != nil && allowed[b.Label] {
			eligible[ms[i].PatientID] = true
		}
	}

	mask := make(Mask, len(ms))
	for i := range ms {
		mask[i] = eligible[ms[i].PatientID]
	}
	desc := fmt.Sprintf("birth %s band between %s and %s", v.Name, minLabel, maxLabel)
	return mask, desc, nil
}

func resolveLabel(labels []string, label string, fallback int) (idx int, open bool, err error) {
	if label == NoBound || label == "" {
		return fallback, true, nil
	}
	for i, l := range labels {
		if l == label {
			return i, false, nil
		}
	}
	return 0, false, fmt.Errorf("birth band: unknown label %q", label)
}

// ExcludeOutliers drops measurements whose band for any of the listed
// variables fell in a requested outlier direction. The negative direction
// covers both the outlier_neg band and values below the lowest curve.
// Unannotated variables are left alone.
func ExcludeOutliers(ms []model.Annotated, vars []string, directions []string) (Mask, string, error) {
	selected := make([]model.GrowthVar, 0, len(vars))
	for _, name := range vars {
		v, ok := model.GrowthVarByName(name)
		if !ok {
			return nil, "", fmt.Errorf("outlier filter: unknown variable %q", name)
		}
		selected = append(selected, v)
	}
	var neg, pos bool
	for _, d := range directions {
		switch d {
		case model.BandOutlierNeg:
			neg = true
		case model.BandOutlierPos:
			pos = true
		default:
			return nil, "", fmt.Errorf("outlier filter: unknown direction %q", d)
		}
	}

	mask := make(Mask, len(ms))
	for i := range ms {
		keep := true
		for _, v := range selected {
			b := ms[i].Band(v)
			if b == nil {
				continue
			}
			if neg && (b.Label == "" || b.Label == model.BandOutlierNeg) {
				keep = false
			}
			if pos && b.Label == model.BandOutlierPos {
				keep = false
			}
		}
		mask[i] = keep
	}
	desc := fmt.Sprintf("exclude outliers (%s) in %s",
		strings.Join(directions, ", "), strings.Join(vars, ", "))
	return mask, desc, nil
}
