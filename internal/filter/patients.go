package filter

import (
	"fmt"
	"strings"

	"github.com/juplab/growthref/internal/model"
)

// BySex keeps patients of one sex: male when male is true, female otherwise.
func BySex(ps []model.Patient, male bool) (Mask, string) {
	want := model.SexFemale
	if male {
		want = model.SexMale
	}
	mask := make(Mask, len(ps))
	for i := range ps {
		mask[i] = ps[i].Sex == want
	}
	return mask, fmt.Sprintf("sex: %s", want)
}

// ByBirthAge keeps patients whose gestational age at birth falls in the
// given week range. With over40 set the upper bound is ignored and ages
// past 40 weeks stay included.
func ByBirthAge(ps []model.Patient, minWeeks, maxWeeks int, over40 bool) (Mask, string, error) {
	if !over40 && minWeeks > maxWeeks {
		return nil, "", fmt.Errorf("birth age: min %d weeks > max %d weeks", minWeeks, maxWeeks)
	}

	upper := fmt.Sprintf("%d weeks", maxWeeks)
	if over40 {
		upper = "more than 40 weeks"
	}
	desc := fmt.Sprintf("birth gestational age between %d weeks and %s", minWeeks, upper)

	mask := make(Mask, len(ps))
	for i := range ps {
		mask[i] = ps[i].BirthAgeDays >= minWeeks*7 &&
			(over40 || ps[i].BirthAgeDays <= maxWeeks*7)
	}
	return mask, desc, nil
}

// Range is an open interval over a measured value.
type Range struct {
	Min float64
	Max float64
}

// BirthRanges bounds the three birth measurements at once.
type BirthRanges struct {
	Peso  Range
	Talla Range
	PC    Range
}

func (r *BirthRanges) forVar(v model.GrowthVar) Range {
	switch v.Name {
	case "Peso":
		return r.Peso
	case "Talla":
		return r.Talla
	default:
		return r.PC
	}
}

// ByBirthValues keeps patients whose three birth measurements all fall
// strictly inside their configured ranges.
func ByBirthValues(ps []model.Patient, r BirthRanges) (Mask, string, error) {
	var lines []string
	for _, v := range model.AllGrowthVars {
		rng := r.forVar(v)
		if rng.Min >= rng.Max {
			return nil, "", fmt.Errorf("birth values: %s min %g >= max %g", v.Name, rng.Min, rng.Max)
		}
		lines = append(lines, fmt.Sprintf(" %s min %g %s and max %g %s", v.Name, rng.Min, v.Unit, rng.Max, v.Unit))
	}
	desc := "birth measurements:\n" + strings.Join(lines, "\n")

	mask := make(Mask, len(ps))
	for i := range ps {
		keep := true
		for _, v := range model.AllGrowthVars {
			rng := r.forVar(v)
			val := ps[i].BirthValue(v)
			keep = keep && val > rng.Min && val < rng.Max
		}
		mask[i] = keep
	}
	return mask, desc, nil
}

// ByRestriction keeps patients whose restriction flags match the requested
// values. kind is "RCIU" or "RCEU"; include maps each listed variable to
// whether flagged patients are kept (true) or excluded (false). Variables
// not listed stay unconstrained.
func ByRestriction(ps []model.Patient, kind string, vars []string, include map[string]bool) (Mask, string, error) {
	if kind != "RCIU" && kind != "RCEU" {
		return nil, "", fmt.Errorf("restriction filter: unknown kind %q", kind)
	}

	desc := kind + ":"
	selected := make([]model.GrowthVar, 0, len(vars))
	for _, name := range vars {
		v, ok := model.GrowthVarByName(name)
		if !ok {
			return nil, "", fmt.Errorf("restriction filter: unknown variable %q", name)
		}
		if _, ok := include[name]; !ok {
			return nil, "", fmt.Errorf("restriction filter: variable %q listed without include value", name)
		}
		selected = append(selected, v)
		with := "without"
		if include[name] {
			with = "with"
		}
		desc += fmt.Sprintf(" - keep patients %s %s in %s", with, kind, name)
	}

	mask := make(Mask, len(ps))
	for i := range ps {
		flags := ps[i].Restriction(kind)
		keep := true
		for _, v := range selected {
			keep = keep && flags.Get(v) == include[v.Name]
		}
		mask[i] = keep
	}
	return mask, desc, nil
}

// ByHospitalDays keeps patients hospitalized between min and max days inclusive.
func ByHospitalDays(ps []model.Patient, min, max int64) (Mask, string, error) {
	if min > max {
		return nil, "", fmt.Errorf("hospital days: min %d > max %d", min, max)
	}
	mask := make(Mask, len(ps))
	for i := range ps {
		mask[i] = ps[i].HospitalDays >= min && ps[i].HospitalDays <= max
	}
	return mask, fmt.Sprintf("hospitalization between %d and %d days", min, max), nil
}
