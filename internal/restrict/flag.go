package restrict

import (
	"fmt"

	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
)

// Visit indices the flagger accepts: the birth measurement flags
// intrauterine restriction, the first follow-up flags extrauterine.
const (
	BirthVisit    = 0
	FirstFollowUp = 1
)

// Kind returns the flag-set name for a visit index.
func Kind(visitIndex int) string {
	if visitIndex == FirstFollowUp {
		return "RCEU"
	}
	return "RCIU"
}

// Flag sets growth-restriction flags in place on patients from their
// measurement at the given visit index. A patient is flagged for a variable
// when the measured value is strictly below the Fenton 10th percentile at
// the exact corrected age in days. Every variable and both sexes are
// covered on a single pass. Patients with no measurement at the visit, or
// ages with no reference entry, are left unflagged.
//
// Returns the number of flags set.
func Flag(patients []model.Patient, ms []model.Measurement, store *refcurve.Store, visitIndex int) (int, error) {
	if visitIndex != BirthVisit && visitIndex != FirstFollowUp {
		return 0, fmt.Errorf("flag: unsupported visit index %d", visitIndex)
	}

	visits := make(map[string]model.Measurement, len(patients))
	for _, m := range ms {
		if m.Seq == visitIndex {
			visits[m.PatientID] = m
		}
	}

	kind := Kind(visitIndex)
	flagged := 0
	for i := range patients {
		p := &patients[i]
		if p.Sex != model.SexMale && p.Sex != model.SexFemale {
			continue
		}
		m, ok := visits[p.ID]
		if !ok {
			continue
		}

		flags := p.Restriction(kind)
		for _, v := range model.AllGrowthVars {
			pt, ok := store.Percentile(p.Sex, v)
			if !ok {
				continue
			}
			p10, ok := pt.Value(m.AgeDays, refcurve.P10Column)
			if !ok {
				continue
			}
			if m.Value(v) < p10 {
				flags.Set(v, true)
				flagged++
			}
		}
	}
	return flagged, nil
}
