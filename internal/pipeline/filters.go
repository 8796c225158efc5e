package pipeline

import (
	"fmt"

	"github.com/juplab/growthref/internal/config"
	"github.com/juplab/growthref/internal/filter"
	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/report"
)

// applyCriteria builds a mask per configured filter, reports each filter's
// removals, folds the masks with AND and applies the result. Patient
// filters run first; rows of removed patients are dropped before the
// measurement filters run.
func applyCriteria(cr *config.Criteria, patients []model.Patient, rows []model.Annotated, rep *report.Builder) ([]model.Patient, []model.Annotated, error) {
	var pMasks []filter.Mask

	record := func(table, desc string, mask filter.Mask, ids []string) {
		var removed []string
		for i, keep := range mask {
			if !keep {
				removed = append(removed, ids[i])
			}
		}
		rep.Add(table, desc, removed)
	}

	patientIDs := make([]string, len(patients))
	for i := range patients {
		patientIDs[i] = patients[i].ID
	}

	if cr.SexMale != nil {
		mask, desc := filter.BySex(patients, *cr.SexMale)
		record("pacientes", desc, mask, patientIDs)
		pMasks = append(pMasks, mask)
	}
	if r := cr.BirthAgeWeeks; r != nil {
		mask, desc, err := filter.ByBirthAge(patients, r.Min, r.Max, r.IncludeOver40)
		if err != nil {
			return nil, nil, err
		}
		record("pacientes", desc, mask, patientIDs)
		pMasks = append(pMasks, mask)
	}
	if bv := cr.BirthValues; bv != nil {
		ranges := filter.BirthRanges{
			Peso:  filter.Range{Min: bv.Peso.Min, Max: bv.Peso.Max},
			Talla: filter.Range{Min: bv.Talla.Min, Max: bv.Talla.Max},
			PC:    filter.Range{Min: bv.PC.Min, Max: bv.PC.Max},
		}
		mask, desc, err := filter.ByBirthValues(patients, ranges)
		if err != nil {
			return nil, nil, err
		}
		record("pacientes", desc, mask, patientIDs)
		pMasks = append(pMasks, mask)
	}
	for _, rf := range []struct {
		kind string
		rc   *config.RestrictionCriteria
	}{{"RCIU", cr.RCIU}, {"RCEU", cr.RCEU}} {
		if rf.rc == nil {
			continue
		}
		mask, desc, err := filter.ByRestriction(patients, rf.kind, rf.rc.Vars, rf.rc.Include)
		if err != nil {
			return nil, nil, err
		}
		record("pacientes", desc, mask, patientIDs)
		pMasks = append(pMasks, mask)
	}
	if r := cr.HospitalDays; r != nil {
		mask, desc, err := filter.ByHospitalDays(patients, int64(r.Min), int64(r.Max))
		if err != nil {
			return nil, nil, err
		}
		record("pacientes", desc, mask, patientIDs)
		pMasks = append(pMasks, mask)
	}

	if len(pMasks) > 0 {
		combined := filter.And(pMasks...)
		keptPatients := make([]model.Patient, 0, combined.Count())
		kept := make(map[string]bool)
		for i, keep := range combined {
			if keep {
				keptPatients = append(keptPatients, patients[i])
				kept[patients[i].ID] = true
			}
		}
		patients = keptPatients

		keptRows := rows[:0]
		for _, row := range rows {
			if kept[row.PatientID] {
				keptRows = append(keptRows, row)
			}
		}
		rows = keptRows
	}

	var mMasks []filter.Mask
	rowIDs := make([]string, len(rows))
	for i := range rows {
		rowIDs[i] = fmt.Sprintf("%s#%d", rows[i].PatientID, rows[i].Seq)
	}

	if r := cr.MeasurementAgeWeeks; r != nil {
		mask, desc, err := filter.ByAge(rows, r.Min, r.Max)
		if err != nil {
			return nil, nil, err
		}
		record("antropometrias", desc, mask, rowIDs)
		mMasks = append(mMasks, mask)
	}
	// Iterate variables in canonical order; map order is not deterministic.
	for _, v := range model.AllGrowthVars {
		lr, ok := cr.BirthBands[v.Name]
		if !ok {
			continue
		}
		mask, desc, err := filter.ByBirthBand(rows, v, lr.Min, lr.Max)
		if err != nil {
			return nil, nil, err
		}
		record("antropometrias", desc, mask, rowIDs)
		mMasks = append(mMasks, mask)
	}
	if oc := cr.ExcludeOutliers; oc != nil {
		mask, desc, err := filter.ExcludeOutliers(rows, oc.Vars, oc.Directions)
		if err != nil {
			return nil, nil, err
		}
		record("antropometrias", desc, mask, rowIDs)
		mMasks = append(mMasks, mask)
	}

	if len(mMasks) > 0 {
		combined := filter.And(mMasks...)
		keptRows := make([]model.Annotated, 0, combined.Count())
		for i, keep := range combined {
			if keep {
				keptRows = append(keptRows, rows[i])
			}
		}
		rows = keptRows
	}

	return patients, rows, nil
}
