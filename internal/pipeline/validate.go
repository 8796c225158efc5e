package pipeline

import (
	"fmt"

	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/report"
)

// MinCorrectedAgeDays is the earliest corrected age the reference curves
// support; younger measurements are excluded.
const MinCorrectedAgeDays = 171

// validateCohort applies the validation filters, recording every excluded
// record in the report: patients with an undefined sex or missing
// hospitalization days; measurements with no surviving patient, a null
// required field or a corrected age below the minimum; and patients without
// exactly one birth row. Birth values are copied onto the surviving patients.
func validateCohort(patientRows []model.PatientRow, mRows []model.MeasurementRow, rep *report.Builder) ([]model.Patient, []model.Measurement) {
	patients := validatePatients(patientRows, rep)
	measurements := validateMeasurements(mRows, patients, rep)
	return requireBirthRow(patients, measurements, rep)
}

func validatePatients(rows []model.PatientRow, rep *report.Builder) []model.Patient {
	var badSex, badDays []string
	patients := make([]model.Patient, 0, len(rows))

	for i := range rows {
		r := &rows[i]
		sex := model.Sex(r.Sex)
		if sex != model.SexMale && sex != model.SexFemale {
			badSex = append(badSex, r.PatientID)
			continue
		}
		if r.HospitalDays == nil || *r.HospitalDays < 0 {
			badDays = append(badDays, r.PatientID)
			continue
		}
		patients = append(patients, model.Patient{
			Row:          *r,
			ID:           r.PatientID,
			Sex:          sex,
			HospitalDays: *r.HospitalDays,
		})
	}

	rep.Add("pacientes", "sex is not male or female", badSex)
	rep.Add("pacientes", "null or negative hospitalization days", badDays)
	return patients
}

func validateMeasurements(rows []model.MeasurementRow, patients []model.Patient, rep *report.Builder) []model.Measurement {
	known := make(map[string]bool, len(patients))
	for i := range patients {
		known[patients[i].ID] = true
	}

	// Independent masks, reported per cause like the exclusion report
	// expects; a row can appear under several causes.
	causes := []struct {
		reason string
		bad    func(*model.MeasurementRow) bool
	}{
		{"no patient data", func(m *model.MeasurementRow) bool { return !known[m.PatientID] }},
		{fmt.Sprintf("corrected age below %d days", MinCorrectedAgeDays),
			func(m *model.MeasurementRow) bool { return m.AgeDays == nil || *m.AgeDays < MinCorrectedAgeDays }},
		{"null corrected age", func(m *model.MeasurementRow) bool { return m.AgeDays == nil }},
		{"null weight", func(m *model.MeasurementRow) bool { return m.Peso == nil }},
		{"null head circumference", func(m *model.MeasurementRow) bool { return m.PC == nil }},
		{"null length", func(m *model.MeasurementRow) bool { return m.Talla == nil }},
	}

	keep := make([]bool, len(rows))
	for i := range keep {
		keep[i] = true
	}
	for _, c := range causes {
		var ids []string
		for i := range rows {
			if c.bad(&rows[i]) {
				ids = append(ids, measurementID(&rows[i]))
				keep[i] = false
			}
		}
		rep.Add("antropometrias", c.reason, ids)
	}

	out := make([]model.Measurement, 0, len(rows))
	for i := range rows {
		if !keep[i] {
			continue
		}
		r := &rows[i]
		out = append(out, model.Measurement{
			PatientID: r.PatientID,
			Seq:       int(r.Seq),
			AgeDays:   int(*r.AgeDays),
			Peso:      *r.Peso,
			Talla:     *r.Talla,
			PC:        *r.PC,
		})
	}
	return out
}

// requireBirthRow drops patients without exactly one birth measurement
// (AC_Num 0) along with their measurements, and copies birth values onto
// the kept patients.
func requireBirthRow(patients []model.Patient, ms []model.Measurement, rep *report.Builder) ([]model.Patient, []model.Measurement) {
	births := make(map[string][]model.Measurement)
	for _, m := range ms {
		if m.Seq == 0 {
			births[m.PatientID] = append(births[m.PatientID], m)
		}
	}

	var excluded []string
	keptPatients := make([]model.Patient, 0, len(patients))
	kept := make(map[string]bool, len(patients))
	for i := range patients {
		p := patients[i]
		rows := births[p.ID]
		if len(rows) != 1 {
			excluded = append(excluded, p.ID)
			continue
		}
		birth := rows[0]
		p.BirthAgeDays = birth.AgeDays
		p.BirthPeso = birth.Peso
		p.BirthTalla = birth.Talla
		p.BirthPC = birth.PC
		keptPatients = append(keptPatients, p)
		kept[p.ID] = true
	}
	rep.Add("pacientes", "missing or duplicate birth measurement", excluded)

	keptMs := make([]model.Measurement, 0, len(ms))
	for _, m := range ms {
		if kept[m.PatientID] {
			keptMs = append(keptMs, m)
		}
	}
	return keptPatients, keptMs
}

func measurementID(m *model.MeasurementRow) string {
	return fmt.Sprintf("%s#%d", m.PatientID, m.Seq)
}
