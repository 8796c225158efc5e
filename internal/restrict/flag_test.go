package restrict_test

import (
	"testing"

	"github.com/juplab/growthref/internal/curvegen"
	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
	"github.com/juplab/growthref/internal/restrict"
)

func loadStore(t *testing.T) *refcurve.Store {
	t.Helper()
	dir := t.TempDir()
	if err := curvegen.WriteDir(dir); err != nil {
		t.Fatalf("write curves: %v", err)
	}
	s, err := refcurve.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func p10(varKey string, day int, sex model.Sex) float64 {
	shift := 0.0
	if sex == model.SexFemale {
		shift = curvegen.FemaleShift
	}
	return curvegen.Base(varKey, day) + (curvegen.P10Z+shift)*curvegen.Spread(varKey)
}

func TestFlag_StrictlyBelowP10(t *testing.T) {
	s := loadStore(t)
	threshold := p10("peso", 259, model.SexMale)

	patients := []model.Patient{
		{ID: "below", Sex: model.SexMale},
		{ID: "at", Sex: model.SexMale},
		{ID: "above", Sex: model.SexMale},
	}
	ms := []model.Measurement{
		{PatientID: "below", Seq: 0, AgeDays: 259, Peso: threshold - 1, Talla: 47, PC: 33},
		{PatientID: "at", Seq: 0, AgeDays: 259, Peso: threshold, Talla: 47, PC: 33},
		{PatientID: "above", Seq: 0, AgeDays: 259, Peso: threshold + 1, Talla: 47, PC: 33},
	}

	if _, err := restrict.Flag(patients, ms, s, restrict.BirthVisit); err != nil {
		t.Fatalf("Flag: %v", err)
	}

	if !patients[0].RCIU.Peso {
		t.Error("weight below P10 must flag RCIU")
	}
	if patients[1].RCIU.Peso {
		t.Error("weight exactly at P10 must not flag")
	}
	if patients[2].RCIU.Peso {
		t.Error("weight above P10 must not flag")
	}
}

func TestFlag_CoversBothSexes(t *testing.T) {
	s := loadStore(t)

	patients := []model.Patient{
		{ID: "boy", Sex: model.SexMale},
		{ID: "girl", Sex: model.SexFemale},
	}
	ms := []model.Measurement{
		{PatientID: "boy", Seq: 0, AgeDays: 259,
			Peso: p10("peso", 259, model.SexMale) - 1, Talla: 47, PC: 33},
		{PatientID: "girl", Seq: 0, AgeDays: 259,
			Peso: p10("peso", 259, model.SexFemale) - 1, Talla: 47, PC: 33},
	}

	n, err := restrict.Flag(patients, ms, s, restrict.BirthVisit)
	if err != nil {
		t.Fatalf("Flag: %v", err)
	}
	if !patients[0].RCIU.Peso || !patients[1].RCIU.Peso {
		t.Error("both sexes must be flagged on one pass")
	}
	if n < 2 {
		t.Errorf("expected at least 2 flags, got %d", n)
	}
}

func TestFlag_FollowUpSetsRCEU(t *testing.T) {
	s := loadStore(t)

	patients := []model.Patient{{ID: "A", Sex: model.SexMale}}
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 210, Peso: p10("peso", 210, model.SexMale) + 50, Talla: 46, PC: 32},
		{PatientID: "A", Seq: 1, AgeDays: 240, Peso: p10("peso", 240, model.SexMale) - 10, Talla: 47, PC: 33},
	}

	if _, err := restrict.Flag(patients, ms, s, restrict.FirstFollowUp); err != nil {
		t.Fatalf("Flag: %v", err)
	}
	if patients[0].RCIU.Peso {
		t.Error("follow-up pass must not touch RCIU flags")
	}
	if !patients[0].RCEU.Peso {
		t.Error("follow-up weight below P10 must flag RCEU")
	}
}

func TestFlag_PerVariableFlags(t *testing.T) {
	s := loadStore(t)

	patients := []model.Patient{{ID: "A", Sex: model.SexFemale}}
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 230,
			Peso:  p10("peso", 230, model.SexFemale) - 1,
			Talla: p10("talla", 230, model.SexFemale) + 1,
			PC:    p10("pc", 230, model.SexFemale) - 0.1},
	}

	if _, err := restrict.Flag(patients, ms, s, restrict.BirthVisit); err != nil {
		t.Fatalf("Flag: %v", err)
	}
	got := patients[0].RCIU
	if !got.Peso || got.Talla || !got.PC {
		t.Errorf("flags %+v, want peso and pc only", got)
	}
}

func TestFlag_NoVisitOrNoReference(t *testing.T) {
	s := loadStore(t)

	patients := []model.Patient{
		{ID: "novisit", Sex: model.SexMale},
		{ID: "oldage", Sex: model.SexMale},
	}
	// Day 400 is past the percentile tables; nothing should flag.
	ms := []model.Measurement{
		{PatientID: "oldage", Seq: 0, AgeDays: 400, Peso: 1, Talla: 1, PC: 1},
	}

	n, err := restrict.Flag(patients, ms, s, restrict.BirthVisit)
	if err != nil {
		t.Fatalf("Flag: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no flags, got %d", n)
	}
	if patients[0].RCIU.Peso || patients[1].RCIU.Peso {
		t.Error("patients without a usable visit must stay unflagged")
	}
}

func TestFlag_BadVisitIndex(t *testing.T) {
	s := loadStore(t)
	if _, err := restrict.Flag(nil, nil, s, 2); err == nil {
		t.Fatal("expected error for unsupported visit index")
	}
}
