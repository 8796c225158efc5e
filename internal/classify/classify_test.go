package classify_test

import (
	"errors"
	"testing"

	"github.com/juplab/growthref/internal/classify"
	"github.com/juplab/growthref/internal/curvegen"
	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
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

func malePesoTable(t *testing.T, s *refcurve.Store, sys refcurve.System) *refcurve.BoundaryTable {
	t.Helper()
	peso, _ := model.GrowthVarByName("Peso")
	bt, ok := s.Boundary(sys, model.SexMale, peso)
	if !ok {
		t.Fatalf("missing %s male peso table", sys)
	}
	return bt
}

func TestClassify_Bands(t *testing.T) {
	s := loadStore(t)
	bt := malePesoTable(t, s, refcurve.Fenton)
	colors := refcurve.Colors(refcurve.Fenton)

	base := curvegen.Base("peso", 259)
	spread := curvegen.Spread("peso")

	cases := []struct {
		name      string
		value     float64
		wantLabel string
		wantColor string
	}{
		// The synthetic outer bounds sit 5 gaps beyond the extreme curves.
		{"below synthetic bound", base - 3*spread - 5*spread - 1, "", "#ff7402"},
		{"negative outlier", base - 3*spread - 1, "outlier_neg", "#bf0036"},
		{"on median boundary", base, "des_0", "#08c754"},
		{"inside mid band", base + 1.5*spread, "des_1", "#0e7dc2"},
		{"positive outlier", base + 3*spread + 1, "des_3", "#bf0036"},
		{"above synthetic bound", base + 3*spread + 5*spread + 1, "outlier_pos", "#ff7402"},
	}

	for _, tc := range cases {
		band, err := classify.Classify(tc.value, 259, bt, colors)
		if err != nil {
			t.Fatalf("%s: Classify: %v", tc.name, err)
		}
		if band.Label != tc.wantLabel {
			t.Errorf("%s: label %q, want %q", tc.name, band.Label, tc.wantLabel)
		}
		if band.Color != tc.wantColor {
			t.Errorf("%s: color %q, want %q", tc.name, band.Color, tc.wantColor)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	s := loadStore(t)
	bt := malePesoTable(t, s, refcurve.Fenton)
	colors := refcurve.Colors(refcurve.Fenton)

	first, err := classify.Classify(2612, 200, bt, colors)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := classify.Classify(2612, 200, bt, colors)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if again != first {
			t.Fatalf("classification not stable: %+v vs %+v", again, first)
		}
	}
}

func TestClassify_UncoveredDay(t *testing.T) {
	s := loadStore(t)
	bt := malePesoTable(t, s, refcurve.Fenton)

	_, err := classify.Classify(3000, 100, bt, refcurve.Colors(refcurve.Fenton))
	if !errors.Is(err, classify.ErrNoReferenceDay) {
		t.Fatalf("expected ErrNoReferenceDay, got %v", err)
	}
}

func TestAnnotate_SystemSelection(t *testing.T) {
	s := loadStore(t)
	sexes := map[string]model.Sex{"A": model.SexMale}

	preterm := model.Measurement{PatientID: "A", Seq: 0, AgeDays: 259}
	infant := model.Measurement{PatientID: "A", Seq: 1, AgeDays: 400}
	for _, v := range model.AllGrowthVars {
		preterm.SetValue(v, curvegen.Base(v.FileKey, 259))
		infant.SetValue(v, curvegen.Base(v.FileKey, 400))
	}

	rows, uncovered := classify.Annotate([]model.Measurement{preterm, infant}, sexes, s)
	if uncovered != 0 {
		t.Fatalf("expected full coverage, got %d uncovered", uncovered)
	}

	// The preterm row must classify on Fenton colors, the later row on WHO.
	if got := rows[0].PesoBand.Color; got != "#08c754" {
		t.Errorf("preterm peso color %q, want fenton %q", got, "#08c754")
	}
	if got := rows[1].PesoBand.Color; got != "#73bc90" {
		t.Errorf("infant peso color %q, want who %q", got, "#73bc90")
	}
}

func TestAnnotate_UncoveredStaysNil(t *testing.T) {
	s := loadStore(t)
	sexes := map[string]model.Sex{"A": model.SexFemale}

	beyond := model.Measurement{PatientID: "A", Seq: 0, AgeDays: 800, Peso: 8000, Talla: 70, PC: 45}
	rows, uncovered := classify.Annotate([]model.Measurement{beyond}, sexes, s)
	if uncovered != 1 {
		t.Fatalf("expected 1 uncovered row, got %d", uncovered)
	}
	if rows[0].PesoBand != nil || rows[0].TallaBand != nil || rows[0].PCBand != nil {
		t.Error("bands should stay nil outside curve coverage")
	}
}

func TestAnnotate_UnknownPatient(t *testing.T) {
	s := loadStore(t)

	m := model.Measurement{PatientID: "ghost", Seq: 0, AgeDays: 259, Peso: 2800, Talla: 47, PC: 33}
	rows, uncovered := classify.Annotate([]model.Measurement{m}, map[string]model.Sex{}, s)
	if uncovered != 1 {
		t.Fatalf("expected 1 uncovered row, got %d", uncovered)
	}
	if rows[0].PesoBand != nil {
		t.Error("unknown patient should not be classified")
	}
}
