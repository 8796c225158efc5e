package interpolate

import (
	"math"
	"testing"

	"github.com/juplab/growthref/internal/model"
)

func TestWeekly_LinearGapFill(t *testing.T) {
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 3, Peso: 3000, Talla: 48, PC: 33},
		{PatientID: "A", Seq: 1, AgeDays: 28, Peso: 4000, Talla: 52, PC: 37},
	}

	out := Weekly(ms)
	if len(out) != 5 {
		t.Fatalf("expected 5 weekly rows, got %d", len(out))
	}

	wantPeso := []float64{3000, 3250, 3500, 3750, 4000}
	for i, row := range out {
		if row.Seq != i {
			t.Errorf("row %d: seq %d, want %d", i, row.Seq, i)
		}
		if row.AgeDays != i*7 {
			t.Errorf("row %d: ageDays %d, want %d", i, row.AgeDays, i*7)
		}
		if math.Abs(row.Peso-wantPeso[i]) > 1e-9 {
			t.Errorf("row %d: peso %g, want %g", i, row.Peso, wantPeso[i])
		}
	}

	// The other variables interpolate on the same weights.
	if math.Abs(out[2].Talla-50) > 1e-9 {
		t.Errorf("midpoint talla %g, want 50", out[2].Talla)
	}
	if math.Abs(out[2].PC-35) > 1e-9 {
		t.Errorf("midpoint pc %g, want 35", out[2].PC)
	}
}

func TestWeekly_SameWeekMean(t *testing.T) {
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 14, Peso: 3000, Talla: 48, PC: 33},
		{PatientID: "A", Seq: 1, AgeDays: 16, Peso: 3100, Talla: 50, PC: 34},
	}

	out := Weekly(ms)
	if len(out) != 1 {
		t.Fatalf("expected 1 weekly row, got %d", len(out))
	}
	if out[0].AgeDays != 14 {
		t.Errorf("ageDays %d, want 14", out[0].AgeDays)
	}
	if math.Abs(out[0].Peso-3050) > 1e-9 {
		t.Errorf("peso %g, want 3050", out[0].Peso)
	}
	if math.Abs(out[0].Talla-49) > 1e-9 {
		t.Errorf("talla %g, want 49", out[0].Talla)
	}
}

func TestWeekly_SingleVisit(t *testing.T) {
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 200, Peso: 2500, Talla: 45, PC: 31},
	}

	out := Weekly(ms)
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	// Day 200 falls in week 28; the output snaps to the week start.
	if out[0].AgeDays != 196 {
		t.Errorf("ageDays %d, want 196", out[0].AgeDays)
	}
	if out[0].Peso != 2500 {
		t.Errorf("peso %g, want 2500", out[0].Peso)
	}
}

func TestWeekly_NoExtrapolation(t *testing.T) {
	ms := []model.Measurement{
		{PatientID: "A", Seq: 0, AgeDays: 21, Peso: 3000, Talla: 48, PC: 33},
		{PatientID: "A", Seq: 1, AgeDays: 42, Peso: 3600, Talla: 51, PC: 35},
	}

	out := Weekly(ms)
	if out[0].AgeDays != 21 || out[len(out)-1].AgeDays != 42 {
		t.Fatalf("series must stay inside the observed range, got [%d, %d]",
			out[0].AgeDays, out[len(out)-1].AgeDays)
	}
}

func TestWeekly_PatientOrderPreserved(t *testing.T) {
	ms := []model.Measurement{
		{PatientID: "B", Seq: 0, AgeDays: 7, Peso: 3000, Talla: 48, PC: 33},
		{PatientID: "A", Seq: 0, AgeDays: 7, Peso: 2900, Talla: 47, PC: 32},
		{PatientID: "B", Seq: 1, AgeDays: 14, Peso: 3200, Talla: 49, PC: 34},
	}

	out := Weekly(ms)
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	if out[0].PatientID != "B" || out[1].PatientID != "B" || out[2].PatientID != "A" {
		t.Errorf("patients out of first-appearance order: %s, %s, %s",
			out[0].PatientID, out[1].PatientID, out[2].PatientID)
	}
}
