package tableio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/juplab/growthref/internal/model"
)

func writeRows[T any](t *testing.T, path string, rows []T) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestReadPatients(t *testing.T) {
	days := int64(30)
	rows := []model.PatientRow{
		{PatientID: "P1", Sex: 1, HospitalDays: &days},
		{PatientID: "P2", Sex: 2},
	}
	path := filepath.Join(t.TempDir(), "pacientes.parquet")
	writeRows(t, path, rows)

	got, err := ReadPatients(path)
	if err != nil {
		t.Fatalf("ReadPatients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].PatientID != "P1" || got[0].HospitalDays == nil || *got[0].HospitalDays != 30 {
		t.Errorf("row 0 mismatch: %+v", got[0])
	}
	if got[1].HospitalDays != nil {
		t.Errorf("null column must read back nil, got %v", *got[1].HospitalDays)
	}
}

func TestReadMeasurements_WrongSchema(t *testing.T) {
	// A patient table is not a measurement table.
	rows := []model.PatientRow{{PatientID: "P1", Sex: 1}}
	path := filepath.Join(t.TempDir(), "wrong.parquet")
	writeRows(t, path, rows)

	if _, err := ReadMeasurements(path); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestReadPatients_MissingFile(t *testing.T) {
	if _, err := ReadPatients("/nonexistent/pacientes.parquet"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteMeasurements_CarriesBands(t *testing.T) {
	a := model.Annotated{
		Measurement: model.Measurement{PatientID: "P1", Seq: 0, AgeDays: 259, Peso: 2800, Talla: 47, PC: 33},
		PesoBand:    &model.Band{Color: "#08c754", Label: "des_0"},
	}
	path := filepath.Join(t.TempDir(), "antropometrias.parquet")
	if err := WriteMeasurements(path, []model.Annotated{a}); err != nil {
		t.Fatalf("WriteMeasurements: %v", err)
	}

	got, err := readAll[model.AnnotatedRow](path, func(*parquet.Schema) error { return nil })
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].ColorPeso == nil || *got[0].ColorPeso != "#08c754" {
		t.Errorf("color column not carried: %+v", got[0])
	}
	if got[0].LabelPeso == nil || *got[0].LabelPeso != "des_0" {
		t.Errorf("label column not carried: %+v", got[0])
	}
	if got[0].ColorTalla != nil {
		t.Error("unannotated variable must stay null")
	}
}
