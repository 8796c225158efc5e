package tableio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/juplab/growthref/internal/model"
)

// WritePatients writes the annotated patient table.
func WritePatients(path string, patients []model.Patient) error {
	rows := make([]model.PatientOutRow, len(patients))
	for i := range patients {
		rows[i] = model.NewPatientOutRow(&patients[i])
	}
	return writeAll(path, rows)
}

// WriteMeasurements writes the annotated weekly measurement table.
func WriteMeasurements(path string, ms []model.Annotated) error {
	rows := make([]model.AnnotatedRow, len(ms))
	for i := range ms {
		rows[i] = model.NewAnnotatedRow(&ms[i])
	}
	return writeAll(path, rows)
}

func writeAll[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
