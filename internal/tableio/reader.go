// Package tableio reads and writes the cohort tables as Parquet: the
// patient and measurement tables produced by the upstream ETL on the way
// in, the annotated tables on the way out.
package tableio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/juplab/growthref/internal/model"
)

const readBatchSize = 1024

// ReadPatients validates the patient table schema and reads every row.
func ReadPatients(path string) ([]model.PatientRow, error) {
	return readAll[model.PatientRow](path, ValidatePatientSchema)
}

// ReadMeasurements validates the measurement table schema and reads every row.
func ReadMeasurements(path string) ([]model.MeasurementRow, error) {
	return readAll[model.MeasurementRow](path, ValidateMeasurementSchema)
}

func readAll[T any](path string, validate func(*parquet.Schema) error) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	if err := validate(reader.Schema()); err != nil {
		return nil, err
	}

	out := make([]T, 0, reader.NumRows())
	buf := make([]T, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		out = append(out, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return out, nil
}
