// mkfixture generates a synthetic cohort for local runs: patient and
// measurement Parquet tables plus a matching reference-curve directory.
// A slice of the rows is deliberately invalid (undefined sex, null fields,
// missing birth rows) so the validation phase has something to exclude.
// Usage: go run ./cmd/mkfixture --out testdata/fixture --patients 50 --seed 1
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/juplab/growthref/internal/curvegen"
	"github.com/juplab/growthref/internal/model"
)

func main() {
	out := flag.String("out", "testdata/fixture", "output directory")
	patients := flag.Int("patients", 50, "number of patients to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	curvesDir := filepath.Join(*out, "curvas")
	if err := curvegen.WriteDir(curvesDir); err != nil {
		fmt.Fprintf(os.Stderr, "write curves: %v\n", err)
		os.Exit(1)
	}

	pRows, mRows := generateCohort(rng, *patients)
	if err := writeParquet(filepath.Join(*out, "pacientes.parquet"), pRows); err != nil {
		fmt.Fprintf(os.Stderr, "write patients: %v\n", err)
		os.Exit(1)
	}
	if err := writeParquet(filepath.Join(*out, "antropometrias.parquet"), mRows); err != nil {
		fmt.Fprintf(os.Stderr, "write measurements: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d patients, %d measurements to %s\n", len(pRows), len(mRows), *out)
	fmt.Printf("Curves under %s\n", curvesDir)
}

func generateCohort(rng *rand.Rand, n int) ([]model.PatientRow, []model.MeasurementRow) {
	var pRows []model.PatientRow
	var mRows []model.MeasurementRow

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("P%04d", i+1)
		sex := int32(1 + rng.Intn(2))
		if i%17 == 0 {
			sex = 3 // excluded by validation
		}
		days := int64(10 + rng.Intn(80))
		pRow := model.PatientRow{PatientID: id, Sex: sex, HospitalDays: &days}
		if i%19 == 0 {
			pRow.HospitalDays = nil
		}
		if rng.Float64() < 0.5 {
			wean := float64(30 + rng.Intn(60))
			pRow.WeaningAgeDays = &wean
		}
		pRows = append(pRows, pRow)

		if i%23 == 0 {
			continue // no birth row, excluded by validation
		}

		// Birth row at a preterm corrected age, then weekly-ish follow-ups.
		birthDay := 180 + rng.Intn(80)
		z := rng.NormFloat64() * 0.9
		mRows = append(mRows, measurementRow(id, 0, birthDay, z, rng))

		visits := 3 + rng.Intn(8)
		day := birthDay
		for seq := 1; seq <= visits; seq++ {
			day += 5 + rng.Intn(12)
			mRows = append(mRows, measurementRow(id, seq, day, z+rng.NormFloat64()*0.2, rng))
		}
	}
	return pRows, mRows
}

func measurementRow(id string, seq, day int, z float64, rng *rand.Rand) model.MeasurementRow {
	age := int64(day)
	row := model.MeasurementRow{PatientID: id, Seq: int64(seq), AgeDays: &age}

	for _, v := range model.AllGrowthVars {
		val := curvegen.Base(v.FileKey, day) + z*curvegen.Spread(v.FileKey)
		switch v.FileKey {
		case "peso":
			row.Peso = &val
		case "talla":
			row.Talla = &val
		default:
			row.PC = &val
		}
	}

	// Sprinkle nulls so validation has work to do.
	if rng.Float64() < 0.03 {
		row.Peso = nil
	}
	if rng.Float64() < 0.03 {
		row.PC = nil
	}
	return row
}

func writeParquet[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		return err
	}
	return writer.Close()
}
