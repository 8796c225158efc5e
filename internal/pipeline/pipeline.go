// Package pipeline orchestrates a full annotation run: load reference
// curves, read and validate the cohort tables, flag growth restriction,
// densify to weekly series, classify against the curves, apply the
// configured cohort filters, and write the annotated outputs plus the
// exclusion report.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/juplab/growthref/internal/classify"
	"github.com/juplab/growthref/internal/config"
	"github.com/juplab/growthref/internal/interpolate"
	"github.com/juplab/growthref/internal/model"
	"github.com/juplab/growthref/internal/refcurve"
	"github.com/juplab/growthref/internal/report"
	"github.com/juplab/growthref/internal/restrict"
	"github.com/juplab/growthref/internal/tableio"
)

// Output file names inside the run's output directory.
const (
	PatientsOutFile     = "pacientes_anotados.parquet"
	MeasurementsOutFile = "antropometrias_semanales.parquet"
	ReportFile          = "reporte.txt"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Result holds the annotated cohort after a run.
type Result struct {
	Patients []model.Patient
	Rows     []model.Annotated
	Summary  model.RunSummary
}

// Run executes the full pipeline: curves → read → validate → flag →
// interpolate → classify → filter → write.
func Run(log zerolog.Logger, cfg *config.Config, rep *report.Builder) (*Result, error) {
	totalStart := time.Now()
	summary := model.RunSummary{RunID: rep.RunID.String()}

	// Phase 1: reference curves
	log.Info().Str("dir", cfg.CurvesDir).Msg("loading reference curves")
	start := time.Now()
	store, err := refcurve.Load(cfg.CurvesDir)
	if err != nil {
		return nil, &PipelineError{Phase: "curves", Err: err}
	}
	summary.DurationLoad = time.Since(start)

	// Phase 2: cohort tables
	start = time.Now()
	patientRows, err := tableio.ReadPatients(cfg.PatientsFile)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	measurementRows, err := tableio.ReadMeasurements(cfg.MeasurementsFile)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	summary.DurationRead = time.Since(start)
	summary.PatientsRead = int64(len(patientRows))
	summary.MeasurementsRead = int64(len(measurementRows))
	log.Info().
		Int("patients", len(patientRows)).
		Int("measurements", len(measurementRows)).
		Msg("cohort tables read")

	// Phase 3: validation
	start = time.Now()
	patients, measurements := validateCohort(patientRows, measurementRows, rep)
	summary.DurationValidate = time.Since(start)
	summary.PatientsKept = int64(len(patients))
	summary.MeasurementsKept = int64(len(measurements))
	log.Info().
		Int("patients_kept", len(patients)).
		Int("measurements_kept", len(measurements)).
		Msg("validation complete")

	// Phase 4: growth-restriction flags
	start = time.Now()
	rciu, err := restrict.Flag(patients, measurements, store, restrict.BirthVisit)
	if err != nil {
		return nil, &PipelineError{Phase: "flag", Err: err}
	}
	rceu, err := restrict.Flag(patients, measurements, store, restrict.FirstFollowUp)
	if err != nil {
		return nil, &PipelineError{Phase: "flag", Err: err}
	}
	summary.DurationFlag = time.Since(start)
	summary.RCIUFlagsSet = int64(rciu)
	summary.RCEUFlagsSet = int64(rceu)
	log.Info().Int("rciu_flags", rciu).Int("rceu_flags", rceu).Msg("restriction flagging complete")

	// Phase 5: weekly densification
	start = time.Now()
	weekly := interpolate.Weekly(measurements)
	summary.DurationInterpolate = time.Since(start)
	summary.WeeklyRows = int64(len(weekly))
	log.Info().Int("weekly_rows", len(weekly)).Msg("interpolation complete")

	// Phase 6: classification
	start = time.Now()
	sexes := make(map[string]model.Sex, len(patients))
	for i := range patients {
		sexes[patients[i].ID] = patients[i].Sex
	}
	rows, uncovered := classify.Annotate(weekly, sexes, store)
	summary.DurationClassify = time.Since(start)
	summary.RowsAnnotated = int64(len(rows) - uncovered)
	summary.RowsUncovered = int64(uncovered)
	log.Info().
		Int("rows", len(rows)).
		Int("uncovered", uncovered).
		Msg("classification complete")

	// Phase 7: cohort filters
	start = time.Now()
	patients, rows, err = applyCriteria(&cfg.Criteria, patients, rows, rep)
	if err != nil {
		return nil, &PipelineError{Phase: "filter", Err: err}
	}
	summary.DurationFilter = time.Since(start)
	summary.PatientsOut = int64(len(patients))
	summary.RowsOut = int64(len(rows))
	log.Info().
		Int("patients_out", len(patients)).
		Int("rows_out", len(rows)).
		Msg("cohort filters applied")

	// Phase 8: outputs
	if cfg.OutDir != "" {
		start = time.Now()
		if err := tableio.WritePatients(filepath.Join(cfg.OutDir, PatientsOutFile), patients); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
		if err := tableio.WriteMeasurements(filepath.Join(cfg.OutDir, MeasurementsOutFile), rows); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
		if err := rep.WriteFile(filepath.Join(cfg.OutDir, ReportFile)); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
		summary.DurationWrite = time.Since(start)
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("patients_out", summary.PatientsOut).
		Int64("rows_out", summary.RowsOut).
		Int64("rciu_flags", summary.RCIUFlagsSet).
		Int64("rceu_flags", summary.RCEUFlagsSet).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("annotation pipeline complete")

	return &Result{Patients: patients, Rows: rows, Summary: summary}, nil
}
