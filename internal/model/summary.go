package model

import "time"

// RunSummary captures metrics from a single annotation run.
type RunSummary struct {
	RunID string

	PatientsRead     int64
	PatientsKept     int64
	MeasurementsRead int64
	MeasurementsKept int64

	RCIUFlagsSet int64
	RCEUFlagsSet int64

	WeeklyRows    int64
	RowsAnnotated int64
	RowsUncovered int64 // rows with at least one variable outside curve coverage
	PatientsOut   int64
	RowsOut       int64

	DurationLoad        time.Duration
	DurationRead        time.Duration
	DurationValidate    time.Duration
	DurationFlag        time.Duration
	DurationInterpolate time.Duration
	DurationClassify    time.Duration
	DurationFilter      time.Duration
	DurationWrite       time.Duration
	DurationTotal       time.Duration
}
