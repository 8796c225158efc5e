package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juplab/growthref/internal/exitcode"
	"github.com/juplab/growthref/internal/logging"
	"github.com/juplab/growthref/internal/pipeline"
	"github.com/juplab/growthref/internal/report"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Run the full annotation pipeline and write the outputs",
	RunE:  runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&cfg.OutDir, "out", "", "Output directory for the annotated tables and the exclusion report (required)")
	_ = annotateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateWithOut(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.LoadCriteria(); err != nil {
		log.Error().Err(err).Msg("invalid filter criteria")
		os.Exit(exitcode.UsageError)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Error().Err(err).Msg("cannot create output directory")
		os.Exit(exitcode.WriteError)
	}

	rep := report.New()
	result, err := pipeline.Run(log, &cfg, rep)
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("annotation failed")
			switch pe.Phase {
			case "curves":
				os.Exit(exitcode.ReferenceError)
			case "read", "validate":
				os.Exit(exitcode.InputError)
			case "filter":
				os.Exit(exitcode.FilterError)
			default:
				os.Exit(exitcode.WriteError)
			}
		}
		log.Error().Err(err).Msg("annotation failed")
		os.Exit(exitcode.InputError)
	}

	s := result.Summary
	fmt.Printf("Annotation complete: %d patients, %d weekly rows, %d RCIU / %d RCEU flags (%.1fs)\n",
		s.PatientsOut, s.RowsOut, s.RCIUFlagsSet, s.RCEUFlagsSet, s.DurationTotal.Seconds())
	return nil
}
