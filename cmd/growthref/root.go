package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/juplab/growthref/internal/config"
	"github.com/juplab/growthref/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "growthref",
	Short: "Neonatal growth-curve annotation pipeline",
	Long:  "Classifies anthropometric follow-up measurements against Fenton and WHO reference curves, flags growth restriction and writes the annotated cohort tables.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.CurvesDir, "curves-dir", os.Getenv("GROWTHREF_CURVES_DIR"), "Directory with the reference curve CSV files (or set GROWTHREF_CURVES_DIR)")
	pf.StringVar(&cfg.PatientsFile, "patients", "", "Path to the patient Parquet table (required)")
	pf.StringVar(&cfg.MeasurementsFile, "measurements", "", "Path to the measurement Parquet table (required)")
	pf.StringVar(&cfg.CriteriaFile, "filters", "", "YAML file with cohort filter criteria (optional)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
