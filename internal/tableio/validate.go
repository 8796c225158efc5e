package tableio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

var (
	patientRequired     = []string{"Paciente_ID", "Iden_Sexo", "HD_TotalDiasHospital"}
	measurementRequired = []string{"Paciente_ID", "AC_Num", "AC_EG_Dias", "AC_Peso", "AC_Talla", "AC_PC"}
)

// ValidatePatientSchema checks that the patient table carries its required columns.
func ValidatePatientSchema(schema *parquet.Schema) error {
	return requireColumns(schema, patientRequired)
}

// ValidateMeasurementSchema checks that the measurement table carries its required columns.
func ValidateMeasurementSchema(schema *parquet.Schema) error {
	return requireColumns(schema, measurementRequired)
}

func requireColumns(schema *parquet.Schema, required []string) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[field.Name()] = true
	}

	var missing []string
	for _, col := range required {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
