package model

// MeasurementRow mirrors the Parquet schema of the measurement table: one
// anthropometric visit per row, AC_Num 0 being the birth measurement.
// Nullable fields stay nullable here; validation excludes incomplete rows.
type MeasurementRow struct {
	PatientID string   `parquet:"Paciente_ID"`
	Seq       int64    `parquet:"AC_Num"`
	AgeDays   *int64   `parquet:"AC_EG_Dias,optional"`
	Peso      *float64 `parquet:"AC_Peso,optional"`
	Talla     *float64 `parquet:"AC_Talla,optional"`
	PC        *float64 `parquet:"AC_PC,optional"`
}

// Measurement is a validated visit: every required field present.
// AgeDays is the corrected gestational age in days at the visit.
type Measurement struct {
	PatientID string
	Seq       int
	AgeDays   int
	Peso      float64
	Talla     float64
	PC        float64
}

// Value returns the measurement for the given growth variable.
func (m *Measurement) Value(v GrowthVar) float64 {
	switch v.Name {
	case "Peso":
		return m.Peso
	case "Talla":
		return m.Talla
	default:
		return m.PC
	}
}

// SetValue stores the measurement for the given growth variable.
func (m *Measurement) SetValue(v GrowthVar, val float64) {
	switch v.Name {
	case "Peso":
		m.Peso = val
	case "Talla":
		m.Talla = val
	default:
		m.PC = val
	}
}

// Band labels reserved for values outside the reference curves. A band label
// can also be empty: the value fell below even the synthetic negative bound,
// so no lower boundary exists.
const (
	BandOutlierNeg = "outlier_neg"
	BandOutlierPos = "outlier_pos"
)

// Band is one classification result: a display color and the label of the
// band's lower boundary.
type Band struct {
	Color string
	Label string
}

// Annotated couples a weekly measurement with its per-variable color bands.
// A nil band means the reference curves did not cover the visit's age.
type Annotated struct {
	Measurement

	PesoBand  *Band
	TallaBand *Band
	PCBand    *Band
}

// Band returns the classification band for the given growth variable.
func (a *Annotated) Band(v GrowthVar) *Band {
	switch v.Name {
	case "Peso":
		return a.PesoBand
	case "Talla":
		return a.TallaBand
	default:
		return a.PCBand
	}
}

// SetBand stores the classification band for the given growth variable.
func (a *Annotated) SetBand(v GrowthVar, b *Band) {
	switch v.Name {
	case "Peso":
		a.PesoBand = b
	case "Talla":
		a.TallaBand = b
	default:
		a.PCBand = b
	}
}

// AnnotatedRow is the annotated weekly measurement table written at the end
// of a run: the densified visit columns plus one color and one band-label
// column per growth variable. Unannotated variables stay null.
type AnnotatedRow struct {
	PatientID string  `parquet:"Paciente_ID"`
	Seq       int64   `parquet:"AC_Num"`
	AgeDays   int64   `parquet:"AC_EG_Dias"`
	Peso      float64 `parquet:"AC_Peso"`
	Talla     float64 `parquet:"AC_Talla"`
	PC        float64 `parquet:"AC_PC"`

	ColorPeso  *string `parquet:"color_AC_Peso,optional"`
	LabelPeso  *string `parquet:"labels_AC_Peso,optional"`
	ColorTalla *string `parquet:"color_AC_Talla,optional"`
	LabelTalla *string `parquet:"labels_AC_Talla,optional"`
	ColorPC    *string `parquet:"color_AC_PC,optional"`
	LabelPC    *string `parquet:"labels_AC_PC,optional"`
}

// NewAnnotatedRow flattens an Annotated measurement into its output row.
func NewAnnotatedRow(a *Annotated) AnnotatedRow {
	row := AnnotatedRow{
		PatientID: a.PatientID,
		Seq:       int64(a.Seq),
		AgeDays:   int64(a.AgeDays),
		Peso:      a.Peso,
		Talla:     a.Talla,
		PC:        a.PC,
	}
	if b := a.PesoBand; b != nil {
		row.ColorPeso, row.LabelPeso = &b.Color, &b.Label
	}
	if b := a.TallaBand; b != nil {
		row.ColorTalla, row.LabelTalla = &b.Color, &b.Label
	}
	if b := a.PCBand; b != nil {
		row.ColorPC, row.LabelPC = &b.Color, &b.Label
	}
	return row
}
