package model

// Sex encodes the Iden_Sexo column: 1 male, 2 female, 3 undefined.
type Sex int32

const (
	SexMale      Sex = 1
	SexFemale    Sex = 2
	SexUndefined Sex = 3
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "undefined"
	}
}

// PatientRow mirrors the Parquet schema of the patient table produced by the
// upstream ETL. The feeding and oxygen-weaning covariates are optional and
// pass through the pipeline untouched.
type PatientRow struct {
	PatientID    string `parquet:"Paciente_ID"`
	Sex          int32  `parquet:"Iden_Sexo"`
	HospitalDays *int64 `parquet:"HD_TotalDiasHospital,optional"`

	WeaningAgeDays     *float64 `parquet:"edaddestete,optional"`
	OxygenAtEntry      *float64 `parquet:"oxigenoalaentrada,optional"`
	WeaningWeight      *float64 `parquet:"pesodesteteoxigeno,optional"`
	AnyBreastMilk3M    *float64 `parquet:"algoLM3meses,optional"`
	AnyBreastMilk6M    *float64 `parquet:"algoLM6meses,optional"`
	AnyBreastMilk40W   *float64 `parquet:"algoLM40sem,optional"`
	ExclBreastMilk40W  *float64 `parquet:"LME40,optional"`
	ExclBreastMilk3M   *float64 `parquet:"LME3m,optional"`
	ExclBreastMilk6M   *float64 `parquet:"LME6m,optional"`
}

// RestrictionFlags holds one growth-restriction flag per growth variable.
type RestrictionFlags struct {
	Peso  bool
	Talla bool
	PC    bool
}

// Get returns the flag for the given growth variable.
func (f *RestrictionFlags) Get(v GrowthVar) bool {
	switch v.Name {
	case "Peso":
		return f.Peso
	case "Talla":
		return f.Talla
	default:
		return f.PC
	}
}

// Set stores the flag for the given growth variable.
func (f *RestrictionFlags) Set(v GrowthVar, val bool) {
	switch v.Name {
	case "Peso":
		f.Peso = val
	case "Talla":
		f.Talla = val
	default:
		f.PC = val
	}
}

// Patient is the validated in-memory patient record. Birth* fields are copied
// from the patient's AC_Num=0 measurement during validation; restriction
// flags are mutated in place by the flagging phase.
type Patient struct {
	Row PatientRow

	ID           string
	Sex          Sex
	HospitalDays int64

	BirthAgeDays int
	BirthPeso    float64
	BirthTalla   float64
	BirthPC      float64

	RCIU RestrictionFlags
	RCEU RestrictionFlags
}

// BirthValue returns the birth measurement for the given growth variable.
func (p *Patient) BirthValue(v GrowthVar) float64 {
	switch v.Name {
	case "Peso":
		return p.BirthPeso
	case "Talla":
		return p.BirthTalla
	default:
		return p.BirthPC
	}
}

// Restriction returns the flag set for the given kind ("RCIU" or "RCEU").
func (p *Patient) Restriction(kind string) *RestrictionFlags {
	if kind == "RCEU" {
		return &p.RCEU
	}
	return &p.RCIU
}

// PatientOutRow is the annotated patient table written after flagging. It
// restates the input columns plus one boolean column per restriction flag.
type PatientOutRow struct {
	PatientID    string `parquet:"Paciente_ID"`
	Sex          int32  `parquet:"Iden_Sexo"`
	HospitalDays int64  `parquet:"HD_TotalDiasHospital"`

	WeaningAgeDays     *float64 `parquet:"edaddestete,optional"`
	OxygenAtEntry      *float64 `parquet:"oxigenoalaentrada,optional"`
	WeaningWeight      *float64 `parquet:"pesodesteteoxigeno,optional"`
	AnyBreastMilk3M    *float64 `parquet:"algoLM3meses,optional"`
	AnyBreastMilk6M    *float64 `parquet:"algoLM6meses,optional"`
	AnyBreastMilk40W   *float64 `parquet:"algoLM40sem,optional"`
	ExclBreastMilk40W  *float64 `parquet:"LME40,optional"`
	ExclBreastMilk3M   *float64 `parquet:"LME3m,optional"`
	ExclBreastMilk6M   *float64 `parquet:"LME6m,optional"`

	RCIUPeso  bool `parquet:"RCIU_Peso"`
	RCIUTalla bool `parquet:"RCIU_Talla"`
	RCIUPC    bool `parquet:"RCIU_PC"`
	RCEUPeso  bool `parquet:"RCEU_Peso"`
	RCEUTalla bool `parquet:"RCEU_Talla"`
	RCEUPC    bool `parquet:"RCEU_PC"`
}

// NewPatientOutRow flattens a Patient into its output Parquet row.
func NewPatientOutRow(p *Patient) PatientOutRow {
	return PatientOutRow{
		PatientID:    p.ID,
		Sex:          int32(p.Sex),
		HospitalDays: p.HospitalDays,

		WeaningAgeDays:    p.Row.WeaningAgeDays,
		OxygenAtEntry:     p.Row.OxygenAtEntry,
		WeaningWeight:     p.Row.WeaningWeight,
		AnyBreastMilk3M:   p.Row.AnyBreastMilk3M,
		AnyBreastMilk6M:   p.Row.AnyBreastMilk6M,
		AnyBreastMilk40W:  p.Row.AnyBreastMilk40W,
		ExclBreastMilk40W: p.Row.ExclBreastMilk40W,
		ExclBreastMilk3M:  p.Row.ExclBreastMilk3M,
		ExclBreastMilk6M:  p.Row.ExclBreastMilk6M,

		RCIUPeso:  p.RCIU.Peso,
		RCIUTalla: p.RCIU.Talla,
		RCIUPC:    p.RCIU.PC,
		RCEUPeso:  p.RCEU.Peso,
		RCEUTalla: p.RCEU.Talla,
		RCEUPC:    p.RCEU.PC,
	}
}
