package model

// GrowthVar represents one of the anthropometric variables tracked per visit.
type GrowthVar struct {
	Name    string // column suffix in the cohort tables, e.g. "Peso"
	FileKey string // reference curve file key, e.g. "peso"
	Unit    string // measurement unit, e.g. "g"
}

// AllGrowthVars lists the tracked growth variables in canonical order.
var AllGrowthVars = []GrowthVar{
	{Name: "Peso", FileKey: "peso", Unit: "g"},
	{Name: "Talla", FileKey: "talla", Unit: "cm"},
	{Name: "PC", FileKey: "pc", Unit: "cm"},
}

// GrowthVarByName returns the GrowthVar for the given column suffix, or ok=false.
func GrowthVarByName(name string) (GrowthVar, bool) {
	for _, v := range AllGrowthVars {
		if v.Name == name {
			return v, true
		}
	}
	return GrowthVar{}, false
}

// GrowthVarNames returns the column suffixes for all growth variables.
func GrowthVarNames() []string {
	names := make([]string, len(AllGrowthVars))
	for i, v := range AllGrowthVars {
		names[i] = v.Name
	}
	return names
}
