package refcurve

import "github.com/juplab/growthref/internal/model"

// System identifies a growth reference curve system.
type System string

const (
	Fenton System = "fenton"
	WHO    System = "who"
)

// Systems lists the supported reference systems in canonical order.
var Systems = []System{Fenton, WHO}

// zScoreLabels holds the ordered standard-deviation labels per system.
// The relative order is semantically meaningful: band classification and the
// birth-band filter both index into it.
var zScoreLabels = map[System][]string{
	Fenton: {"des_3Neg", "des_2Neg", "des_1Neg", "des_0", "des_1", "des_2", "des_3"},
	WHO:    {"des_2Neg", "des_1Neg", "des_0", "des_1", "des_2"},
}

// Labels returns the ordered standard-deviation labels for a system.
func Labels(s System) []string {
	return zScoreLabels[s]
}

// ColorMap maps band keys to display hex colors. Keys are either the two
// outlier labels or "<lower>_<upper>" for adjacent labels of the extended
// sequence (outlier_neg, <z-score labels...>, outlier_pos).
type ColorMap map[string]string

var colorMaps = map[System]ColorMap{
	Fenton: {
		model.BandOutlierNeg:    "#ff7402",
		model.BandOutlierPos:    "#ff7402",
		"outlier_neg_des_3Neg":  "#bf0036",
		"des_3Neg_des_2Neg":     "#8310cc",
		"des_2Neg_des_1Neg":     "#0e7dc2",
		"des_1Neg_des_0":        "#08c754",
		"des_0_des_1":           "#08c754",
		"des_1_des_2":           "#0e7dc2",
		"des_2_des_3":           "#8310cc",
		"des_3_outlier_pos":     "#bf0036",
	},
	WHO: {
		model.BandOutlierNeg:    "#bd8f5d",
		model.BandOutlierPos:    "#bd8f5d",
		"outlier_neg_des_2Neg":  "#bd5d79",
		"des_2Neg_des_1Neg":     "#749eb8",
		"des_1Neg_des_0":        "#73bc90",
		"des_0_des_1":           "#73bc90",
		"des_1_des_2":           "#749eb8",
		"des_2_outlier_pos":     "#bd5d79",
	},
}

// Colors returns the color map for a system.
func Colors(s System) ColorMap {
	return colorMaps[s]
}
