// Package nutrition holds the pure calculations behind meal logging,
// calorie goals and activity estimates.
package nutrition

import (
	"math"
	"strconv"
	"strings"
)

// Macros is a nutrition breakdown. For reference foods the values are per 100g.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
}

// Scaled is the result of scaling a per-100g basis to a portion.
type Scaled struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
}

// Scale converts per-100g values to the given portion weight. Calories are
// rounded to an integer and gram fields to one decimal. Weights that are
// negative or not finite scale to zero.
func Scale(per100g Macros, weightGrams float64) Scaled {
	if weightGrams < 0 || math.IsNaN(weightGrams) || math.IsInf(weightGrams, 0) {
		weightGrams = 0
	}
	m := weightGrams / 100
	return Scaled{
		Calories: int(math.Round(per100g.Calories * m)),
		ProteinG: Round1(per100g.ProteinG * m),
		CarbsG:   Round1(per100g.CarbsG * m),
		FatsG:    Round1(per100g.FatsG * m),
		FiberG:   Round1(per100g.FiberG * m),
	}
}

// ParseWeight reads a user-entered gram amount. Anything that is not a
// non-negative number is treated as 0.
func ParseWeight(s string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return w
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
