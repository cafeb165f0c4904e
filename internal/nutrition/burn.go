package nutrition

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrMissingWeight is returned when an estimate needs a body weight that was never recorded.
	ErrMissingWeight = errors.New("body weight is required to estimate calories burned")
	// ErrUnknownActivity is returned for activity types without a MET value.
	ErrUnknownActivity = errors.New("unknown activity type")
)

// metValues are metabolic equivalents per activity type.
var metValues = map[string]float64{
	"walking":    3.5,
	"running":    9.8,
	"cycling":    7.5,
	"gym":        6.0,
	"yoga":       3.0,
	"swimming":   8.0,
	"hiit":       12.0,
	"stretching": 2.5,
}

var intensityMultipliers = map[string]float64{
	"low":      0.8,
	"moderate": 1.0,
	"high":     1.2,
}

// Intensities lists the accepted intensity values.
var Intensities = []string{"low", "moderate", "high"}

// ActivityType describes one entry of the MET table.
type ActivityType struct {
	Type string  `json:"type"`
	MET  float64 `json:"met"`
}

// ActivityTypes returns the MET table sorted by type.
func ActivityTypes() []ActivityType {
	out := make([]ActivityType, 0, len(metValues))
	for t, met := range metValues {
		out = append(out, ActivityType{Type: t, MET: met})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// MET returns the metabolic equivalent for an activity type.
func MET(activityType string) (float64, bool) {
	met, ok := metValues[activityType]
	return met, ok
}

// IntensityMultiplier returns the multiplier for an intensity, defaulting to moderate.
func IntensityMultiplier(intensity string) float64 {
	if m, ok := intensityMultipliers[intensity]; ok {
		return m
	}
	return 1.0
}

// CaloriesBurned estimates energy expenditure as
// round(MET * intensity * 3.5 * weight / 200 * minutes).
// The estimate is 0 together with ErrUnknownActivity or ErrMissingWeight
// when a precondition does not hold.
func CaloriesBurned(activityType string, durationMin float64, intensity string, weightKg *float64) (int, error) {
	met, ok := metValues[activityType]
	if !ok {
		return 0, ErrUnknownActivity
	}
	if weightKg == nil || *weightKg <= 0 {
		return 0, ErrMissingWeight
	}
	if durationMin <= 0 {
		return 0, nil
	}
	perMinute := met * IntensityMultiplier(intensity) * 3.5 * *weightKg / 200
	return int(math.Round(perMinute * durationMin)), nil
}
