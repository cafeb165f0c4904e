package nutrition

import "math"

// FallbackCalorieGoal is used whenever body metrics are incomplete.
const FallbackCalorieGoal = 2000

// DefaultActivityGoalMinutes is the daily activity target shown on the dashboard.
const DefaultActivityGoalMinutes = 30

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const defaultActivityMultiplier = 1.55

var goalAdjustments = map[string]float64{
	"weight_loss": -500,
	"muscle_gain": 300,
}

// ActivityLevels lists the accepted profile activity levels.
var ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}

// FitnessGoals lists the accepted profile fitness goals.
var FitnessGoals = []string{"weight_loss", "maintenance", "muscle_gain"}

// BodyMetrics are the profile fields the calorie goal depends on.
// Nil pointers mean the value was never recorded.
type BodyMetrics struct {
	WeightKg      *float64
	HeightCm      *float64
	Age           *int
	Gender        string
	ActivityLevel string
	FitnessGoal   string
}

// Complete reports whether weight, height and age are all present.
func (b BodyMetrics) Complete() bool {
	return b.WeightKg != nil && b.HeightCm != nil && b.Age != nil
}

// GoalBreakdown shows how a calorie goal was derived.
type GoalBreakdown struct {
	BMR        int     `json:"bmr"`
	Multiplier float64 `json:"activity_multiplier"`
	TDEE       int     `json:"tdee"`
	Adjustment int     `json:"goal_adjustment"`
	Goal       int     `json:"goal"`
	Fallback   bool    `json:"fallback"`
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Gender "male" adds 5,
// any other value subtracts 161.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier returns the TDEE multiplier for a level, defaulting to moderate.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// DailyCalorieGoal returns the rounded daily calorie target, or
// FallbackCalorieGoal when metrics are incomplete.
func DailyCalorieGoal(b BodyMetrics) int {
	return ExplainCalorieGoal(b).Goal
}

// ExplainCalorieGoal computes the goal together with its intermediate values.
func ExplainCalorieGoal(b BodyMetrics) GoalBreakdown {
	if !b.Complete() {
		return GoalBreakdown{Goal: FallbackCalorieGoal, Fallback: true}
	}
	bmr := BMR(*b.WeightKg, *b.HeightCm, *b.Age, b.Gender)
	mult := ActivityMultiplier(b.ActivityLevel)
	tdee := bmr * mult
	adj := goalAdjustments[b.FitnessGoal]
	return GoalBreakdown{
		BMR:        int(math.Round(bmr)),
		Multiplier: mult,
		TDEE:       int(math.Round(tdee)),
		Adjustment: int(adj),
		Goal:       int(math.Round(tdee + adj)),
	}
}

// Progress is consumed as a percentage of goal, rounded and capped at 100.
func Progress(consumed, goal float64) int {
	if goal <= 0 {
		return 0
	}
	p := int(math.Round(consumed / goal * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
