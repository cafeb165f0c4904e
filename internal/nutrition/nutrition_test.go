package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestScale(t *testing.T) {
	basis := Macros{Calories: 100, ProteinG: 10, CarbsG: 20, FatsG: 5, FiberG: 2}

	t.Run("100g keeps the basis", func(t *testing.T) {
		got := Scale(basis, 100)
		assert.Equal(t, Scaled{Calories: 100, ProteinG: 10, CarbsG: 20, FatsG: 5, FiberG: 2}, got)
	})

	t.Run("zero weight is all zero", func(t *testing.T) {
		assert.Equal(t, Scaled{}, Scale(basis, 0))
	})

	t.Run("250g scales linearly", func(t *testing.T) {
		got := Scale(basis, 250)
		assert.Equal(t, 250, got.Calories)
		assert.Equal(t, 25.0, got.ProteinG)
		assert.Equal(t, 50.0, got.CarbsG)
		assert.Equal(t, 12.5, got.FatsG)
		assert.Equal(t, 5.0, got.FiberG)
	})

	t.Run("rounding", func(t *testing.T) {
		chicken, ok := LookupFood("chicken-breast")
		require.True(t, ok)
		got := chicken.Portion(150)
		assert.Equal(t, 248, got.Calories)
		assert.Equal(t, 46.5, got.ProteinG)
		assert.Equal(t, 5.4, got.FatsG)
	})

	t.Run("invalid weights", func(t *testing.T) {
		assert.Equal(t, Scaled{}, Scale(basis, -50))
		assert.Equal(t, Scaled{}, Scale(basis, math.NaN()))
		assert.Equal(t, Scaled{}, Scale(basis, math.Inf(1)))
	})
}

func TestParseWeight(t *testing.T) {
	assert.Equal(t, 150.0, ParseWeight("150"))
	assert.Equal(t, 12.5, ParseWeight(" 12.5 "))
	assert.Equal(t, 0.0, ParseWeight(""))
	assert.Equal(t, 0.0, ParseWeight("abc"))
	assert.Equal(t, 0.0, ParseWeight("-3"))
}

func TestDailyCalorieGoal(t *testing.T) {
	complete := BodyMetrics{
		WeightKg:      ptrF(70),
		HeightCm:      ptrF(175),
		Age:           ptrI(30),
		Gender:        "male",
		ActivityLevel: "moderate",
		FitnessGoal:   "maintenance",
	}

	t.Run("fallback when metrics are missing", func(t *testing.T) {
		for _, b := range []BodyMetrics{
			{},
			{HeightCm: ptrF(175), Age: ptrI(30)},
			{WeightKg: ptrF(70), Age: ptrI(30)},
			{WeightKg: ptrF(70), HeightCm: ptrF(175)},
		} {
			assert.Equal(t, FallbackCalorieGoal, DailyCalorieGoal(b))
		}
	})

	t.Run("male moderate maintenance", func(t *testing.T) {
		assert.InDelta(t, 1648.75, BMR(70, 175, 30, "male"), 1e-9)
		assert.Equal(t, 2556, DailyCalorieGoal(complete))
	})

	t.Run("female offset", func(t *testing.T) {
		assert.InDelta(t, 1482.75, BMR(70, 175, 30, "female"), 1e-9)
		assert.InDelta(t, 1482.75, BMR(70, 175, 30, ""), 1e-9)
	})

	t.Run("goal adjustments", func(t *testing.T) {
		loss := complete
		loss.FitnessGoal = "weight_loss"
		gain := complete
		gain.FitnessGoal = "muscle_gain"
		assert.Equal(t, 2056, DailyCalorieGoal(loss))
		assert.Equal(t, 2856, DailyCalorieGoal(gain))
	})

	t.Run("unknown activity level uses moderate", func(t *testing.T) {
		odd := complete
		odd.ActivityLevel = "couch"
		assert.Equal(t, DailyCalorieGoal(complete), DailyCalorieGoal(odd))
	})

	t.Run("breakdown", func(t *testing.T) {
		b := ExplainCalorieGoal(complete)
		assert.False(t, b.Fallback)
		assert.Equal(t, 1649, b.BMR)
		assert.Equal(t, 1.55, b.Multiplier)
		assert.Equal(t, 0, b.Adjustment)
		assert.True(t, ExplainCalorieGoal(BodyMetrics{}).Fallback)
	})
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 50, Progress(1000, 2000))
	assert.Equal(t, 100, Progress(2500, 2000))
	assert.Equal(t, 0, Progress(0, 2000))
	assert.Equal(t, 0, Progress(100, 0))
	assert.Equal(t, 33, Progress(10, 30))
}

func TestCaloriesBurned(t *testing.T) {
	t.Run("zero and explicit error without weight", func(t *testing.T) {
		kcal, err := CaloriesBurned("running", 30, "moderate", nil)
		assert.Equal(t, 0, kcal)
		assert.ErrorIs(t, err, ErrMissingWeight)

		kcal, err = CaloriesBurned("running", 30, "moderate", ptrF(0))
		assert.Equal(t, 0, kcal)
		assert.ErrorIs(t, err, ErrMissingWeight)
	})

	t.Run("unknown activity", func(t *testing.T) {
		kcal, err := CaloriesBurned("skydiving", 30, "moderate", ptrF(70))
		assert.Equal(t, 0, kcal)
		assert.ErrorIs(t, err, ErrUnknownActivity)
	})

	t.Run("formula", func(t *testing.T) {
		// 9.8 * 3.5 * 70 / 200 = 12.005 kcal/min
		kcal, err := CaloriesBurned("running", 30, "moderate", ptrF(70))
		require.NoError(t, err)
		assert.Equal(t, 360, kcal)

		kcal, err = CaloriesBurned("walking", 60, "low", ptrF(80))
		require.NoError(t, err)
		assert.Equal(t, 235, kcal)
	})

	t.Run("monotonic in duration and intensity", func(t *testing.T) {
		w := ptrF(65)
		prev := -1
		for _, d := range []float64{0, 10, 20, 45, 90} {
			kcal, err := CaloriesBurned("cycling", d, "moderate", w)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, kcal, prev)
			prev = kcal
		}
		prev = -1
		for _, in := range Intensities {
			kcal, err := CaloriesBurned("cycling", 30, in, w)
			require.NoError(t, err)
			assert.Greater(t, kcal, prev)
			prev = kcal
		}
	})

	t.Run("unknown intensity uses moderate", func(t *testing.T) {
		a, _ := CaloriesBurned("yoga", 30, "moderate", ptrF(60))
		b, _ := CaloriesBurned("yoga", 30, "extreme", ptrF(60))
		assert.Equal(t, a, b)
	})
}

func TestActivityTypes(t *testing.T) {
	types := ActivityTypes()
	require.Len(t, types, 8)
	assert.Equal(t, "cycling", types[0].Type)
	met, ok := MET("hiit")
	assert.True(t, ok)
	assert.Equal(t, 12.0, met)
}

func TestSearchFoods(t *testing.T) {
	assert.Len(t, SearchFoods("", ""), 57)
	assert.Len(t, SearchFoods("", AllCategories), 57)

	chicken := SearchFoods("CHICKEN", "")
	names := make([]string, 0, len(chicken))
	for _, f := range chicken {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"Chicken Breast (Grilled)", "Chicken Thigh", "Chicken Biryani", "Butter Chicken", "Fried Chicken",
	}, names)

	indianChicken := SearchFoods("chicken", "Indian")
	assert.Len(t, indianChicken, 2)

	for _, f := range SearchFoods("", "Nuts") {
		assert.Equal(t, "Nuts", f.Category)
	}
	assert.Empty(t, SearchFoods("zzz", ""))
	assert.Equal(t, AllCategories, Categories[0])
}

func TestBMI(t *testing.T) {
	assert.Equal(t, 22.9, BMI(175, 70))
	assert.Equal(t, 0.0, BMI(0, 70))
	assert.Equal(t, "normal", BMICategory(22.9))
	assert.Equal(t, "underweight", BMICategory(17))
	assert.Equal(t, "overweight", BMICategory(27))
	assert.Equal(t, "obese", BMICategory(31))
	assert.Equal(t, "", BMICategory(0))
}
