package nutrition

// BMI returns body mass index rounded to one decimal, or 0 when either
// metric is missing.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	h := heightCm / 100
	return Round1(weightKg / (h * h))
}

// BMICategory buckets a BMI value using the WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}
