package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/vitaltrack/backend/internal/nutrition"
)

var (
	goalWeight   float64
	goalHeight   float64
	goalAge      int
	goalGender   string
	goalActivity string
	goalTarget   string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the daily calorie goal for a set of body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := nutrition.BodyMetrics{
			Gender:        goalGender,
			ActivityLevel: goalActivity,
			FitnessGoal:   goalTarget,
		}
		if cmd.Flags().Changed("weight") {
			metrics.WeightKg = &goalWeight
		}
		if cmd.Flags().Changed("height") {
			metrics.HeightCm = &goalHeight
		}
		if cmd.Flags().Changed("age") {
			metrics.Age = &goalAge
		}

		b := nutrition.ExplainCalorieGoal(metrics)
		out := cmd.OutOrStdout()
		if b.Fallback {
			fmt.Fprintf(out, "Goal: %d kcal (weight, height and age are required for a personal goal)\n", b.Goal)
			return nil
		}
		fmt.Fprintf(out, "BMR: %d kcal\n", b.BMR)
		fmt.Fprintf(out, "TDEE: %d kcal (x%.3g)\n", b.TDEE, b.Multiplier)
		fmt.Fprintf(out, "Adjustment: %+d kcal\n", b.Adjustment)
		fmt.Fprintf(out, "Goal: %d kcal\n", b.Goal)
		return nil
	},
}

func init() {
	goalCmd.Flags().Float64Var(&goalWeight, "weight", 0, "Weight in kg")
	goalCmd.Flags().Float64Var(&goalHeight, "height", 0, "Height in cm")
	goalCmd.Flags().IntVar(&goalAge, "age", 0, "Age in years")
	goalCmd.Flags().StringVar(&goalGender, "gender", "other", "male, female or other")
	goalCmd.Flags().StringVar(&goalActivity, "activity", "moderate", "sedentary, light, moderate, active or very_active")
	goalCmd.Flags().StringVar(&goalTarget, "goal", "maintenance", "weight_loss, maintenance or muscle_gain")
}
