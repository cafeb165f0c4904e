package service

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
)

const (
	promptMealLimit     = 10
	promptActivityLimit = 10
	promptCheckinLimit  = 7
	notSet              = "Not set"
)

const assistantGuidelines = `GUIDELINES:
- Provide personalized advice based on the user's profile, goals, and recent data
- Give specific dietary recommendations considering their dietary preference
- Suggest improvements based on their activity level and fitness goals
- Be encouraging and supportive
- If asked for a health report summary, analyze their recent data comprehensively
- Always remind users to consult healthcare professionals for medical advice
- Keep responses concise but informative
- Use metric units (kg, cm, kcal) consistently
- If data is missing, acknowledge it and suggest the user log more data`

// HealthContext is the user data the assistant sees. Lists are ordered by
// date, newest first.
type HealthContext struct {
	Profile    *models.Profile
	Meals      []models.Meal
	Activities []models.Activity
	Checkins   []models.HealthCheckin
}

// label turns an enum value such as "very_active" into "Very Active".
// A Caser holds state, so each call builds its own.
func label(v string) string {
	if v == "" {
		return notSet
	}
	return cases.Title(language.English).String(strings.ReplaceAll(v, "_", " "))
}

func num(v float64) string {
	return strconv.FormatFloat(nutrition.Round1(v), 'f', -1, 64)
}

// SystemPrompt renders the assistant instructions with the user's data.
func SystemPrompt(hc HealthContext) string {
	var b strings.Builder
	b.WriteString("You are a helpful AI health and nutrition assistant. You have access to the user's health data and can provide personalized advice.\n\n")
	writeProfile(&b, hc.Profile)
	writeSummary(&b, hc)
	writeRecent(&b, hc)
	b.WriteString("\n")
	b.WriteString(assistantGuidelines)
	return b.String()
}

func writeProfile(b *strings.Builder, p *models.Profile) {
	if p == nil {
		p = &models.Profile{}
	}
	name, age, weight, height := notSet, notSet, notSet, notSet
	if p.FullName != "" {
		name = p.FullName
	}
	if p.Age != nil && *p.Age > 0 {
		age = strconv.Itoa(*p.Age)
	}
	if p.WeightKg != nil && *p.WeightKg > 0 {
		weight = num(*p.WeightKg) + " kg"
	}
	if p.HeightCm != nil && *p.HeightCm > 0 {
		height = num(*p.HeightCm) + " cm"
	}

	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(b, "- Name: %s\n", name)
	fmt.Fprintf(b, "- Age: %s\n", age)
	fmt.Fprintf(b, "- Gender: %s\n", label(p.Gender))
	fmt.Fprintf(b, "- Weight: %s\n", weight)
	fmt.Fprintf(b, "- Height: %s\n", height)
	fmt.Fprintf(b, "- Activity Level: %s\n", label(p.ActivityLevel))
	fmt.Fprintf(b, "- Fitness Goal: %s\n", label(p.FitnessGoal))
	fmt.Fprintf(b, "- Dietary Preference: %s\n", label(p.DietaryPreference))
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, hc HealthContext) {
	var consumed, burned int
	var protein, carbs, fats float64
	for _, m := range hc.Meals {
		consumed += m.Calories
		protein += m.ProteinG
		carbs += m.CarbsG
		fats += m.FatsG
	}
	for _, a := range hc.Activities {
		burned += a.CaloriesBurned
	}
	var energy, sleep, stress float64
	if n := float64(len(hc.Checkins)); n > 0 {
		for _, c := range hc.Checkins {
			energy += float64(c.EnergyLevel)
			sleep += float64(c.SleepQuality)
			stress += float64(c.StressLevel)
		}
		energy, sleep, stress = energy/n, sleep/n, stress/n
	}

	b.WriteString("LAST 7 DAYS SUMMARY:\n")
	fmt.Fprintf(b, "- Total Calories Consumed: %d kcal\n", consumed)
	fmt.Fprintf(b, "- Total Calories Burned: %d kcal\n", burned)
	fmt.Fprintf(b, "- Net Calories: %d kcal\n", consumed-burned)
	fmt.Fprintf(b, "- Total Protein: %sg\n", num(protein))
	fmt.Fprintf(b, "- Total Carbs: %sg\n", num(carbs))
	fmt.Fprintf(b, "- Total Fats: %sg\n", num(fats))
	fmt.Fprintf(b, "- Average Energy Level: %.1f/5\n", energy)
	fmt.Fprintf(b, "- Average Sleep Quality: %.1f/5\n", sleep)
	fmt.Fprintf(b, "- Average Stress Level: %.1f/5\n", stress)
	fmt.Fprintf(b, "- Number of Meals Logged: %d\n", len(hc.Meals))
	fmt.Fprintf(b, "- Number of Activities Logged: %d\n", len(hc.Activities))
	fmt.Fprintf(b, "- Number of Health Check-ins: %d\n", len(hc.Checkins))
	b.WriteString("\n")
}

func writeRecent(b *strings.Builder, hc HealthContext) {
	b.WriteString("RECENT MEALS (last 7 days):\n")
	if len(hc.Meals) == 0 {
		b.WriteString("No meals logged\n")
	}
	for i, m := range hc.Meals {
		if i == promptMealLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s (%s) - %d kcal, P:%sg C:%sg F:%sg\n",
			m.MealDate, m.FoodName, m.MealType, m.Calories, num(m.ProteinG), num(m.CarbsG), num(m.FatsG))
	}

	b.WriteString("\nRECENT ACTIVITIES (last 7 days):\n")
	if len(hc.Activities) == 0 {
		b.WriteString("No activities logged\n")
	}
	for i, a := range hc.Activities {
		if i == promptActivityLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s for %d min - %d kcal burned (%s intensity)\n",
			a.ActivityDate, label(a.ActivityType), a.DurationMinutes, a.CaloriesBurned, a.Intensity)
	}

	b.WriteString("\nRECENT HEALTH CHECK-INS (last 7 days):\n")
	if len(hc.Checkins) == 0 {
		b.WriteString("No check-ins logged\n")
	}
	for i, c := range hc.Checkins {
		if i == promptCheckinLimit {
			break
		}
		fmt.Fprintf(b, "- %s: Energy %d/5, Sleep %d/5, Stress %d/5", c.CheckinDate, c.EnergyLevel, c.SleepQuality, c.StressLevel)
		if len(c.Symptoms) > 0 {
			b.WriteString(", Symptoms: " + strings.Join(c.Symptoms, ", "))
		}
		b.WriteString("\n")
	}
}
