package types

import (
	"encoding/json"

	"github.com/pageza/vitaltrack/backend/internal/chat"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"max=120"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// UpdateProfileRequest is a partial profile update; nil fields are left unchanged
type UpdateProfileRequest struct {
	FullName          *string  `json:"full_name" binding:"omitempty,max=120"`
	Age               *int     `json:"age" binding:"omitempty,min=1,max=130"`
	Gender            *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	HeightCm          *float64 `json:"height_cm" binding:"omitempty,gt=0,lt=300"`
	WeightKg          *float64 `json:"weight_kg" binding:"omitempty,gt=0,lt=700"`
	ActivityLevel     *string  `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	FitnessGoal       *string  `json:"fitness_goal" binding:"omitempty,oneof=weight_loss maintenance muscle_gain"`
	DietaryPreference *string  `json:"dietary_preference" binding:"omitempty,oneof=non_vegetarian vegetarian vegan"`
}

// LogActivityRequest records a workout. CaloriesBurned, when set, skips the estimate.
type LogActivityRequest struct {
	ActivityType    string `json:"activity_type" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440"`
	Intensity       string `json:"intensity" binding:"omitempty,oneof=low moderate high"`
	CaloriesBurned  *int   `json:"calories_burned" binding:"omitempty,min=0"`
	ActivityDate    string `json:"activity_date" binding:"omitempty,datetime=2006-01-02"`
	Notes           string `json:"notes" binding:"max=1000"`
}

// LogMealRequest records a meal either from a reference food and a weight,
// or from manually entered values.
type LogMealRequest struct {
	MealType    string   `json:"meal_type" binding:"required,oneof=breakfast lunch snack dinner"`
	MealDate    string   `json:"meal_date" binding:"omitempty,datetime=2006-01-02"`
	FoodID      string   `json:"food_id"`
	WeightGrams float64  `json:"weight_grams" binding:"omitempty,min=0"`
	FoodName    string   `json:"food_name" binding:"max=200"`
	Calories    *int     `json:"calories" binding:"omitempty,min=0"`
	ProteinG    *float64 `json:"protein_g" binding:"omitempty,min=0"`
	CarbsG      *float64 `json:"carbs_g" binding:"omitempty,min=0"`
	FatsG       *float64 `json:"fats_g" binding:"omitempty,min=0"`
	FiberG      *float64 `json:"fiber_g" binding:"omitempty,min=0"`
}

// CheckinRequest is the body of a daily check-in upsert
type CheckinRequest struct {
	CheckinDate  string   `json:"checkin_date" binding:"omitempty,datetime=2006-01-02"`
	EnergyLevel  int      `json:"energy_level" binding:"required"`
	SleepQuality int      `json:"sleep_quality" binding:"required"`
	StressLevel  int      `json:"stress_level" binding:"required"`
	Symptoms     []string `json:"symptoms" binding:"max=20,dive,max=60"`
	Notes        string   `json:"notes" binding:"max=1000"`
}

// AnalyzeFoodRequest asks the AI for nutrition of a free-text food. The body
// is {foodName, weightGrams}; food_name and weight_grams are accepted too.
type AnalyzeFoodRequest struct {
	FoodName    string  `json:"foodName"`
	WeightGrams float64 `json:"weightGrams"`
}

func (r *AnalyzeFoodRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		FoodName         *string  `json:"foodName"`
		WeightGrams      *float64 `json:"weightGrams"`
		FoodNameSnake    *string  `json:"food_name"`
		WeightGramsSnake *float64 `json:"weight_grams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = AnalyzeFoodRequest{}
	switch {
	case raw.FoodName != nil:
		r.FoodName = *raw.FoodName
	case raw.FoodNameSnake != nil:
		r.FoodName = *raw.FoodNameSnake
	}
	switch {
	case raw.WeightGrams != nil:
		r.WeightGrams = *raw.WeightGrams
	case raw.WeightGramsSnake != nil:
		r.WeightGrams = *raw.WeightGramsSnake
	}
	return nil
}

// ContributeFoodRequest adds an entry to the shared catalog with per-100g values
type ContributeFoodRequest struct {
	Name        string  `json:"name" binding:"required,max=120"`
	Category    string  `json:"category" binding:"required,max=40"`
	Calories    float64 `json:"calories" binding:"min=0"`
	ProteinG    float64 `json:"protein_g" binding:"min=0"`
	CarbsG      float64 `json:"carbs_g" binding:"min=0"`
	FatsG       float64 `json:"fats_g" binding:"min=0"`
	FiberG      float64 `json:"fiber_g" binding:"min=0"`
	ServingSize float64 `json:"serving_size" binding:"min=0"`
}

// ChatRequest is the body of the streaming chat endpoint. UserID is accepted
// for compatibility and ignored; the session decides whose data is used.
type ChatRequest struct {
	Messages []chat.Message `json:"messages" binding:"required,min=1,dive"`
	UserID   string         `json:"userId"`
}
