package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/nutrition"
)

// Profile holds the body metrics and preferences of one user. Numeric
// fields stay nil until the user records them.
type Profile struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	FullName          string    `gorm:"size:120" json:"full_name"`
	Age               *int      `json:"age"`
	Gender            string    `gorm:"size:20" json:"gender"`
	HeightCm          *float64  `json:"height_cm"`
	WeightKg          *float64  `json:"weight_kg"`
	ActivityLevel     string    `gorm:"size:20;not null;default:'moderate'" json:"activity_level"`
	FitnessGoal       string    `gorm:"size:20;not null;default:'maintenance'" json:"fitness_goal"`
	DietaryPreference string    `gorm:"size:20;not null;default:'non_vegetarian'" json:"dietary_preference"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BodyMetrics extracts the inputs of the calorie goal calculation.
func (p *Profile) BodyMetrics() nutrition.BodyMetrics {
	if p == nil {
		return nutrition.BodyMetrics{}
	}
	return nutrition.BodyMetrics{
		WeightKg:      p.WeightKg,
		HeightCm:      p.HeightCm,
		Age:           p.Age,
		Gender:        p.Gender,
		ActivityLevel: p.ActivityLevel,
		FitnessGoal:   p.FitnessGoal,
	}
}

var (
	Genders            = []string{"male", "female", "other"}
	DietaryPreferences = []string{"non_vegetarian", "vegetarian", "vegan"}
	MealTypes          = []string{"breakfast", "lunch", "snack", "dinner"}
)
