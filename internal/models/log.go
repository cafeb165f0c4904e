package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the format of every *_date column.
const DateLayout = "2006-01-02"

// Activity is one logged workout.
type Activity struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID `gorm:"type:varchar(36);not null;index:idx_activities_user_date" json:"user_id"`
	ActivityDate    string    `gorm:"type:varchar(10);not null;index:idx_activities_user_date" json:"activity_date"`
	ActivityType    string    `gorm:"size:30;not null" json:"activity_type"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Intensity       string    `gorm:"size:10;not null;default:'moderate'" json:"intensity"`
	CaloriesBurned  int       `gorm:"not null;default:0" json:"calories_burned"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Meal is one logged food entry with its already-scaled nutrition.
type Meal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_meals_user_date" json:"user_id"`
	MealDate  string    `gorm:"type:varchar(10);not null;index:idx_meals_user_date" json:"meal_date"`
	MealType  string    `gorm:"size:20;not null" json:"meal_type"`
	FoodName  string    `gorm:"size:200;not null" json:"food_name"`
	Calories  int       `gorm:"not null;default:0" json:"calories"`
	ProteinG  float64   `gorm:"not null;default:0" json:"protein_g"`
	CarbsG    float64   `gorm:"not null;default:0" json:"carbs_g"`
	FatsG     float64   `gorm:"not null;default:0" json:"fats_g"`
	FiberG    float64   `gorm:"not null;default:0" json:"fiber_g"`
	CreatedAt time.Time `json:"created_at"`
}

func (Meal) TableName() string { return "meals" }

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// HealthCheckin is the single wellness entry of a user for one date.
type HealthCheckin struct {
	ID           uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_checkins_user_date" json:"user_id"`
	CheckinDate  string                      `gorm:"type:varchar(10);not null;uniqueIndex:idx_checkins_user_date" json:"checkin_date"`
	EnergyLevel  int                         `gorm:"not null" json:"energy_level"`
	SleepQuality int                         `gorm:"not null" json:"sleep_quality"`
	StressLevel  int                         `gorm:"not null" json:"stress_level"`
	Symptoms     datatypes.JSONSlice[string] `json:"symptoms"`
	Notes        string                      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (HealthCheckin) TableName() string { return "health_checkins" }

func (h *HealthCheckin) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// ChatMessage is one persisted turn of the assistant conversation.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_chat_user_created" json:"user_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_chat_user_created" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
