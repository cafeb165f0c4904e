package testhelpers

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/models"
)

// CreateUser inserts a user and an empty profile and returns both.
func CreateUser(t *testing.T, db *gorm.DB, email string) (*models.User, *models.Profile) {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "not-a-real-hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	profile := &models.Profile{
		UserID:            user.ID,
		ActivityLevel:     "moderate",
		FitnessGoal:       "maintenance",
		DietaryPreference: "non_vegetarian",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user, profile
}

// SetBodyMetrics fills the numeric profile fields of userID.
func SetBodyMetrics(t *testing.T, db *gorm.DB, userID uuid.UUID, weightKg, heightCm float64, age int, gender string) {
	t.Helper()
	err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"weight_kg": weightKg,
		"height_cm": heightCm,
		"age":       age,
		"gender":    gender,
	}).Error
	if err != nil {
		t.Fatalf("failed to set body metrics: %v", err)
	}
}

// NewRedis starts an in-process Redis server and returns a client for it.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}
