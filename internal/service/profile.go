package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get retrieves the session user's profile
func (s *ProfileService) Get(ctx context.Context, sess *types.Session) (*models.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return loadProfile(ctx, s.db, sess)
}

func loadProfile(ctx context.Context, db *gorm.DB, sess *types.Session) (*models.Profile, error) {
	var profile models.Profile
	if err := db.WithContext(ctx).Where("user_id = ?", sess.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// Update applies the non-nil fields of req
func (s *ProfileService) Update(ctx context.Context, sess *types.Session, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	profile, err := loadProfile(ctx, s.db, sess)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.HeightCm != nil {
		profile.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = req.WeightKg
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.FitnessGoal != nil {
		profile.FitnessGoal = *req.FitnessGoal
	}
	if req.DietaryPreference != nil {
		profile.DietaryPreference = *req.DietaryPreference
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// CalorieGoal explains the daily calorie goal derived from the profile.
func (s *ProfileService) CalorieGoal(ctx context.Context, sess *types.Session) (nutrition.GoalBreakdown, error) {
	profile, err := s.Get(ctx, sess)
	if err != nil {
		return nutrition.GoalBreakdown{}, err
	}
	return nutrition.ExplainCalorieGoal(profile.BodyMetrics()), nil
}
