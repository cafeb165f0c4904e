package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// ActivityService keeps the workout log.
type ActivityService struct {
	db     *gorm.DB
	events Publisher
}

var _ IActivityService = (*ActivityService)(nil)

func NewActivityService(db *gorm.DB, events Publisher) *ActivityService {
	return &ActivityService{db: db, events: publisherOrNop(events)}
}

// Log records a workout. Without an explicit calories_burned the estimate
// needs the profile weight and fails with ErrMissingWeight when it is unset.
func (s *ActivityService) Log(ctx context.Context, sess *types.Session, req *types.LogActivityRequest) (*models.Activity, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(req.ActivityDate)
	if err != nil {
		return nil, err
	}
	activityType := strings.ToLower(strings.TrimSpace(req.ActivityType))
	if _, ok := nutrition.MET(activityType); !ok {
		return nil, ErrUnknownActivity
	}
	intensity := req.Intensity
	if intensity == "" {
		intensity = "moderate"
	}

	var burned int
	if req.CaloriesBurned != nil {
		burned = *req.CaloriesBurned
	} else {
		profile, err := loadProfile(ctx, s.db, sess)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		var weight *float64
		if profile != nil {
			weight = profile.WeightKg
		}
		burned, err = nutrition.CaloriesBurned(activityType, float64(req.DurationMinutes), intensity, weight)
		if err != nil {
			return nil, err
		}
	}

	activity := &models.Activity{
		UserID:          sess.UserID,
		ActivityDate:    date,
		ActivityType:    activityType,
		DurationMinutes: req.DurationMinutes,
		Intensity:       intensity,
		CaloriesBurned:  burned,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}
	s.events.Publish(sess.UserID, realtime.EventDataChanged, changed("activity"))
	return activity, nil
}

// ListByDate returns the activities of one date, newest first.
func (s *ActivityService) ListByDate(ctx context.Context, sess *types.Session, date string) ([]models.Activity, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	var activities []models.Activity
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND activity_date = ?", sess.UserID, date).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// Delete removes one of the session user's activities.
func (s *ActivityService) Delete(ctx context.Context, sess *types.Session, id uuid.UUID) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, sess.UserID).Delete(&models.Activity{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.events.Publish(sess.UserID, realtime.EventDataChanged, changed("activity"))
	return nil
}
