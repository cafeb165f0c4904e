package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// CheckinService keeps one wellness check-in per user per date.
type CheckinService struct {
	db     *gorm.DB
	events Publisher
}

var _ ICheckinService = (*CheckinService)(nil)

func NewCheckinService(db *gorm.DB, events Publisher) *CheckinService {
	return &CheckinService{db: db, events: publisherOrNop(events)}
}

func validLevel(v int) bool { return v >= 1 && v <= 5 }

// Upsert inserts the check-in for the date or updates the existing one in a
// single statement, so concurrent submissions never create a duplicate.
func (s *CheckinService) Upsert(ctx context.Context, sess *types.Session, req *types.CheckinRequest) (*models.HealthCheckin, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if !validLevel(req.EnergyLevel) || !validLevel(req.SleepQuality) || !validLevel(req.StressLevel) {
		return nil, ErrInvalidLevel
	}
	date, err := resolveDate(req.CheckinDate)
	if err != nil {
		return nil, err
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, sym := range req.Symptoms {
		if sym = strings.TrimSpace(sym); sym != "" {
			symptoms = append(symptoms, sym)
		}
	}

	checkin := &models.HealthCheckin{
		UserID:       sess.UserID,
		CheckinDate:  date,
		EnergyLevel:  req.EnergyLevel,
		SleepQuality: req.SleepQuality,
		StressLevel:  req.StressLevel,
		Symptoms:     datatypes.JSONSlice[string](symptoms),
		Notes:        strings.TrimSpace(req.Notes),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "checkin_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"energy_level", "sleep_quality", "stress_level", "symptoms", "notes", "updated_at",
		}),
	}).Create(checkin).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	// The row id differs from checkin.ID when an existing row was updated.
	saved, err := s.Get(ctx, sess, date)
	if err != nil {
		return nil, err
	}
	s.events.Publish(sess.UserID, realtime.EventDataChanged, changed("checkin"))
	return saved, nil
}

// Get returns the check-in of the date, or ErrNotFound.
func (s *CheckinService) Get(ctx context.Context, sess *types.Session, date string) (*models.HealthCheckin, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	var checkin models.HealthCheckin
	err = s.db.WithContext(ctx).Where("user_id = ? AND checkin_date = ?", sess.UserID, date).First(&checkin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load check-in: %w", err)
	}
	return &checkin, nil
}
