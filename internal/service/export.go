package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/config"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

const exportURLTTL = 15 * time.Minute

// ObjectStore stores export files and hands out download links.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

var _ ObjectStore = (*config.S3Config)(nil)

// ExportResult points at a finished export.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserExport is the document written for a user.
type UserExport struct {
	ExportedAt   time.Time              `json:"exported_at"`
	Email        string                 `json:"email"`
	Profile      *models.Profile        `json:"profile"`
	Activities   []models.Activity      `json:"activities"`
	Meals        []models.Meal          `json:"meals"`
	Checkins     []models.HealthCheckin `json:"health_checkins"`
	ChatMessages []models.ChatMessage   `json:"chat_messages"`
}

type ExportService struct {
	db    *gorm.DB
	store ObjectStore
}

var _ IExportService = (*ExportService)(nil)

// NewExportService returns a service that fails with ErrExportDisabled when store is nil.
func NewExportService(db *gorm.DB, store ObjectStore) *ExportService {
	return &ExportService{db: db, store: store}
}

// Export snapshots every table of the session user to the object store.
func (s *ExportService) Export(ctx context.Context, sess *types.Session) (*ExportResult, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	now := Now().UTC()
	doc := UserExport{ExportedAt: now, Email: sess.Email}
	db := s.db.WithContext(ctx)
	profile, err := loadProfile(ctx, s.db, sess)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	doc.Profile = profile
	for _, q := range []struct {
		dest  interface{}
		order string
	}{
		{&doc.Activities, "activity_date"},
		{&doc.Meals, "meal_date"},
		{&doc.Checkins, "checkin_date"},
		{&doc.ChatMessages, "created_at"},
	} {
		if err := db.Where("user_id = ?", sess.UserID).Order(q.order).Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to read export data: %w", err)
		}
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	key := fmt.Sprintf("exports/%s/%s.json", sess.UserID, now.Format("20060102T150405Z"))
	if err := s.store.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, exportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}
	return &ExportResult{Key: key, URL: url, ExpiresAt: now.Add(exportURLTTL)}, nil
}
