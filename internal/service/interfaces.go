package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/vitaltrack/backend/internal/chat"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	Get(ctx context.Context, sess *types.Session) (*models.Profile, error)
	Update(ctx context.Context, sess *types.Session, req *types.UpdateProfileRequest) (*models.Profile, error)
	CalorieGoal(ctx context.Context, sess *types.Session) (nutrition.GoalBreakdown, error)
}

// IActivityService defines the interface for the workout log
type IActivityService interface {
	Log(ctx context.Context, sess *types.Session, req *types.LogActivityRequest) (*models.Activity, error)
	ListByDate(ctx context.Context, sess *types.Session, date string) ([]models.Activity, error)
	Delete(ctx context.Context, sess *types.Session, id uuid.UUID) error
}

// IMealService defines the interface for the meal log
type IMealService interface {
	Log(ctx context.Context, sess *types.Session, req *types.LogMealRequest) (*models.Meal, error)
	ListByDate(ctx context.Context, sess *types.Session, date string) ([]models.Meal, error)
	Delete(ctx context.Context, sess *types.Session, id uuid.UUID) error
}

// ICheckinService defines the interface for daily check-ins
type ICheckinService interface {
	Upsert(ctx context.Context, sess *types.Session, req *types.CheckinRequest) (*models.HealthCheckin, error)
	Get(ctx context.Context, sess *types.Session, date string) (*models.HealthCheckin, error)
}

// IFoodService defines the interface for food lookup and analysis
type IFoodService interface {
	Search(ctx context.Context, query, category string) ([]FoodResult, error)
	Nutrition(ctx context.Context, id string, weightGrams float64) (*FoodPortion, error)
	Contribute(ctx context.Context, sess *types.Session, req *types.ContributeFoodRequest) (*models.Food, bool, error)
	Analyze(ctx context.Context, req *types.AnalyzeFoodRequest) (*FoodAnalysis, error)
}

// IChatService defines the interface for the health assistant
type IChatService interface {
	History(ctx context.Context, sess *types.Session) ([]models.ChatMessage, error)
	Clear(ctx context.Context, sess *types.Session) error
	Stream(ctx context.Context, sess *types.Session, messages []chat.Message, w io.Writer) (string, error)
}

// IDashboardService defines the interface for the daily summary
type IDashboardService interface {
	Summary(ctx context.Context, sess *types.Session, date string) (*DashboardSummary, error)
}

// IExportService defines the interface for data exports
type IExportService interface {
	Export(ctx context.Context, sess *types.Session) (*ExportResult, error)
}

// Completer runs a non-streaming completion.
type Completer interface {
	Complete(ctx context.Context, req gateway.Request) (string, error)
}

// ChatStreamer opens a streaming completion and returns the raw SSE body.
type ChatStreamer interface {
	StreamChat(ctx context.Context, messages []chat.Message) (io.ReadCloser, error)
}

// Publisher delivers realtime events to a user's connected clients.
type Publisher interface {
	Publish(userID uuid.UUID, eventType string, data any)
}

var (
	_ Completer    = (*gateway.Client)(nil)
	_ ChatStreamer = (*gateway.Client)(nil)
)

type nopPublisher struct{}

func (nopPublisher) Publish(uuid.UUID, string, any) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
