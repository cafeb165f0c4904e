package service

import (
	"errors"

	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidLevel       = errors.New("levels must be between 1 and 5")
	ErrInvalidDate        = errors.New("dates must use YYYY-MM-DD")
	ErrInvalidMeal        = errors.New("a meal needs a food_id with weight_grams or a food_name with calories")
	ErrFoodNameRequired   = errors.New("Food name is required")
	ErrAnalysisFailed     = errors.New("could not parse nutrition analysis")
	ErrExportDisabled     = errors.New("data export is not configured")

	// Re-exported so handlers only need this package for errors.Is checks.
	ErrMissingWeight   = nutrition.ErrMissingWeight
	ErrUnknownActivity = nutrition.ErrUnknownActivity
	ErrRateLimited     = gateway.ErrRateLimited
	ErrQuotaExceeded   = gateway.ErrQuotaExceeded
	ErrNoSession       = types.ErrNoSession
)
