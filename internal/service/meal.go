package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// MealService keeps the meal log.
type MealService struct {
	db     *gorm.DB
	events Publisher
}

var _ IMealService = (*MealService)(nil)

func NewMealService(db *gorm.DB, events Publisher) *MealService {
	return &MealService{db: db, events: publisherOrNop(events)}
}

// Log records a meal. With a food_id the nutrition is scaled from the food's
// per-100g basis; otherwise the manual values are stored as given.
func (s *MealService) Log(ctx context.Context, sess *types.Session, req *types.LogMealRequest) (*models.Meal, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(req.MealDate)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		UserID:   sess.UserID,
		MealDate: date,
		MealType: req.MealType,
	}

	switch {
	case req.FoodID != "":
		if req.WeightGrams <= 0 {
			return nil, ErrInvalidMeal
		}
		name, per100g, err := referenceFood(ctx, s.db, req.FoodID)
		if err != nil {
			return nil, err
		}
		scaled := nutrition.Scale(per100g, req.WeightGrams)
		meal.FoodName = fmt.Sprintf("%s (%sg)", name, strconv.FormatFloat(req.WeightGrams, 'f', -1, 64))
		meal.Calories = scaled.Calories
		meal.ProteinG = scaled.ProteinG
		meal.CarbsG = scaled.CarbsG
		meal.FatsG = scaled.FatsG
		meal.FiberG = scaled.FiberG
	case strings.TrimSpace(req.FoodName) != "" && req.Calories != nil:
		meal.FoodName = strings.TrimSpace(req.FoodName)
		meal.Calories = *req.Calories
		meal.ProteinG = valueOrZero(req.ProteinG)
		meal.CarbsG = valueOrZero(req.CarbsG)
		meal.FatsG = valueOrZero(req.FatsG)
		meal.FiberG = valueOrZero(req.FiberG)
	default:
		return nil, ErrInvalidMeal
	}

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	s.events.Publish(sess.UserID, realtime.EventDataChanged, changed("meal"))
	return meal, nil
}

// referenceFood resolves id against the bundled table first, then the catalog.
func referenceFood(ctx context.Context, db *gorm.DB, id string) (string, nutrition.Macros, error) {
	if f, ok := nutrition.LookupFood(id); ok {
		return f.Name, f.Per100g, nil
	}
	catalogID, err := uuid.Parse(id)
	if err != nil || db == nil {
		return "", nutrition.Macros{}, ErrNotFound
	}
	var food models.Food
	if err := db.WithContext(ctx).Where("id = ?", catalogID).First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nutrition.Macros{}, ErrNotFound
		}
		return "", nutrition.Macros{}, fmt.Errorf("failed to load food: %w", err)
	}
	return food.Name, food.Per100g(), nil
}

// ListByDate returns the meals of one date, oldest first.
func (s *MealService) ListByDate(ctx context.Context, sess *types.Session, date string) ([]models.Meal, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	var meals []models.Meal
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND meal_date = ?", sess.UserID, date).
		Order("created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

func (s *MealService) Delete(ctx context.Context, sess *types.Session, id uuid.UUID) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, sess.UserID).Delete(&models.Meal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.events.Publish(sess.UserID, realtime.EventDataChanged, changed("meal"))
	return nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return nutrition.Round1(*v)
}
