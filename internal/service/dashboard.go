package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// MacroTotals sums the macros of a day's meals.
type MacroTotals struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
}

// DashboardSummary is the daily overview of one user.
type DashboardSummary struct {
	Date             string                   `json:"date"`
	CaloriesConsumed int                      `json:"calories_consumed"`
	CaloriesBurned   int                      `json:"calories_burned"`
	NetCalories      int                      `json:"net_calories"`
	CalorieGoal      int                      `json:"calorie_goal"`
	CalorieProgress  int                      `json:"calorie_progress"`
	GoalFromProfile  bool                     `json:"goal_from_profile"`
	ActivityMinutes  int                      `json:"activity_minutes"`
	ActivityGoal     int                      `json:"activity_goal"`
	ActivityProgress int                      `json:"activity_progress"`
	Macros           MacroTotals              `json:"macros"`
	MealsByType      map[string][]models.Meal `json:"meals_by_type"`
	Activities       []models.Activity        `json:"activities"`
	Checkin          *models.HealthCheckin    `json:"checkin"`
	BMI              *float64                 `json:"bmi,omitempty"`
	BMICategory      string                   `json:"bmi_category,omitempty"`
}

type DashboardService struct {
	profiles   *ProfileService
	meals      *MealService
	activities *ActivityService
	checkins   *CheckinService
}

var _ IDashboardService = (*DashboardService)(nil)

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		profiles:   NewProfileService(db),
		meals:      NewMealService(db, nil),
		activities: NewActivityService(db, nil),
		checkins:   NewCheckinService(db, nil),
	}
}

// Summary aggregates one date. With nothing logged every total is zero and
// the goal is the profile-derived value, or the fallback.
func (s *DashboardService) Summary(ctx context.Context, sess *types.Session, date string) (*DashboardSummary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	var (
		profile    *models.Profile
		meals      []models.Meal
		activities []models.Activity
		checkin    *models.HealthCheckin
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.Get(gctx, sess)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		profile = p
		return err
	})
	g.Go(func() (err error) {
		meals, err = s.meals.ListByDate(gctx, sess, date)
		return err
	})
	g.Go(func() (err error) {
		activities, err = s.activities.ListByDate(gctx, sess, date)
		return err
	})
	g.Go(func() error {
		c, err := s.checkins.Get(gctx, sess, date)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		checkin = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &DashboardSummary{
		Date:         date,
		ActivityGoal: nutrition.DefaultActivityGoalMinutes,
		MealsByType:  make(map[string][]models.Meal, len(models.MealTypes)),
		Activities:   activities,
		Checkin:      checkin,
	}
	for _, t := range models.MealTypes {
		out.MealsByType[t] = []models.Meal{}
	}
	for _, m := range meals {
		out.CaloriesConsumed += m.Calories
		out.Macros.ProteinG += m.ProteinG
		out.Macros.CarbsG += m.CarbsG
		out.Macros.FatsG += m.FatsG
		out.Macros.FiberG += m.FiberG
		out.MealsByType[m.MealType] = append(out.MealsByType[m.MealType], m)
	}
	out.Macros.ProteinG = nutrition.Round1(out.Macros.ProteinG)
	out.Macros.CarbsG = nutrition.Round1(out.Macros.CarbsG)
	out.Macros.FatsG = nutrition.Round1(out.Macros.FatsG)
	out.Macros.FiberG = nutrition.Round1(out.Macros.FiberG)
	for _, a := range activities {
		out.CaloriesBurned += a.CaloriesBurned
		out.ActivityMinutes += a.DurationMinutes
	}
	out.NetCalories = out.CaloriesConsumed - out.CaloriesBurned

	metrics := profile.BodyMetrics()
	out.CalorieGoal = nutrition.DailyCalorieGoal(metrics)
	out.GoalFromProfile = metrics.Complete()
	out.CalorieProgress = nutrition.Progress(float64(out.CaloriesConsumed), float64(out.CalorieGoal))
	out.ActivityProgress = nutrition.Progress(float64(out.ActivityMinutes), float64(out.ActivityGoal))

	if metrics.HeightCm != nil && metrics.WeightKg != nil {
		if bmi := nutrition.BMI(*metrics.HeightCm, *metrics.WeightKg); bmi > 0 {
			out.BMI = &bmi
			out.BMICategory = nutrition.BMICategory(bmi)
		}
	}
	return out, nil
}
