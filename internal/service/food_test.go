package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

func TestSearchMergesCatalog(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "f@example.com")
	svc := service.NewFoodService(db, nil, nil, "")
	ctx := context.Background()

	_, created, err := svc.Contribute(ctx, sess, &types.ContributeFoodRequest{
		Name: "Chicken Tikka Wrap", Category: "Fast Food", Calories: 210, ProteinG: 12,
	})
	require.NoError(t, err)
	require.True(t, created)

	results, err := svc.Search(ctx, "chicken", "")
	require.NoError(t, err)
	var static, catalog int
	for _, r := range results {
		switch r.Source {
		case "static":
			static++
		case "catalog":
			catalog++
			assert.Equal(t, "Chicken Tikka Wrap", r.Name)
		}
	}
	assert.Equal(t, 5, static)
	assert.Equal(t, 1, catalog)

	results, err = svc.Search(ctx, "chicken", "Protein")
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, "Protein", r.Category)
	}
}

func TestSearchRanksCatalogByNameSimilarity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "k@example.com")
	svc := service.NewFoodService(db, nil, nil, "")
	ctx := context.Background()

	for _, name := range []string{"Apple Kombucha Sparkling Ginger Blend", "Kombucha"} {
		_, _, err := svc.Contribute(ctx, sess, &types.ContributeFoodRequest{Name: name, Category: "Beverages", Calories: 20})
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "kombucha", "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Kombucha", results[0].Name)
	assert.Equal(t, "Apple Kombucha Sparkling Ginger Blend", results[1].Name)
}

func TestSearchSkipsSeededDuplicates(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewFoodService(db, nil, nil, "")
	ctx := context.Background()

	n, err := svc.SeedStatic(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(57), n)
	n, err = svc.SeedStatic(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	results, err := svc.Search(ctx, "chicken", "All")
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestContributeIsIdempotentOnName(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newSession(t, db, "alice@example.com")
	bob := newSession(t, db, "bob@example.com")
	svc := service.NewFoodService(db, nil, nil, "")
	ctx := context.Background()

	first, created, err := svc.Contribute(ctx, alice, &types.ContributeFoodRequest{Name: "Acai  Bowl", Category: "Fruits", Calories: 120})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Acai Bowl", first.Name)
	assert.Equal(t, 100.0, first.ServingSize)

	second, created, err := svc.Contribute(ctx, bob, &types.ContributeFoodRequest{Name: "acai bowl", Category: "Fruits", Calories: 999})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 120.0, second.Calories)
	assert.Equal(t, alice.UserID, *second.CreatedBy)
}

func TestNutritionScalesFood(t *testing.T) {
	svc := service.NewFoodService(testhelpers.SetupSQLite(t), nil, nil, "")

	portion, err := svc.Nutrition(context.Background(), "chicken-breast", 200)
	require.NoError(t, err)
	assert.Equal(t, 330, portion.Nutrition.Calories)
	assert.Equal(t, 62.0, portion.Nutrition.ProteinG)

	_, err = svc.Nutrition(context.Background(), "nope", 100)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAnalyzeParsesAndCaches(t *testing.T) {
	mr, rdb := testhelpers.NewRedis(t)
	ai := &mockCompleter{}
	ai.On("Complete", mock.Anything, mock.MatchedBy(func(req gateway.Request) bool {
		return req.Model == "food-model" && req.MaxTokens == 500 && *req.Temperature == 0.3 &&
			len(req.Messages) == 2 && req.Messages[1].Content ==
			`Analyze the nutritional content of "masala dosa" for 100 grams. Provide calories, protein, carbs, fats, and fiber.`
	})).Return("```json\n{\"calories\": 168.6, \"protein_g\": 3.94, \"carbs_g\": 29.16, \"fats_g\": 3.7, \"fiber_g\": 1.21}\n```", nil).Once()

	svc := service.NewFoodService(nil, ai, rdb, "food-model")
	ctx := context.Background()

	got, err := svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "masala dosa"})
	require.NoError(t, err)
	assert.Equal(t, "masala dosa", got.FoodName)
	assert.Equal(t, 100.0, got.WeightGrams)
	assert.Equal(t, 169, got.Calories)
	assert.Equal(t, 3.9, got.ProteinG)
	assert.Equal(t, 29.2, got.CarbsG)
	assert.Equal(t, 1.2, got.FiberG)
	assert.Equal(t, "medium", got.Confidence)
	assert.Nil(t, got.Notes)
	assert.True(t, mr.Exists("food:analysis:masala dosa:100"))

	cached, err := svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "Masala Dosa", WeightGrams: 100})
	require.NoError(t, err)
	assert.Equal(t, 169, cached.Calories)
	assert.Equal(t, "Masala Dosa", cached.FoodName)
	ai.AssertExpectations(t)
}

func TestAnalyzeErrors(t *testing.T) {
	ai := &mockCompleter{}
	svc := service.NewFoodService(nil, ai, nil, "m")
	ctx := context.Background()

	_, err := svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "  "})
	assert.ErrorIs(t, err, service.ErrFoodNameRequired)

	ai.On("Complete", mock.Anything, mock.Anything).Return("", gateway.ErrRateLimited).Once()
	_, err = svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "rice"})
	assert.ErrorIs(t, err, service.ErrRateLimited)

	ai.On("Complete", mock.Anything, mock.Anything).Return("I am not sure", nil).Once()
	_, err = svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "rice", WeightGrams: 50})
	assert.ErrorIs(t, err, service.ErrAnalysisFailed)

	ai.On("Complete", mock.Anything, mock.Anything).
		Return(`{"calories": 65, "protein_g": 1.3, "carbs_g": 14, "fats_g": 0.1, "fiber_g": 0.2, "confidence": "high", "notes": "cooked"}`, nil).Once()
	got, err := svc.Analyze(ctx, &types.AnalyzeFoodRequest{FoodName: "rice", WeightGrams: 50})
	require.NoError(t, err)
	assert.Equal(t, "high", got.Confidence)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "cooked", *got.Notes)
	ai.AssertExpectations(t)
}
