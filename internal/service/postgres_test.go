package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/internal/database"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

func TestPostgresCatalogAndCheckins(t *testing.T) {
	pg := testhelpers.StartPostgres(t)
	ctx := context.Background()
	require.NoError(t, database.RunMigrations(ctx, pg.DB))
	sess := newSession(t, pg.DB, "pg@example.com")

	foods := service.NewFoodService(pg.DB, nil, nil, "")
	seeded, err := foods.SeedStatic(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(57), seeded)

	wrap, created, err := foods.Contribute(ctx, sess, &types.ContributeFoodRequest{Name: "Chicken Tikka Wrap", Category: "Fast Food", Calories: 210})
	require.NoError(t, err)
	assert.True(t, created)
	_, created, err = foods.Contribute(ctx, sess, &types.ContributeFoodRequest{Name: "chicken tikka  wrap", Category: "Fast Food", Calories: 1})
	require.NoError(t, err)
	assert.False(t, created)

	results, err := foods.Search(ctx, "chicken", "")
	require.NoError(t, err)
	var found bool
	for _, r := range results {
		if r.ID == wrap.ID.String() {
			found = true
		}
	}
	assert.True(t, found)

	checkins := service.NewCheckinService(pg.DB, nil)
	for _, level := range []int{2, 4} {
		_, err := checkins.Upsert(ctx, sess, &types.CheckinRequest{
			CheckinDate: "2024-05-01", EnergyLevel: level, SleepQuality: 3, StressLevel: 3, Symptoms: []string{"cough"},
		})
		require.NoError(t, err)
	}
	got, err := checkins.Get(ctx, sess, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 4, got.EnergyLevel)
	assert.Equal(t, []string{"cough"}, []string(got.Symptoms))
}
