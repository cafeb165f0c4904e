package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/config"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
)

func TestOpenSQLiteAndAutoMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: t.TempDir() + "/vt.db"}
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(context.Background(), db))

	for _, table := range []string{"users", "profiles", "activities", "meals", "health_checkins", "chat_messages", "foods"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestApplySQLMigrationsOnPostgres(t *testing.T) {
	pg := testhelpers.StartPostgres(t)
	ctx := context.Background()

	sqlDB, err := OpenSQL(ctx, pg.DSN)
	require.NoError(t, err)
	defer sqlDB.Close()

	files := fstest.MapFS{
		"0001_a.sql":          {Data: []byte(`CREATE TABLE a (id INT);`)},
		"0002_b.sql":          {Data: []byte(`CREATE TABLE b (id INT); INSERT INTO b VALUES (1);`)},
		"0002_b_rollback.sql": {Data: []byte(`DROP TABLE b;`)},
	}
	applied, err := ApplySQLMigrations(ctx, sqlDB, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, applied)

	applied, err = ApplySQLMigrations(ctx, sqlDB, files)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRunMigrationsOnPostgres(t *testing.T) {
	pg := testhelpers.StartPostgres(t)
	require.NoError(t, RunMigrations(context.Background(), pg.DB))

	user := models.User{Email: "pg@example.com", PasswordHash: "x"}
	require.NoError(t, pg.DB.Create(&user).Error)
	food := models.Food{Name: "Dragon Fruit", Category: "Fruits", Calories: 60}
	require.NoError(t, pg.DB.Create(&food).Error)

	var loaded models.Food
	require.NoError(t, pg.DB.First(&loaded, "id = ?", food.ID).Error)
	assert.Len(t, loaded.Embedding.Slice(), models.EmbeddingDimensions)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = NewRedisClient(context.Background(), &config.Config{RedisURL: "::bad"})
	assert.Error(t, err)
}
