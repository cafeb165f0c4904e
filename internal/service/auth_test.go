package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)

	user, token, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email:    " Ana@Example.com ",
		Password: "password123",
		FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, token)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Ana", profile.FullName)
	assert.Equal(t, "moderate", profile.ActivityLevel)
	assert.Nil(t, profile.WeightKg)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	req := &types.RegisterRequest{Email: "dup@example.com", Password: "password123"}

	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	_, _, err := svc.Register(context.Background(), &types.RegisterRequest{Email: "bo@example.com", Password: "password123"})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "BO@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bo@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "bo@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	svc := service.NewAuthService(nil, "test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Email: "x@example.com"}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	other := service.NewAuthService(nil, "other-secret", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = svc.ValidateToken("invalid.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := service.NewAuthService(nil, "test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Email: "x@example.com"}

	restore := service.Now
	t.Cleanup(func() { service.Now = restore })
	service.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}
