package service_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/internal/chat"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
)

const cannedStream = "data: {\"choices\":[{\"delta\":{\"content\":\"Drink \"}}]}\n\n" +
	": keep-alive\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"water.\"}}]}\n\n" +
	"data: [DONE]\n\n"

func TestChatStreamRelaysAndStores(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "chat@example.com")
	fixClock(t, time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&models.Meal{
		UserID: sess.UserID, MealDate: "2024-05-07", MealType: "lunch", FoodName: "Dal", Calories: 300,
	}).Error)
	require.NoError(t, db.Create(&models.Meal{
		UserID: sess.UserID, MealDate: "2024-04-20", MealType: "lunch", FoodName: "Old pizza", Calories: 900,
	}).Error)

	ai := &fakeStreamer{body: cannedStream}
	events := &recordingPublisher{}
	svc := service.NewChatService(db, ai, events)

	var out bytes.Buffer
	content, err := svc.Stream(context.Background(), sess, []chat.Message{
		{Role: chat.RoleUser, Content: "How much water?"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", content)
	assert.Equal(t, cannedStream, out.String())

	require.Len(t, ai.received, 2)
	assert.Equal(t, chat.RoleSystem, ai.received[0].Role)
	assert.Contains(t, ai.received[0].Content, "- 2024-05-07: Dal (lunch) - 300 kcal")
	assert.NotContains(t, ai.received[0].Content, "Old pizza")

	history, err := svc.History(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, chat.RoleUser, history[0].Role)
	assert.Equal(t, "Drink water.", history[1].Content)

	kinds := events.types()
	assert.Equal(t, realtime.EventChatDone, kinds[len(kinds)-1])
	assert.Contains(t, kinds, realtime.EventChatDelta)
}

func TestChatStreamGatewayError(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "chat@example.com")
	svc := service.NewChatService(db, &fakeStreamer{err: gateway.ErrQuotaExceeded}, nil)

	var out bytes.Buffer
	_, err := svc.Stream(context.Background(), sess, []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, &out)
	assert.ErrorIs(t, err, service.ErrQuotaExceeded)
	assert.Zero(t, out.Len())

	_, err = svc.Stream(context.Background(), sess, nil, &out)
	assert.ErrorIs(t, err, service.ErrEmptyConversation)
}

func TestChatStreamStopsOnCancel(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "chat@example.com")
	svc := service.NewChatService(db, &fakeStreamer{body: cannedStream}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	_, err := svc.Stream(ctx, sess, []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChatStreamWithoutDone(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "chat@example.com")
	body := "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}"
	svc := service.NewChatService(db, &fakeStreamer{body: body}, nil)

	var out bytes.Buffer
	content, err := svc.Stream(context.Background(), sess, []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", content)
}

func TestChatHistoryAndClear(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sess := newSession(t, db, "chat@example.com")
	other := newSession(t, db, "other@example.com")
	svc := service.NewChatService(db, nil, nil)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		require.NoError(t, db.Create(&models.ChatMessage{
			UserID: sess.UserID, Role: chat.RoleUser, Content: strings.Repeat("x", i+1), CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
	require.NoError(t, db.Create(&models.ChatMessage{UserID: other.UserID, Role: chat.RoleUser, Content: "theirs"}).Error)

	history, err := svc.History(ctx, sess)
	require.NoError(t, err)
	require.Len(t, history, 100)
	assert.Len(t, history[0].Content, 6)
	assert.Len(t, history[99].Content, 105)

	require.NoError(t, svc.Clear(ctx, sess))
	history, err = svc.History(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, history)

	theirs, err := svc.History(ctx, other)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestSystemPromptWithoutData(t *testing.T) {
	prompt := service.SystemPrompt(service.HealthContext{})
	assert.Contains(t, prompt, "- Name: Not set")
	assert.Contains(t, prompt, "- Weight: Not set")
	assert.Contains(t, prompt, "- Average Energy Level: 0.0/5")
	assert.Contains(t, prompt, "No meals logged")
	assert.Contains(t, prompt, "No activities logged")
	assert.Contains(t, prompt, "No check-ins logged")
	assert.True(t, strings.HasSuffix(prompt, "suggest the user log more data"))
}

func TestSystemPromptWithData(t *testing.T) {
	weight, age := 72.5, 41
	hc := service.HealthContext{
		Profile: &models.Profile{FullName: "Sam", WeightKg: &weight, Age: &age, ActivityLevel: "very_active", FitnessGoal: "weight_loss"},
		Meals: []models.Meal{
			{MealDate: "2024-05-07", FoodName: "Oats", MealType: "breakfast", Calories: 300, ProteinG: 10.5, CarbsG: 54, FatsG: 6},
			{MealDate: "2024-05-06", FoodName: "Rice", MealType: "dinner", Calories: 200, ProteinG: 4, CarbsG: 45, FatsG: 0.4},
		},
		Activities: []models.Activity{
			{ActivityDate: "2024-05-07", ActivityType: "hiit", DurationMinutes: 20, CaloriesBurned: 150, Intensity: "high"},
		},
		Checkins: []models.HealthCheckin{
			{CheckinDate: "2024-05-07", EnergyLevel: 4, SleepQuality: 3, StressLevel: 2, Symptoms: []string{"fatigue", "headache"}},
			{CheckinDate: "2024-05-06", EnergyLevel: 3, SleepQuality: 3, StressLevel: 3},
		},
	}
	prompt := service.SystemPrompt(hc)
	for _, want := range []string{
		"- Name: Sam",
		"- Weight: 72.5 kg",
		"- Height: Not set",
		"- Age: 41",
		"- Activity Level: Very Active",
		"- Fitness Goal: Weight Loss",
		"- Total Calories Consumed: 500 kcal",
		"- Net Calories: 350 kcal",
		"- Total Protein: 14.5g",
		"- Average Energy Level: 3.5/5",
		"- Number of Health Check-ins: 2",
		"- 2024-05-07: Oats (breakfast) - 300 kcal, P:10.5g C:54g F:6g",
		"- 2024-05-07: Hiit for 20 min - 150 kcal burned (high intensity)",
		"- 2024-05-07: Energy 4/5, Sleep 3/5, Stress 2/5, Symptoms: fatigue, headache",
		"- 2024-05-06: Energy 3/5, Sleep 3/5, Stress 3/5\n",
	} {
		assert.Contains(t, prompt, want)
	}
}


func TestSystemPromptConcurrent(t *testing.T) {
	weight := 80.0
	hc := service.HealthContext{
		Profile: &models.Profile{FullName: "Kai", WeightKg: &weight, ActivityLevel: "very_active", FitnessGoal: "muscle_gain"},
		Activities: []models.Activity{
			{ActivityDate: "2024-05-07", ActivityType: "hiit", DurationMinutes: 20, CaloriesBurned: 150, Intensity: "high"},
		},
	}
	want := service.SystemPrompt(hc)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var last string
			for j := 0; j < 200; j++ {
				last = service.SystemPrompt(hc)
			}
			results[i] = last
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Contains(t, want, "- Activity Level: Very Active")
	assert.Contains(t, want, "- Fitness Goal: Muscle Gain")
}
