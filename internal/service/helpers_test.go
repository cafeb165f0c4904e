package service_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/chat"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/testhelpers"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// newSession creates a user with an empty profile and returns its session.
func newSession(t *testing.T, db *gorm.DB, email string) *types.Session {
	t.Helper()
	user, _ := testhelpers.CreateUser(t, db, email)
	return &types.Session{UserID: user.ID, Email: user.Email}
}

// fixClock pins service.Now for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	restore := service.Now
	service.Now = func() time.Time { return at }
	t.Cleanup(func() { service.Now = restore })
}

type published struct {
	UserID uuid.UUID
	Type   string
	Data   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID uuid.UUID, eventType string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{UserID: userID, Type: eventType, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req gateway.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// fakeStreamer replays a canned SSE body and records the prompt it got.
type fakeStreamer struct {
	body     string
	err      error
	received []chat.Message
}

func (f *fakeStreamer) StreamChat(ctx context.Context, messages []chat.Message) (io.ReadCloser, error) {
	f.received = messages
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}
