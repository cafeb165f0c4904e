package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/chat"
	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/sse"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

const (
	historyLimit    = 100
	contextDays     = 7
	streamChunkSize = 4096
)

var ErrEmptyConversation = errors.New("messages are required")

// ChatService runs the health assistant conversation.
type ChatService struct {
	db     *gorm.DB
	ai     ChatStreamer
	events Publisher
}

var _ IChatService = (*ChatService)(nil)

func NewChatService(db *gorm.DB, ai ChatStreamer, events Publisher) *ChatService {
	return &ChatService{db: db, ai: ai, events: publisherOrNop(events)}
}

// History returns the most recent messages, oldest first.
func (s *ChatService) History(ctx context.Context, sess *types.Session) ([]models.ChatMessage, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var recent []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", sess.UserID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

// Clear deletes every message of the session user.
func (s *ChatService) Clear(ctx context.Context, sess *types.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", sess.UserID).Delete(&models.ChatMessage{}).Error; err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

// LoadContext reads the profile and the last seven days of logs concurrently.
func (s *ChatService) LoadContext(ctx context.Context, sess *types.Session, today string) (HealthContext, error) {
	var hc HealthContext
	weekAgo := daysBefore(today, contextDays)

	g, ctx := errgroup.WithContext(ctx)
	db := s.db.WithContext(ctx)
	g.Go(func() error {
		profile, err := loadProfile(ctx, s.db, sess)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		hc.Profile = profile
		return err
	})
	g.Go(func() error {
		return db.Where("user_id = ? AND meal_date >= ?", sess.UserID, weekAgo).
			Order("meal_date DESC").Order("created_at DESC").Find(&hc.Meals).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ? AND activity_date >= ?", sess.UserID, weekAgo).
			Order("activity_date DESC").Order("created_at DESC").Find(&hc.Activities).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ? AND checkin_date >= ?", sess.UserID, weekAgo).
			Order("checkin_date DESC").Find(&hc.Checkins).Error
	})
	if err := g.Wait(); err != nil {
		return HealthContext{}, fmt.Errorf("failed to load health context: %w", err)
	}
	return hc, nil
}

// Stream answers the conversation. The gateway's SSE bytes are copied to w
// unchanged while being decoded, so live updates go to the realtime hub and
// the final answer is stored. Gateway errors are returned before anything is
// written to w.
func (s *ChatService) Stream(ctx context.Context, sess *types.Session, messages []chat.Message, w io.Writer) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if last := messages[len(messages)-1]; last.Role == chat.RoleUser && strings.TrimSpace(last.Content) != "" {
		if err := s.save(ctx, sess, chat.RoleUser, last.Content); err != nil {
			return "", err
		}
	}

	hc, err := s.LoadContext(ctx, sess, Today())
	if err != nil {
		return "", err
	}
	prompt := make([]chat.Message, 0, len(messages)+1)
	prompt = append(prompt, chat.Message{Role: chat.RoleSystem, Content: SystemPrompt(hc)})
	for _, m := range messages {
		if m.Role == chat.RoleSystem {
			continue
		}
		prompt = append(prompt, m)
	}

	body, err := s.ai.StreamChat(ctx, prompt)
	if err != nil {
		return "", err
	}
	defer body.Close()

	content, streamErr := s.relay(ctx, sess, body, w)

	if content != "" {
		// Keep what was received even if the client went away mid-stream.
		saveCtx := context.WithoutCancel(ctx)
		if err := s.save(saveCtx, sess, chat.RoleAssistant, content); err != nil {
			logger.Error("failed to store assistant reply", "user_id", sess.UserID, "err", err)
		}
	}
	if streamErr != nil {
		return content, streamErr
	}
	return content, nil
}

func (s *ChatService) relay(ctx context.Context, sess *types.Session, body io.Reader, w io.Writer) (string, error) {
	var dec sse.Decoder
	chunk := make([]byte, streamChunkSize)
	for !dec.Done() {
		if err := ctx.Err(); err != nil {
			return dec.Content(), err
		}
		n, readErr := body.Read(chunk)
		if n > 0 {
			if _, err := w.Write(chunk[:n]); err != nil {
				return dec.Content(), fmt.Errorf("failed to relay stream: %w", err)
			}
			s.publishDeltas(sess, &dec, dec.Feed(chunk[:n]))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return dec.Content(), fmt.Errorf("failed to read stream: %w", readErr)
		}
	}
	s.publishDeltas(sess, &dec, dec.Flush())
	if n := dec.Malformed(); n > 0 {
		logger.Warn("dropped malformed stream lines", "user_id", sess.UserID, "count", n)
	}
	return dec.Content(), nil
}

func (s *ChatService) publishDeltas(sess *types.Session, dec *sse.Decoder, events []sse.Event) {
	for _, ev := range events {
		if ev.Kind == sse.EventDelta {
			s.events.Publish(sess.UserID, realtime.EventChatDelta, map[string]string{"content": dec.Content()})
			return
		}
	}
}

func (s *ChatService) save(ctx context.Context, sess *types.Session, role, content string) error {
	msg := &models.ChatMessage{UserID: sess.UserID, Role: role, Content: content}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to store chat message: %w", err)
	}
	if role == chat.RoleAssistant {
		s.events.Publish(sess.UserID, realtime.EventChatDone, map[string]string{"id": msg.ID.String(), "content": content})
	}
	return nil
}
