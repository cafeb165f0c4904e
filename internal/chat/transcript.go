// Package chat keeps a live conversation transcript and streams assistant
// replies from the chat endpoint into it.
package chat

import (
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one message in a transcript. ID is empty until the turn has been persisted.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Streaming reports whether the turn is an assistant reply that is still arriving.
func (t Turn) Streaming() bool {
	return t.Role == RoleAssistant && t.ID == ""
}

// Transcript is an ordered, concurrency-safe list of turns. The first turn
// may be a greeting, which is never replaced by streamed text.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
	now   func() time.Time
}

// NewTranscript starts a transcript, optionally with a greeting from the assistant.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{now: time.Now}
	if greeting != "" {
		t.turns = append(t.turns, Turn{ID: "greeting", Role: RoleAssistant, Content: greeting, CreatedAt: t.now()})
	}
	return t
}

// Append adds a turn at the end.
func (t *Transcript) Append(role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{Role: role, Content: content, CreatedAt: t.now()})
}

// StreamAssistant records the full assistant text received so far. The last
// turn is replaced when it is an in-progress assistant turn that is not the
// first turn; otherwise a new assistant turn is appended.
func (t *Transcript) StreamAssistant(full string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.turns)
	if n > 1 && t.turns[n-1].Streaming() {
		t.turns[n-1].Content = full
		return
	}
	t.turns = append(t.turns, Turn{Role: RoleAssistant, Content: full, CreatedAt: t.now()})
}

// Commit assigns a durable id to the in-progress assistant turn.
func (t *Transcript) Commit(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.turns)
	if n == 0 || !t.turns[n-1].Streaming() {
		return false
	}
	t.turns[n-1].ID = id
	return true
}

// Turns returns a snapshot of the transcript.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Messages returns the user and assistant turns as request messages,
// leaving out the greeting.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, 0, len(t.turns))
	for _, turn := range t.turns {
		if turn.ID == "greeting" {
			continue
		}
		out = append(out, Message{Role: turn.Role, Content: turn.Content})
	}
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
