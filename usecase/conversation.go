package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/embedchat/embedchat/domain"
	"github.com/embedchat/embedchat/utils/log"
)

// SessionContextProvider supplies opaque session metadata (locale,
// device class, and similar) collected by the embedding page. It is
// called exactly once, when the conversation is created.
type SessionContextProvider interface {
	SessionContext(ctx context.Context) (map[string]string, error)
}

// SessionContextFunc adapts a function to SessionContextProvider.
type SessionContextFunc func(ctx context.Context) (map[string]string, error)

func (f SessionContextFunc) SessionContext(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// Conversation owns the ordered, append-only turn list for one widget
// session and drives at most one exchange at a time. It is discarded
// with the session; nothing is persisted.
type Conversation struct {
	mu        sync.Mutex
	turns     []domain.Turn
	pending   bool
	completer domain.Completer
}

type ConversationOption func(*conversationSeed)

type conversationSeed struct {
	displayName string
	provider    SessionContextProvider
}

// WithDisplayName sets the widget's display name, supplied by the
// embedding page.
func WithDisplayName(name string) ConversationOption {
	return func(s *conversationSeed) {
		s.displayName = name
	}
}

// WithSessionContext injects the session metadata collaborator used to
// seed the system turn.
func WithSessionContext(p SessionContextProvider) ConversationOption {
	return func(s *conversationSeed) {
		s.provider = p
	}
}

// NewConversation creates an empty conversation, optionally seeded with
// a single system turn built from the display name and session
// metadata. A failing metadata provider is logged and skipped; the
// conversation still works, just unseeded.
func NewConversation(ctx context.Context, completer domain.Completer, opts ...ConversationOption) *Conversation {
	seed := &conversationSeed{}
	for _, opt := range opts {
		opt(seed)
	}

	c := &Conversation{completer: completer}

	if seed.displayName == "" && seed.provider == nil {
		return c
	}

	metadata := map[string]string{}
	if seed.provider != nil {
		m, err := seed.provider.SessionContext(ctx)
		if err != nil {
			log.WithCtx(ctx).Warn("collecting session context", zap.Error(err))
		} else {
			metadata = m
		}
	}

	if seed.displayName == "" && len(metadata) == 0 {
		return c
	}

	c.turns = append(c.turns, domain.NewTurn(domain.SystemRole, systemPrompt(seed.displayName, metadata)))
	return c
}

func systemPrompt(displayName string, metadata map[string]string) string {
	name := displayName
	if name == "" {
		name = "Assistant"
	}

	prompt := fmt.Sprintf("You are %s, a helpful assistant embedded as a chat widget in a web page. Keep answers short and conversational.", name)
	if len(metadata) > 0 {
		// Marshalling a map[string]string cannot fail.
		encoded, _ := json.Marshal(metadata)
		prompt += " Session context: " + string(encoded)
	}
	return prompt
}

// Submit appends text as a user turn, runs one exchange against the
// relay, and appends the assistant's answer. While the exchange is in
// flight the conversation is pending and further submissions are
// rejected with ErrPending. On failure the user turn stays in place and
// no assistant turn is added; resubmitting later starts a fresh
// exchange with a new user turn.
func (c *Conversation) Submit(ctx context.Context, text string) (domain.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Turn{}, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return domain.Turn{}, domain.ErrPending
	}
	c.turns = append(c.turns, domain.NewTurn(domain.UserRole, text))
	c.pending = true
	messages := c.messagesLocked()
	c.mu.Unlock()

	content, err := c.completer.Complete(ctx, messages)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		log.WithCtx(ctx).Error("exchange failed", zap.Error(err))
		return domain.Turn{}, fmt.Errorf("completing exchange: %w", err)
	}

	turn := domain.NewTurn(domain.AssistantRole, content)
	c.turns = append(c.turns, turn)
	return turn, nil
}

// Render returns the turns to display, in order, with the system turn
// filtered out. It never mutates the conversation.
func (c *Conversation) Render() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	rendered := make([]domain.Turn, 0, len(c.turns))
	for _, t := range c.turns {
		if t.Role == domain.SystemRole {
			continue
		}
		rendered = append(rendered, t)
	}
	return rendered
}

// Pending reports whether an exchange is in flight.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Len is the total number of turns, the system turn included.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

func (c *Conversation) messagesLocked() []domain.Message {
	messages := make([]domain.Message, len(c.turns))
	for i, t := range c.turns {
		messages[i] = t.Message()
	}
	return messages
}
