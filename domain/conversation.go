package domain

import "github.com/google/uuid"

type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)

// Turn is one message in a conversation. The ID exists only so the
// client can track a turn across renders; it is never forwarded to the
// completion provider.
type Turn struct {
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewTurn creates a turn with a fresh client-side identity.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// Message is the wire form of a turn: role and content only.
func (t Turn) Message() Message {
	return Message{Role: t.Role, Content: t.Content}
}

// Message is what actually crosses the wire to the relay and on to the
// provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
