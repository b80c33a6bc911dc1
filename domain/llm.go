package domain

import (
	"context"
	"errors"
)

// Completer abstracts any chat completion provider. Implementations
// make exactly one provider call per invocation and answer against the
// full message sequence they are given.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse mirrors the completion provider's response shape: at
// least one choice carrying a textual message body.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message ChoiceMessage `json:"message"`
}

type ChoiceMessage struct {
	Content string `json:"content"`
}

// ErrorResponse is the relay's failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

var (
	// ErrNoMessages is returned when a chat request carries an empty
	// message sequence.
	ErrNoMessages = errors.New("no messages provided")

	// ErrLastTurnNotUser is returned when the final message of a chat
	// request is not a user turn.
	ErrLastTurnNotUser = errors.New("last message must be a user message")

	// ErrConversationTooLong is returned when a chat request exceeds the
	// configured turn cap.
	ErrConversationTooLong = errors.New("conversation exceeds the configured turn limit")

	// ErrNoChoices is returned when the provider answers without any
	// choices to hand back.
	ErrNoChoices = errors.New("provider returned no choices")

	// ErrEmptyMessage is returned by the widget controller when the
	// submitted text is empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrPending is returned by the widget controller while a prior
	// exchange is still in flight.
	ErrPending = errors.New("an exchange is already pending")
)
