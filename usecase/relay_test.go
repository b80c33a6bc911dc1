package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedchat/embedchat/domain"
)

func TestRelayValidation(t *testing.T) {
	user := domain.Message{Role: domain.UserRole, Content: "hi"}
	assistant := domain.Message{Role: domain.AssistantRole, Content: "hello"}

	tests := []struct {
		name     string
		messages []domain.Message
		maxTurns int
		wantErr  error
	}{
		{
			name:     "empty conversation",
			messages: nil,
			wantErr:  domain.ErrNoMessages,
		},
		{
			name:     "last turn not user",
			messages: []domain.Message{user, assistant},
			wantErr:  domain.ErrLastTurnNotUser,
		},
		{
			name:     "over the turn cap",
			messages: []domain.Message{user, assistant, user},
			maxTurns: 2,
			wantErr:  domain.ErrConversationTooLong,
		},
		{
			name:     "cap of zero is unbounded",
			messages: []domain.Message{user, assistant, user},
			maxTurns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{reply: "answer"}
			relay := NewRelay(completer, tt.maxTurns)

			_, err := relay.Exchange(context.Background(), tt.messages)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, completer.callCount(), "provider must not be called on invalid input")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, completer.callCount())
		})
	}
}

func TestRelayExchangeWrapsFirstChoice(t *testing.T) {
	completer := &fakeCompleter{reply: "the answer"}
	relay := NewRelay(completer, 0)

	messages := []domain.Message{
		{Role: domain.SystemRole, Content: "be brief"},
		{Role: domain.UserRole, Content: "question"},
	}
	resp, err := relay.Exchange(context.Background(), messages)
	require.NoError(t, err)

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "the answer", resp.Choices[0].Message.Content)

	require.Equal(t, 1, completer.callCount())
	assert.Equal(t, messages, completer.call(0))
}

func TestRelayExchangePropagatesProviderError(t *testing.T) {
	providerErr := errors.New("upstream exploded")
	completer := &fakeCompleter{err: providerErr}
	relay := NewRelay(completer, 0)

	_, err := relay.Exchange(context.Background(), []domain.Message{
		{Role: domain.UserRole, Content: "hi"},
	})
	assert.ErrorIs(t, err, providerErr)
	assert.Equal(t, 1, completer.callCount())
}
