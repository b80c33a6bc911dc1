package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/embedchat/embedchat/domain"
	"github.com/embedchat/embedchat/utils/log"
)

// Relay forwards a full conversation to the completion provider and
// hands the answer back unmodified. It keeps no state between requests;
// each call is one provider round-trip.
type Relay struct {
	completer domain.Completer
	maxTurns  int
}

// NewRelay wires a provider into the relay. maxTurns of zero leaves the
// conversation length unbounded.
func NewRelay(completer domain.Completer, maxTurns int) *Relay {
	return &Relay{
		completer: completer,
		maxTurns:  maxTurns,
	}
}

// Exchange validates the conversation, makes exactly one provider call,
// and wraps the first answer in the completion response shape the
// widget expects.
func (r *Relay) Exchange(ctx context.Context, messages []domain.Message) (domain.ChatResponse, error) {
	if err := validate(messages, r.maxTurns); err != nil {
		return domain.ChatResponse{}, err
	}

	content, err := r.completer.Complete(ctx, messages)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("completing chat: %w", err)
	}

	log.WithCtx(ctx).Info("completion received",
		zap.Int("messages", len(messages)),
		zap.Int("answer_length", len(content)),
	)

	return domain.ChatResponse{
		Choices: []domain.Choice{
			{Message: domain.ChoiceMessage{Content: content}},
		},
	}, nil
}

func validate(messages []domain.Message, maxTurns int) error {
	if len(messages) == 0 {
		return domain.ErrNoMessages
	}
	if messages[len(messages)-1].Role != domain.UserRole {
		return domain.ErrLastTurnNotUser
	}
	if maxTurns > 0 && len(messages) > maxTurns {
		return domain.ErrConversationTooLong
	}
	return nil
}
