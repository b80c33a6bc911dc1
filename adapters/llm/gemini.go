package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/embedchat/embedchat/config"
	"github.com/embedchat/embedchat/domain"
)

// GeminiClient is the alternate provider backend, selected with
// LLM_PROVIDER=gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:      cfg.APIKey,
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	var generateConfig *genai.GenerateContentConfig
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		if m.Role == domain.SystemRole {
			// Gemini takes the system turn as a dedicated instruction, not
			// as part of the history.
			generateConfig = &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{
					Parts: []*genai.Part{{Text: m.Content}},
				},
			}
			continue
		}

		role := genai.RoleModel
		if m.Role == domain.UserRole {
			role = genai.RoleUser
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", domain.ErrNoChoices
	}
	return text, nil
}
