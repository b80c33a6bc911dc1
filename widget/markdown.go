// Package widget turns conversation projections into display-ready
// fragments for the embedding page.
package widget

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/embedchat/embedchat/domain"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderedTurn pairs a turn with its HTML rendering.
type RenderedTurn struct {
	ID   string
	Role domain.Role
	HTML string
}

// RenderHTML converts one turn's markdown content to HTML.
func RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderTurns renders a display projection, typically the output of
// Conversation.Render. A turn whose markdown fails to convert falls
// back to its raw content.
func RenderTurns(turns []domain.Turn) []RenderedTurn {
	rendered := make([]RenderedTurn, len(turns))
	for i, t := range turns {
		body, err := RenderHTML(t.Content)
		if err != nil {
			body = t.Content
		}
		rendered[i] = RenderedTurn{
			ID:   t.ID,
			Role: t.Role,
			HTML: body,
		}
	}
	return rendered
}
