package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedchat/embedchat/domain"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "bold",
			markdown: "well **hello** there",
			want:     "<strong>hello</strong>",
		},
		{
			name:     "code span",
			markdown: "run `go test` first",
			want:     "<code>go test</code>",
		},
		{
			name:     "list",
			markdown: "- one\n- two",
			want:     "<li>one</li>",
		},
		{
			name:     "plain text survives",
			markdown: "just words",
			want:     "just words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderHTML(tt.markdown)
			require.NoError(t, err)
			assert.Contains(t, html, tt.want)
		})
	}
}

func TestRenderTurnsKeepsIdentityAndOrder(t *testing.T) {
	turns := []domain.Turn{
		domain.NewTurn(domain.UserRole, "what is *emphasis*?"),
		domain.NewTurn(domain.AssistantRole, "it renders as `<em>`"),
	}

	rendered := RenderTurns(turns)
	require.Len(t, rendered, 2)

	for i, r := range rendered {
		assert.Equal(t, turns[i].ID, r.ID)
		assert.Equal(t, turns[i].Role, r.Role)
	}
	assert.Contains(t, rendered[0].HTML, "<em>emphasis</em>")
}
