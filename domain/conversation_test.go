package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTurnAssignsUniqueIDs(t *testing.T) {
	a := NewTurn(UserRole, "one")
	b := NewTurn(UserRole, "two")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMessageDropsClientIdentity(t *testing.T) {
	turn := NewTurn(AssistantRole, "answer")
	msg := turn.Message()

	assert.Equal(t, AssistantRole, msg.Role)
	assert.Equal(t, "answer", msg.Content)

	encoded, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), turn.ID)
	assert.JSONEq(t, `{"role":"assistant","content":"answer"}`, string(encoded))
}
