package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedchat/embedchat/domain"
)

func TestCompleteSendsConversationAndReturnsFirstChoice(t *testing.T) {
	var received domain.ChatRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(domain.ChatResponse{
			Choices: []domain.Choice{
				{Message: domain.ChoiceMessage{Content: "Hi there"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("session-token"))
	messages := []domain.Message{
		{Role: domain.SystemRole, Content: "be brief"},
		{Role: domain.UserRole, Content: "Hello"},
	}

	content, err := client.Complete(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", content)
	assert.Equal(t, messages, received.Messages)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestCompleteSurfacesRelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(domain.ErrorResponse{Error: "failed to reach the assistant"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Complete(context.Background(), []domain.Message{
		{Role: domain.UserRole, Content: "Hello"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "failed to reach the assistant")
}

func TestCompleteHandlesNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Complete(context.Background(), []domain.Message{
		{Role: domain.UserRole, Content: "Hello"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ChatResponse{})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Complete(context.Background(), []domain.Message{
		{Role: domain.UserRole, Content: "Hello"},
	})
	assert.ErrorIs(t, err, domain.ErrNoChoices)
}

func TestCompleteReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := NewClient(server.URL).Complete(context.Background(), []domain.Message{
		{Role: domain.UserRole, Content: "Hello"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling relay")
}
