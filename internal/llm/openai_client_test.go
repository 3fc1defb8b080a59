package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient("test-key", server.URL+"/v1", Options{Model: "gpt-4o-mini", MaxTokens: 256})
	require.NoError(t, err)
	return client
}

func TestOpenAIGenerateResponse(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": `{"keyTopics":["Privacy"]}`,
					},
					"finish_reason": "stop",
				},
			},
		})
	}

	client := newTestOpenAIClient(t, handler)
	got, err := client.GenerateResponse("analyze this")

	require.NoError(t, err)
	assert.Equal(t, `{"keyTopics":["Privacy"]}`, got)
}

func TestOpenAIGenerateResponseNoChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"choices": []map[string]any{},
		})
	}

	client := newTestOpenAIClient(t, handler)
	_, err := client.GenerateResponse("analyze this")

	assert.Error(t, err)
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", Options{})
	assert.Error(t, err)
}
