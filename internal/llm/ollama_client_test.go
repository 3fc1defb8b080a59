package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateStreamedResponse(t *testing.T) {
	body := `{"model":"mistral","response":"Hello","done":false}
{"model":"mistral","response":" world","done":false}
not-json-line
{"model":"mistral","response":"!","done":true}`

	got := AggregateStreamedResponse(body)

	assert.Equal(t, "Hello world!", got)
}

func TestAggregateStreamedResponseEmpty(t *testing.T) {
	assert.Equal(t, "", AggregateStreamedResponse(""))
	assert.Equal(t, "", AggregateStreamedResponse("\n\n"))
}

func TestOllamaGenerateResponseSingleObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "mistral", req["model"])
		assert.Equal(t, "say hi", req["prompt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"mistral","response":"hi","done":true}`))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, DefaultOptions())
	got, err := client.GenerateResponse("say hi")

	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestOllamaGenerateResponseStreamed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"foo","done":false}` + "\n" + `{"response":"bar","done":true}` + "\n"))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, DefaultOptions())
	got, err := client.GenerateResponse("stream please")

	require.NoError(t, err)
	assert.Equal(t, "foobar", got)
}

func TestOllamaGenerateResponseConnectionError(t *testing.T) {
	client := NewOllamaClient("http://127.0.0.1:1", DefaultOptions())

	_, err := client.GenerateResponse("hello")

	assert.Error(t, err)
}

func TestOllamaGenerateResponseInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, DefaultOptions())
	_, err := client.GenerateResponse("hello")

	assert.Error(t, err)
}
