package adk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerateResponseToolCall(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":null,"tool_calls":[{"function":{"name":"Echo","arguments":"{\"x\":\"1\"}"}}]}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "")
	p.BaseURL = srv.URL

	history := []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "calling"},
		{Role: "function", Content: "result"},
	}
	text, call, err := p.GenerateResponse(context.Background(), history, []Tool{&echoTool{name: "Echo"}})
	require.NoError(t, err)
	assert.Empty(t, text)
	require.NotNil(t, call)
	assert.Equal(t, "Echo", call.ToolName)
	assert.Equal(t, map[string]interface{}{"x": "1"}, call.Args)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, []string{"system", "user", "assistant", "user"},
		[]string{got.Messages[0].Role, got.Messages[1].Role, got.Messages[2].Role, got.Messages[3].Role})
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "function", got.Tools[0].Type)
	assert.Equal(t, "Echo", got.Tools[0].Function.Name)
}

func TestOpenAIGenerateResponseText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", "gpt-4o")
	p.BaseURL = srv.URL
	text, call, err := p.GenerateResponse(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, call)
	assert.Equal(t, "hello there", text)
}

func TestOpenAIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", "")
	p.BaseURL = srv.URL
	_, _, err := p.GenerateResponse(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")

	_, err = p.ListModels(context.Background())
	assert.Error(t, err)
}

func TestOpenAIListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"gpt-4o"},{"id":"text-embedding-3-small"},{"id":"o1-mini"},{"id":"whisper-1"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", "")
	p.BaseURL = srv.URL
	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "o1-mini"}, models)
}
