package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashScopeGenerate(t *testing.T) {
	var got dashScopeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":{"text":"你好","finish_reason":"stop"},"request_id":"r1"}`))
	}))
	defer srv.Close()

	client := NewDashScopeClient(srv.URL, "test-key", "qwen-turbo", time.Second)
	reply, err := client.Generate(context.Background(), "prompt text")

	require.NoError(t, err)
	assert.Equal(t, "你好", reply)
	assert.Equal(t, "qwen-turbo", got.Model)
	assert.Equal(t, "prompt text", got.Input.Prompt)
}

func TestDashScopeMissingOutputIsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	reply, err := NewDashScopeClient(srv.URL, "k", "m", time.Second).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestDashScopeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"InvalidApiKey","message":"Invalid API-key provided."}`))
	}))
	defer srv.Close()

	_, err := NewDashScopeClient(srv.URL, "bad", "m", time.Second).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "Invalid API-key provided.")
}

func TestDashScopeInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewDashScopeClient(srv.URL, "k", "m", time.Second).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDashScopeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := NewDashScopeClient(srv.URL, "k", "m", 50*time.Millisecond).Generate(context.Background(), "p")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDashScopeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewDashScopeClient(url, "k", "m", time.Second).Generate(context.Background(), "p")

	assert.Error(t, err)
}

func TestDashScopeEmptyPrompt(t *testing.T) {
	_, err := NewDashScopeClient("http://127.0.0.1:0", "k", "m", time.Second).Generate(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
