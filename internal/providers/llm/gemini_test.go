package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	}))
	defer server.Close()

	g := NewGeminiWithBaseURL(server.URL, "secret", "gemini-2.0-flash-001")
	text, err := g.Generate(context.Background(), "say hi")

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash-001:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "say hi", gotBody.Contents[0].Parts[0].Text)
}

func TestGeminiGenerateRateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "http 429",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
		},
		{
			name:   "resource exhausted status",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"Quota exceeded for quota metric","status":"RESOURCE_EXHAUSTED"}}`,
		},
		{
			name:   "429 with unparseable body",
			status: http.StatusTooManyRequests,
			body:   `too many requests`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g := NewGeminiWithBaseURL(server.URL, "k", "m")
			_, err := g.Generate(context.Background(), "p")

			require.Error(t, err)
			assert.True(t, core.IsRateLimit(err), "expected a rate limit error, got %v", err)
		})
	}
}

func TestGeminiGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	g := NewGeminiWithBaseURL(server.URL, "bad", "m")
	_, err := g.Generate(context.Background(), "p")

	require.Error(t, err)
	assert.False(t, core.IsRateLimit(err))
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g := NewGeminiWithBaseURL(server.URL, "k", "m")
	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
}
