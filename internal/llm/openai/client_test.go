package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumerank/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, nil)
}

// completionReply wraps content in the chat/completions envelope.
func completionReply(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
	return b
}

func TestExtractJobTitle(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]any
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.Equal(t, "/chat/completions", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write(completionReply(t, `{"JobTitle": "Backend Engineer"}`))
		})

		title, err := c.ExtractJobTitle(context.Background(), "We are hiring a backend engineer...")
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", title)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "llama-3.1-8b-instant", gotBody["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, gotBody["response_format"])
	})

	t.Run("fenced reply", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, "```json\n{\"JobTitle\": \"Data Analyst\"}\n```"))
		})

		title, err := c.ExtractJobTitle(context.Background(), "jd text")
		require.NoError(t, err)
		assert.Equal(t, "Data Analyst", title)
	})

	t.Run("title surrounded by whitespace", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, `{"JobTitle": "  QA Engineer  "}`))
		})

		title, err := c.ExtractJobTitle(context.Background(), "jd text")
		require.NoError(t, err)
		assert.Equal(t, "QA Engineer", title)
	})

	t.Run("schema violation", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, `{"JobTitle": ""}`))
		})

		_, err := c.ExtractJobTitle(context.Background(), "jd text")
		assert.ErrorContains(t, err, "schema validation failed")
	})

	t.Run("http error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})

		_, err := c.ExtractJobTitle(context.Background(), "jd text")
		assert.ErrorContains(t, err, "llm status 429")
	})

	t.Run("no choices", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		})

		_, err := c.ExtractJobTitle(context.Background(), "jd text")
		assert.ErrorContains(t, err, "no choices")
	})
}

func TestAnalyzeResume(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, `{
				"extracted_info": {"Name": "Ada Lovelace", "Email": "ada@example.com"},
				"ranking_analysis": {"CompatibilityScore": 85, "Strengths": ["Go"]}
			}`))
		})

		analysis, err := c.AnalyzeResume(context.Background(), llm.AnalyzeRequest{
			ResumeText:     "resume text",
			JobDescription: "jd text",
			JobTitle:       "Backend Engineer",
		})
		require.NoError(t, err)
		assert.Equal(t, 85, llm.ProjectScore(analysis.RankingAnalysis))
		name, email := llm.ProjectCandidate(analysis.ExtractedInfo)
		assert.Equal(t, "Ada Lovelace", name)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("missing required part", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, `{"extracted_info": {}}`))
		})

		_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeRequest{ResumeText: "x"})
		assert.ErrorContains(t, err, "schema validation failed")
	})

	t.Run("non-json reply", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, "I'm sorry, I can't help with that."))
		})

		_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeRequest{ResumeText: "x"})
		assert.Error(t, err)
	})

	t.Run("context cancelled", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionReply(t, `{"extracted_info": {}, "ranking_analysis": {}}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.AnalyzeResume(ctx, llm.AnalyzeRequest{ResumeText: "x"})
		assert.Error(t, err)
	})
}
