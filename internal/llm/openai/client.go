package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumerank/internal/llm"
)

// ExtractJobTitle implements llm.ResumeAnalyzer. Any communication or shape
// fault comes back as an error; callers substitute llm.PlaceholderJobTitle
// instead of failing their pipeline.
func (c *Client) ExtractJobTitle(ctx context.Context, jobDescription string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.title.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(jobDescription),
	)

	raw, err := c.chatJSON(ctx, buildJobTitlePrompt(jobDescription))
	if err != nil {
		c.log.Error("llm.title.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	if err := llm.ValidateJSONAgainstSchema(llm.BuildJobTitleJSONSchema(), raw); err != nil {
		c.log.Error("llm.title.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("schema validation failed: %w", err)
	}

	var out struct {
		JobTitle string `json:"JobTitle"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("unmarshal title: %w", err)
	}

	title := strings.TrimSpace(out.JobTitle)
	c.log.Info("llm.title.ok",
		"req_id", rid, "title", title,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return title, nil
}

// AnalyzeResume implements llm.ResumeAnalyzer: one call extracts candidate
// info and scores the resume against the job description.
func (c *Client) AnalyzeResume(ctx context.Context, req llm.AnalyzeRequest) (*llm.Analysis, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.analyze.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"resume_len", len(req.ResumeText),
		"jd_len", len(req.JobDescription),
		"job_title", req.JobTitle,
	)

	raw, err := c.chatJSON(ctx, buildAnalyzePrompt(req.ResumeText, req.JobDescription, req.JobTitle))
	if err != nil {
		c.log.Error("llm.analyze.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	if err := llm.ValidateJSONAgainstSchema(llm.BuildAnalysisJSONSchema(), raw); err != nil {
		c.log.Error("llm.analyze.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}

	c.log.Info("llm.analyze.ok",
		"req_id", rid,
		"score", llm.ProjectScore(out.RankingAnalysis),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, nil
}

// chatJSON sends one user prompt requesting a strict-JSON reply and returns
// the cleaned JSON content of the first choice.
func (c *Client) chatJSON(ctx context.Context, prompt string) ([]byte, error) {
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := llm.CleanJSONResponse(cc.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("empty completion content")
	}
	return []byte(content), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("llm response body close error", "error", cerr)
		}
	}()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("llm status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}
