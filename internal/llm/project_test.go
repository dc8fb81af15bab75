package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"integer", `{"CompatibilityScore": 85}`, 85},
		{"float truncated", `{"CompatibilityScore": 72.9}`, 72},
		{"numeric string", `{"CompatibilityScore": "64"}`, 64},
		{"float string", `{"CompatibilityScore": "64.5"}`, 64},
		{"non-numeric string", `{"CompatibilityScore": "high"}`, 0},
		{"missing key", `{"Strengths": ["Go"]}`, 0},
		{"null value", `{"CompatibilityScore": null}`, 0},
		{"not an object", `[1, 2, 3]`, 0},
		{"malformed", `{`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectScore(json.RawMessage(tt.in)))
		})
	}

	t.Run("empty part", func(t *testing.T) {
		assert.Equal(t, 0, ProjectScore(nil))
	})
}

func TestProjectCandidate(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`{"Name": "Ada Lovelace", "Email": "ada@example.com"}`))
		assert.Equal(t, "Ada Lovelace", name)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`{"Name": "  Ada  ", "Email": " ada@example.com "}`))
		assert.Equal(t, "Ada", name)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("blank values default", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`{"Name": "   ", "Email": ""}`))
		assert.Equal(t, DefaultCandidateField, name)
		assert.Equal(t, DefaultCandidateField, email)
	})

	t.Run("missing keys default", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`{"Skills": ["Go"]}`))
		assert.Equal(t, DefaultCandidateField, name)
		assert.Equal(t, DefaultCandidateField, email)
	})

	t.Run("non-string values default", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`{"Name": 42, "Email": ["a@b.c"]}`))
		assert.Equal(t, DefaultCandidateField, name)
		assert.Equal(t, DefaultCandidateField, email)
	})

	t.Run("empty part", func(t *testing.T) {
		name, email := ProjectCandidate(nil)
		assert.Equal(t, DefaultCandidateField, name)
		assert.Equal(t, DefaultCandidateField, email)
	})

	t.Run("malformed part", func(t *testing.T) {
		name, email := ProjectCandidate(json.RawMessage(`not json`))
		assert.Equal(t, DefaultCandidateField, name)
		assert.Equal(t, DefaultCandidateField, email)
	})
}
