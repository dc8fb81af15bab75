package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Wire keys inside the model-supplied JSON parts.
const (
	keyCompatibilityScore = "CompatibilityScore"
	keyCandidateName      = "Name"
	keyCandidateEmail     = "Email"
)

// DefaultCandidateField is stored when the model supplied no usable value.
const DefaultCandidateField = "N/A"

// ProjectScore pulls the compatibility score out of a raw ranking_analysis
// part and coerces it to an integer. Missing part, missing key, or a
// non-numeric value all project to 0.
func ProjectScore(rankingAnalysis json.RawMessage) int {
	if len(rankingAnalysis) == 0 {
		return 0
	}
	var m map[string]any
	if err := json.Unmarshal(rankingAnalysis, &m); err != nil {
		return 0
	}
	return coerceInt(m[keyCompatibilityScore])
}

// ProjectCandidate pulls the candidate's name and email out of a raw
// extracted_info part, defaulting each to "N/A" when absent or blank.
func ProjectCandidate(extractedInfo json.RawMessage) (name, email string) {
	name, email = DefaultCandidateField, DefaultCandidateField
	if len(extractedInfo) == 0 {
		return name, email
	}
	var m map[string]any
	if err := json.Unmarshal(extractedInfo, &m); err != nil {
		return name, email
	}
	if v, ok := m[keyCandidateName].(string); ok && strings.TrimSpace(v) != "" {
		name = strings.TrimSpace(v)
	}
	if v, ok := m[keyCandidateEmail].(string); ok && strings.TrimSpace(v) != "" {
		email = strings.TrimSpace(v)
	}
	return name, email
}

func coerceInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}
