package llm

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map for the combined extract-and-score reply. Only the two top-level
// keys are required; the nested candidate fields are model-supplied free-form
// strings and string lists, so they stay unconstrained.
func BuildAnalysisJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"extracted_info": map[string]any{"type": "object"},
			"ranking_analysis": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"Strengths": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
		"required": []string{"extracted_info", "ranking_analysis"},
	}
}

// BuildJobTitleJSONSchema returns the schema for the title-derivation reply.
func BuildJobTitleJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"JobTitle": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"JobTitle"},
	}
}
