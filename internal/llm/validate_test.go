package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysisSchema(t *testing.T) {
	schema := BuildAnalysisJSONSchema()

	t.Run("complete reply", func(t *testing.T) {
		data := []byte(`{
			"extracted_info": {"Name": "Ada", "Email": "ada@example.com"},
			"ranking_analysis": {"CompatibilityScore": 85, "Strengths": ["Go", "Postgres"]}
		}`)
		require.NoError(t, ValidateJSONAgainstSchema(schema, data))
	})

	t.Run("empty parts still valid", func(t *testing.T) {
		data := []byte(`{"extracted_info": {}, "ranking_analysis": {}}`)
		require.NoError(t, ValidateJSONAgainstSchema(schema, data))
	})

	t.Run("missing ranking_analysis", func(t *testing.T) {
		data := []byte(`{"extracted_info": {}}`)
		assert.Error(t, ValidateJSONAgainstSchema(schema, data))
	})

	t.Run("extracted_info not an object", func(t *testing.T) {
		data := []byte(`{"extracted_info": "Ada", "ranking_analysis": {}}`)
		assert.Error(t, ValidateJSONAgainstSchema(schema, data))
	})

	t.Run("strengths with non-strings", func(t *testing.T) {
		data := []byte(`{"extracted_info": {}, "ranking_analysis": {"Strengths": [1, 2]}}`)
		assert.Error(t, ValidateJSONAgainstSchema(schema, data))
	})

	t.Run("malformed json", func(t *testing.T) {
		assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{`)))
	})
}

func TestValidateJobTitleSchema(t *testing.T) {
	schema := BuildJobTitleJSONSchema()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"JobTitle": "Backend Engineer"}`)))
	})

	t.Run("empty title", func(t *testing.T) {
		assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"JobTitle": ""}`)))
	})

	t.Run("missing title", func(t *testing.T) {
		assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"Title": "x"}`)))
	})
}
