package llm

import (
	"context"
	"encoding/json"
)

// AnalyzeRequest carries one resume plus the job context it is scored against.
type AnalyzeRequest struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
}

// Analysis is the two-part reply from the extraction/scoring service. Both
// parts are kept as raw JSON: the model's values are free-form and the only
// shape we enforce is the presence of the two top-level keys.
type Analysis struct {
	ExtractedInfo   json.RawMessage `json:"extracted_info"`
	RankingAnalysis json.RawMessage `json:"ranking_analysis"`
}

// ResumeAnalyzer is the interface the pipelines depend on. Implementations
// talk to an unreliable external service: every fault kind (timeout, rate
// limit, malformed payload, connection error) surfaces as an ordinary error,
// and callers must treat all of them uniformly as "service unavailable".
type ResumeAnalyzer interface {
	// ExtractJobTitle derives the main job title from job-description text.
	ExtractJobTitle(ctx context.Context, jobDescription string) (string, error)

	// AnalyzeResume extracts candidate info from the resume and scores it
	// against the job description.
	AnalyzeResume(ctx context.Context, req AnalyzeRequest) (*Analysis, error)
}

// PlaceholderJobTitle substitutes for a title the service could not provide.
// An unavailable title never fails the job-description pipeline.
const PlaceholderJobTitle = "Unknown Job Title"
