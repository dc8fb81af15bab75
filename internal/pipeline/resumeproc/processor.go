package resumeproc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"resumerank/constants"
	"resumerank/internal/extract"
	"resumerank/internal/llm"
)

// Config holds thresholds for the per-resume step.
type Config struct {
	MinTextLength int // resumes with less extracted text are not sent to the model; default 50
}

// Result is the uniformly-shaped outcome for one resume. Every field is
// always populated so the orchestrator persists it without branching on
// shape; exactly one of the four outcome statuses is set and
// CompatibilityScore is 0 unless the status is ranked.
type Result struct {
	FileName           string
	Status             constants.ResumeStatus
	ExtractedInfo      json.RawMessage
	RankingAnalysis    json.RawMessage
	CompatibilityScore int
	CandidateName      string
	CandidateEmail     string
	ErrorDetail        string
}

// Processor runs the full per-resume step: text extraction then one
// extraction/scoring call.
type Processor struct {
	Logger    *slog.Logger
	Cfg       Config
	Extractor extract.TextExtractor
	Analyzer  llm.ResumeAnalyzer
}

func NewProcessor(logger *slog.Logger, cfg Config, tx extract.TextExtractor, az llm.ResumeAnalyzer) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 50
	}
	return &Processor{Logger: logger, Cfg: cfg, Extractor: tx, Analyzer: az}
}

// Process evaluates one resume PDF against the job context. It never returns
// an error: the caller fans out many of these concurrently and one bad
// document must not abort the batch, so every fault is absorbed into the
// result's own status.
func (p *Processor) Process(ctx context.Context, pdfPath, jobDescription, jobTitle string) (res Result) {
	fileName := filepath.Base(pdfPath)
	res = emptyResult(fileName)

	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("resumeproc.panic", "file", fileName, "panic", r)
			res = emptyResult(fileName)
			res.Status = constants.ResumeStatusFailedRanking
			res.ErrorDetail = fmt.Sprintf("unexpected fault: %v", r)
		}
	}()

	ext, err := p.Extractor.Extract(ctx, pdfPath)
	if err != nil || ext.Text == "" {
		p.Logger.Warn("resumeproc.extraction_failed", "file", fileName, "error", err)
		res.Status = constants.ResumeStatusFailedExtraction
		if err != nil {
			res.ErrorDetail = err.Error()
		}
		return res
	}

	if len(ext.Text) < p.Cfg.MinTextLength {
		p.Logger.Warn("resumeproc.text_too_short", "file", fileName, "text_len", len(ext.Text), "min", p.Cfg.MinTextLength)
		res.Status = constants.ResumeStatusTextTooShort
		return res
	}

	analysis, err := p.Analyzer.AnalyzeResume(ctx, llm.AnalyzeRequest{
		ResumeText:     ext.Text,
		JobDescription: jobDescription,
		JobTitle:       jobTitle,
	})
	if err != nil || analysis == nil {
		p.Logger.Warn("resumeproc.ranking_failed", "file", fileName, "error", err)
		res.Status = constants.ResumeStatusFailedRanking
		if err != nil {
			res.ErrorDetail = err.Error()
		}
		return res
	}

	res.Status = constants.ResumeStatusRanked
	if len(analysis.ExtractedInfo) > 0 {
		res.ExtractedInfo = analysis.ExtractedInfo
	}
	if len(analysis.RankingAnalysis) > 0 {
		res.RankingAnalysis = analysis.RankingAnalysis
	}
	res.CompatibilityScore = llm.ProjectScore(analysis.RankingAnalysis)
	res.CandidateName, res.CandidateEmail = llm.ProjectCandidate(analysis.ExtractedInfo)

	p.Logger.Info("resumeproc.ok",
		"file", fileName,
		"score", res.CompatibilityScore,
		"candidate", res.CandidateName,
	)
	return res
}

// emptyResult is the baseline shape shared by every outcome: empty JSON
// parts, zero score, placeholder candidate fields.
func emptyResult(fileName string) Result {
	return Result{
		FileName:           fileName,
		ExtractedInfo:      json.RawMessage(`{}`),
		RankingAnalysis:    json.RawMessage(`{"CompatibilityScore": 0, "Strengths": []}`),
		CompatibilityScore: 0,
		CandidateName:      llm.DefaultCandidateField,
		CandidateEmail:     llm.DefaultCandidateField,
	}
}
