package model

import "time"

// Verdict is the human-readable classification derived from a probability.
type Verdict string

const (
	VerdictLikelyAI    Verdict = "Likely AI-Generated"
	VerdictPossiblyAI  Verdict = "Possibly AI-Generated"
	VerdictLikelyHuman Verdict = "Likely Human-Written"
)

// VerdictFor maps an AI probability (0-100) onto a verdict using fixed
// thresholds: above 60, above 30, everything else.
func VerdictFor(probability float64) Verdict {
	switch {
	case probability > 60:
		return VerdictLikelyAI
	case probability > 30:
		return VerdictPossiblyAI
	default:
		return VerdictLikelyHuman
	}
}

// AnalysisResult is produced once per analysis run and never mutated.
type AnalysisResult struct {
	FileID             string          `json:"fileId"`
	Filename           string          `json:"filename"`
	AIProbability      float64         `json:"aiProbability"`
	Confidence         float64         `json:"confidence"`
	SuspiciousElements []string        `json:"suspiciousElements"`
	Verdict            Verdict         `json:"verdict"`
	Recommendations    []string        `json:"recommendations"`
	Detailed           DetailedMetrics `json:"detailedAnalysis"`
	CompletedAt        time.Time       `json:"completedAt"`
}

// DetailedMetrics carries the secondary scores shown next to a verdict.
type DetailedMetrics struct {
	SentenceComplexity  float64 `json:"sentenceComplexity"`
	VocabularyDiversity float64 `json:"vocabularyDiversity"`
	CoherenceScore      float64 `json:"coherenceScore"`
	CitationPattern     string  `json:"citationPattern"`
	StatisticalClaims   int     `json:"statisticalClaims"`
}
