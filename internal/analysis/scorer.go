// Package analysis runs the simulated AI-detection pipeline over registered
// files, one file and one stage at a time.
package analysis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

// SuspiciousPatterns is the vocabulary a scorer may flag.
var SuspiciousPatterns = []string{
	"Repetitive sentence structures",
	"Unusual statistical claims",
	"Generic methodology descriptions",
	"Inconsistent citation patterns",
	"Overly perfect language flow",
	"Missing experimental nuances",
}

// Recommendations are attached to every result.
var Recommendations = []string{
	"Cross-reference citations for authenticity",
	"Verify statistical claims with original data",
	"Check for logical consistency in methodology",
	"Assess novelty of claimed contributions",
}

// Scorer produces a detection result for one file.
type Scorer interface {
	Score(ctx context.Context, file model.FileRecord) (model.AnalysisResult, error)
}

// RandomScorer fabricates plausible results from a pseudo-random source.
// It is safe for concurrent use.
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewRandomScorer seeds the scorer; equal seeds give equal results.
func NewRandomScorer(seed int64) *RandomScorer {
	return &RandomScorer{
		rng: rand.New(rand.NewSource(seed)),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Score implements Scorer.
func (r *RandomScorer) Score(ctx context.Context, file model.FileRecord) (model.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AnalysisResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	probability := r.rng.Float64() * 100
	confidence := r.rng.Float64()*30 + 70

	elements := make([]string, 0, len(SuspiciousPatterns))
	for _, p := range SuspiciousPatterns {
		if r.rng.Float64() > 0.6 {
			elements = append(elements, p)
		}
	}

	citation := "Irregular"
	complexity := r.rng.Float64()*10 + 1
	diversity := r.rng.Float64() * 100
	coherence := r.rng.Float64() * 10
	if r.rng.Float64() > 0.5 {
		citation = "Regular"
	}

	return model.AnalysisResult{
		FileID:             file.ID,
		Filename:           file.Name,
		AIProbability:      probability,
		Confidence:         confidence,
		SuspiciousElements: elements,
		Verdict:            model.VerdictFor(probability),
		Recommendations:    append([]string(nil), Recommendations...),
		Detailed: model.DetailedMetrics{
			SentenceComplexity:  complexity,
			VocabularyDiversity: diversity,
			CoherenceScore:      coherence,
			CitationPattern:     citation,
			StatisticalClaims:   r.rng.Intn(20),
		},
		CompletedAt: r.now(),
	}, nil
}
