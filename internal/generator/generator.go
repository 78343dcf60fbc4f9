// Package generator fabricates sample research papers for detection
// exercises.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// DefaultDelay simulates model latency.
const DefaultDelay = 2 * time.Second

// Topics are the subjects a paper can be about.
var Topics = []string{
	"Machine Learning Applications in Climate Modeling",
	"Quantum Computing Algorithms for Drug Discovery",
	"Blockchain Technology in Healthcare Data Management",
	"Neural Networks for Autonomous Vehicle Navigation",
	"AI-Driven Personalized Medicine Approaches",
}

// DetectionHints lists the giveaways a generated paper may be annotated with.
var DetectionHints = []string{
	"Repetitive sentence structures",
	"Unusual statistical claims",
	"Generic methodology descriptions",
}

const (
	abstractTemplate = "This study presents a novel approach to %s. Through extensive experimentation with a dataset of 10,000 samples, we demonstrate significant improvements over existing methods. Our proposed algorithm achieves 94.2%% accuracy, representing a 15%% improvement over state-of-the-art approaches. The methodology combines advanced statistical techniques with modern computational frameworks. Results indicate substantial potential for real-world applications. These findings contribute meaningfully to the field and suggest directions for future research."

	introductionTemplate = "The field of %s has seen remarkable advances in recent years. However, existing approaches face several limitations that hinder practical implementation. This paper addresses these challenges through a novel methodology that combines theoretical foundations with empirical validation. Our contributions include: (1) development of an improved algorithmic framework, (2) comprehensive evaluation on benchmark datasets, and (3) analysis of real-world applicability. The remainder of this paper is organized as follows: Section 2 reviews related work, Section 3 presents our methodology, Section 4 discusses experimental results, and Section 5 concludes with future directions."

	datasetDescription = "Synthetically generated dataset with balanced class distribution and comprehensive feature coverage."
)

// Generator produces papers and records them in the store.
type Generator struct {
	store *state.Store
	delay time.Duration
	log   *logger.Logger
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithDelay overrides DefaultDelay. Zero disables the pause.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// WithSeed makes output reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator bound to store.
func New(store *state.Store, opts ...Option) *Generator {
	g := &Generator{
		store: store,
		delay: DefaultDelay,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.log = logger.OrNop(g.log).Named("generator")
	return g
}

// Generate waits out the simulated latency, builds a paper and publishes it.
// Cancelling ctx ends generation without a paper.
func (g *Generator) Generate(ctx context.Context) (*model.GeneratedPaper, error) {
	g.store.Dispatch(state.StartGeneration{})
	g.log.Info("generation started")

	if err := sleep(ctx, g.delay); err != nil {
		g.store.Dispatch(state.CompleteGeneration{})
		g.log.Warn("generation cancelled", "error", err)
		return nil, fmt.Errorf("generate paper: %w", err)
	}

	paper := g.build()
	g.store.Dispatch(state.SetGeneratedPaper{Paper: paper})
	if g.store.Snapshot().Preferences.SaveHistory {
		g.store.Dispatch(state.AddToHistory{Paper: paper})
	}
	g.store.Dispatch(state.AddNotification{
		Kind:    model.NotifySuccess,
		Title:   "Paper Generated",
		Message: "AI-generated paper is ready for review",
	})
	g.log.Info("generation finished", "paper_id", paper.ID, "title", paper.Title)
	return &paper, nil
}

func (g *Generator) build() model.GeneratedPaper {
	g.mu.Lock()
	defer g.mu.Unlock()

	topic := Topics[g.rng.Intn(len(Topics))]
	lower := strings.ToLower(topic)
	first := strings.Fields(topic)[0]

	dataset := model.Dataset{
		Name:        first + " Research Dataset v2.1",
		Samples:     g.rng.Intn(50000) + 5000,
		Features:    g.rng.Intn(20) + 5,
		Description: datasetDescription,
		Accuracy:    strconv.FormatFloat(g.rng.Float64()*10+90, 'f', 1, 64) + "%",
		Precision:   strconv.FormatFloat(g.rng.Float64()*5+92, 'f', 2, 64),
		Recall:      strconv.FormatFloat(g.rng.Float64()*5+91, 'f', 2, 64),
	}

	n := g.rng.Intn(3) + 2
	if n > len(DetectionHints) {
		n = len(DetectionHints)
	}

	return model.GeneratedPaper{
		ID:             uuid.NewString(),
		Title:          topic + ": A Comprehensive Analysis",
		Abstract:       fmt.Sprintf(abstractTemplate, lower),
		Introduction:   fmt.Sprintf(introductionTemplate, lower),
		Dataset:        dataset,
		AIGenerated:    true,
		DetectionHints: append([]string(nil), DetectionHints[:n]...),
		GeneratedAt:    g.now(),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
