package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// DefaultStageDelay is the pause before each stage completes.
const DefaultStageDelay = 500 * time.Millisecond

// Stages are reported in order; progress after stage i is (i+1)/len*100.
var Stages = []string{
	"Preprocessing text...",
	"Extracting features...",
	"Running AI detection algorithms...",
	"Analyzing writing patterns...",
	"Calculating confidence scores...",
	"Generating report...",
}

// Orchestrator drives files through the analysis stages and records the
// outcome in the store.
type Orchestrator struct {
	store  *state.Store
	scorer Scorer
	delay  time.Duration
	log    *logger.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStageDelay overrides DefaultStageDelay. Zero disables the pause.
func WithStageDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator. A nil scorer falls back to a time-seeded
// RandomScorer.
func New(store *state.Store, scorer Scorer, opts ...Option) *Orchestrator {
	if scorer == nil {
		scorer = NewRandomScorer(time.Now().UnixNano())
	}
	o := &Orchestrator{store: store, scorer: scorer, delay: DefaultStageDelay}
	for _, opt := range opts {
		opt(o)
	}
	o.log = logger.OrNop(o.log).Named("analysis")
	return o
}

// AnalyzeFile runs one file through every stage. Unknown files and files not
// in the uploaded state are ignored and yield (nil, nil).
func (o *Orchestrator) AnalyzeFile(ctx context.Context, id string) (*model.AnalysisResult, error) {
	f, ok := o.store.Snapshot().File(id)
	if !ok || f.Status != model.StatusUploaded {
		return nil, nil
	}
	return o.run(ctx, f)
}

// AnalyzeAll analyzes every pending file strictly one after another and
// returns how many were attempted.
func (o *Orchestrator) AnalyzeAll(ctx context.Context) (int, error) {
	pending := o.store.Snapshot().PendingAnalysis()
	if len(pending) == 0 {
		o.notify(model.NotifyWarning, "No Files to Analyze", "Please upload files first")
		return 0, nil
	}

	o.notify(model.NotifyInfo, "Batch Analysis Started", fmt.Sprintf("Analyzing %d file(s)", len(pending)))

	for _, f := range pending {
		// a file may have been removed or analyzed while earlier ones ran
		current, ok := o.store.Snapshot().File(f.ID)
		if !ok || current.Status != model.StatusUploaded {
			continue
		}
		if _, err := o.run(ctx, current); err != nil {
			return 0, fmt.Errorf("batch analysis: %w", err)
		}
	}

	o.notify(model.NotifySuccess, "Batch Analysis Complete", fmt.Sprintf("Completed analysis of %d file(s)", len(pending)))
	return len(pending), nil
}

// run wraps one file's analysis in the analyzing flag. The flag is cleared
// before the success notification goes out.
func (o *Orchestrator) run(ctx context.Context, f model.FileRecord) (*model.AnalysisResult, error) {
	o.store.Dispatch(state.StartAnalysis{})
	result, err := o.analyze(ctx, f)
	o.store.Dispatch(state.CompleteAnalysis{})
	if result != nil {
		o.announce(f.Name)
	}
	return result, err
}

// analyze runs the stages for one file. It leaves the analyzing flag and the
// success notification to the caller.
func (o *Orchestrator) analyze(ctx context.Context, f model.FileRecord) (*model.AnalysisResult, error) {
	log := o.log.With("file_id", f.ID, "name", f.Name)
	log.Info("analysis started")
	o.store.Dispatch(state.StartFileProcessing{ID: f.ID})

	for i, stage := range Stages {
		if err := sleep(ctx, o.delay); err != nil {
			log.Warn("analysis cancelled", "stage", stage)
			o.store.Dispatch(state.CompleteFileProcessing{ID: f.ID, Status: model.StatusError, Message: "analysis cancelled"})
			return nil, fmt.Errorf("analyze %s: %w", f.Name, err)
		}
		progress := float64(i+1) / float64(len(Stages)) * 100
		o.store.Dispatch(state.UpdateFileProgress{ID: f.ID, Progress: state.Progress(progress)})
		log.Debug("stage complete", "stage", stage, "progress", progress)
	}

	current, ok := o.store.Snapshot().File(f.ID)
	if !ok || current.Status != model.StatusProcessing {
		log.Info("file left the registry during analysis")
		return nil, nil
	}

	result, err := o.scorer.Score(ctx, current)
	if err != nil {
		log.Error("scoring failed", "error", err)
		o.store.Dispatch(state.CompleteFileProcessing{ID: f.ID, Status: model.StatusError, Message: err.Error()})
		o.store.Dispatch(state.AddError{Source: "analysis", Message: fmt.Sprintf("%s: %v", f.Name, err)})
		o.notify(model.NotifyError, "Analysis Failed", fmt.Sprintf("Analysis failed for %s", f.Name))
		return nil, fmt.Errorf("score %s: %w", f.Name, err)
	}
	result.FileID = f.ID
	result.Filename = f.Name

	o.store.Dispatch(state.SetAnalysisResult{Result: result})
	o.store.Dispatch(state.CompleteFileProcessing{ID: f.ID})
	log.Info("analysis finished", "verdict", result.Verdict, "probability", result.AIProbability)
	return &result, nil
}

func (o *Orchestrator) announce(name string) {
	o.notify(model.NotifySuccess, "Analysis Complete", fmt.Sprintf("Analysis completed for %s", name))
}

func (o *Orchestrator) notify(kind model.NotificationKind, title, message string) {
	o.store.Dispatch(state.AddNotification{Kind: kind, Title: title, Message: message})
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	// select blocks until one case is ready: the timer firing or the
	// context being cancelled, whichever comes first.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
