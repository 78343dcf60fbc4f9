// Package processing runs long operations (analysis, generation) in the
// background. A single worker goroutine drains a buffered channel, so jobs
// run strictly in submission order and never overlap.
package processing

import (
	"context"
	"fmt"
	"sync"

	"github.com/dharsanguruparan/PaperProbe/internal/analysis"
	"github.com/dharsanguruparan/PaperProbe/internal/generator"
	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// DefaultQueueSize bounds pending jobs.
const DefaultQueueSize = 16

// Job is one unit of background work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// AnalyzeFileJob analyzes a single file.
func AnalyzeFileJob(o *analysis.Orchestrator, id string) Job {
	return Job{
		Name: "analyze:" + id,
		Run: func(ctx context.Context) error {
			_, err := o.AnalyzeFile(ctx, id)
			return err
		},
	}
}

// AnalyzeAllJob analyzes every pending file.
func AnalyzeAllJob(o *analysis.Orchestrator) Job {
	return Job{
		Name: "analyze-all",
		Run: func(ctx context.Context) error {
			_, err := o.AnalyzeAll(ctx)
			return err
		},
	}
}

// GenerateJob produces one paper.
func GenerateJob(g *generator.Generator) Job {
	return Job{
		Name: "generate",
		Run: func(ctx context.Context) error {
			_, err := g.Generate(ctx)
			return err
		},
	}
}

// Processor consumes Jobs on one worker goroutine.
type Processor struct {
	store   *state.Store
	queue   chan Job
	log     *logger.Logger
	pending sync.WaitGroup
	start   sync.Once

	// mu orders Submit against shutdown so no job lands in the queue after
	// the worker has drained it.
	mu      sync.Mutex
	stopped bool
}

// New builds a Processor. store receives a notification for every job that
// is dropped because the queue is full.
func New(store *state.Store, queueSize int, log *logger.Logger) *Processor {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Processor{
		store: store,
		queue: make(chan Job, queueSize),
		log:   logger.OrNop(log).Named("processing"),
	}
}

// Start launches the worker. It stops when ctx is done; jobs still queued
// at that point are discarded.
func (p *Processor) Start(ctx context.Context) {
	p.start.Do(func() {
		go p.worker(ctx)
	})
}

// Submit queues a job and reports whether it was accepted. Jobs submitted
// after the worker has stopped are rejected.
func (p *Processor) Submit(job Job) bool {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.log.Warn("processor stopped, rejecting job", "job", job.Name)
		return false
	}
	p.pending.Add(1)
	// A select with a default branch never blocks: when the buffered channel
	// is full the default case runs right away instead of waiting for space.
	select {
	case p.queue <- job:
		p.mu.Unlock()
		p.log.Debug("job queued", "job", job.Name)
		return true
	default:
		p.pending.Done()
		p.mu.Unlock()
	}
	p.log.Warn("processor queue full, dropping job", "job", job.Name)
	p.store.Dispatch(state.AddNotification{
		Kind:    model.NotifyError,
		Title:   "Task Rejected",
		Message: fmt.Sprintf("Too many pending tasks, %s was not started", job.Name),
	})
	return false
}

// Wait blocks until every accepted job has run or been discarded.
func (p *Processor) Wait() {
	p.pending.Wait()
}

func (p *Processor) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// flip stopped first; Submit checks it under the same lock, so
			// everything drained below is everything that will ever be queued
			p.mu.Lock()
			p.stopped = true
			p.mu.Unlock()
			p.drain()
			return
		case job := <-p.queue:
			p.process(ctx, job)
		}
	}
}

func (p *Processor) process(ctx context.Context, job Job) {
	// defer runs when process returns on any path, so Wait is always released.
	defer p.pending.Done()
	log := p.log.With("job", job.Name)
	if ctx.Err() != nil {
		log.Warn("discarding job on shutdown")
		return
	}
	log.Debug("job started")
	if err := job.Run(ctx); err != nil {
		log.Error("job failed", "error", err)
		return
	}
	log.Debug("job finished")
}

// drain releases waiters for jobs that will never run.
func (p *Processor) drain() {
	for {
		select {
		case job := <-p.queue:
			p.log.Warn("discarding job on shutdown", "job", job.Name)
			p.pending.Done()
		default:
			return
		}
	}
}
