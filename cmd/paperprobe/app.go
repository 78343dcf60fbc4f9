package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/analysis"
	"github.com/dharsanguruparan/PaperProbe/internal/config"
	"github.com/dharsanguruparan/PaperProbe/internal/database"
	"github.com/dharsanguruparan/PaperProbe/internal/generator"
	"github.com/dharsanguruparan/PaperProbe/internal/ingest"
	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/notify"
	"github.com/dharsanguruparan/PaperProbe/internal/persist"
	"github.com/dharsanguruparan/PaperProbe/internal/processing"
	"github.com/dharsanguruparan/PaperProbe/internal/repository"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
	"github.com/dharsanguruparan/PaperProbe/internal/storage"
)

// app is the process-wide object graph behind every command.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	stdout io.Writer
	stderr io.Writer

	store        *state.Store
	processor    *processing.Processor
	orchestrator *analysis.Orchestrator
	generator    *generator.Generator
	ingestor     *ingest.Ingestor

	expirer *notify.Expirer
	closers []func()
	stop    context.CancelFunc
}

func newApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &app{cfg: cfg, log: log, stdout: stdout, stderr: stderr}

	kv, err := a.openKV(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	seed := persist.Load(ctx, kv, cfg.PrefersDark, log)
	a.store = state.New(persist.Initial(seed), state.WithLogger(log.Named("state")))

	syncer := persist.NewSyncer(kv, log, func(theme string) {
		log.Debug("theme applied", "theme", theme)
	})
	a.closers = append(a.closers, syncer.Attach(a.store))
	a.closers = append(a.closers, a.store.Subscribe(notificationPrinter(stderr)))

	mode := notify.NewestOnly
	if cfg.PerNotificationExpiry {
		mode = notify.PerNotification
	}
	a.expirer = notify.New(a.store, notify.WithTTL(cfg.NotificationTTL), notify.WithMode(mode), notify.WithLogger(log))

	a.orchestrator = analysis.New(a.store, analysis.NewRandomScorer(time.Now().UnixNano()),
		analysis.WithStageDelay(cfg.StageDelay), analysis.WithLogger(log))
	a.generator = generator.New(a.store, generator.WithDelay(cfg.GenerationDelay), generator.WithLogger(log))

	runCtx, stop := context.WithCancel(ctx)
	a.stop = stop
	a.processor = processing.New(a.store, cfg.QueueSize, log)
	a.processor.Start(runCtx)

	a.ingestor = ingest.New(a.store,
		ingest.WithWorkers(cfg.ExtractWorkers),
		ingest.WithLogger(log),
		ingest.WithAutoAnalyze(func(ids []string) {
			a.processor.Submit(processing.AnalyzeAllJob(a.orchestrator))
		}),
	)
	return a, nil
}

// openKV selects the persistence backend named by the config.
func (a *app) openKV(ctx context.Context) (storage.KV, error) {
	switch a.cfg.StoreBackend {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StorePostgres:
		pool, err := database.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return nil, err
		}
		return repository.NewKVRepository(pool), nil
	default:
		return storage.NewFileStore(a.cfg.StatePath), nil
	}
}

// Close waits for background work and releases resources in reverse order.
func (a *app) Close() {
	if a.processor != nil {
		a.processor.Wait()
	}
	if a.ingestor != nil {
		a.ingestor.Wait()
	}
	if a.stop != nil {
		a.stop()
	}
	if a.expirer != nil {
		a.expirer.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.log.Sync()
}
