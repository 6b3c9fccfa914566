package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"upwatch/internal/domain"
	"upwatch/internal/probe"
	"upwatch/internal/repo"
)

// Engine is the background scheduler: every Interval it snapshots all
// registered websites, probes each one and persists the outcome as one
// history row followed by a status update.
type Engine struct {
	Logger      *zap.Logger
	Websites    repo.WebsiteStore
	History     repo.HistoryStore
	Checker     probe.Checker
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
}

func NewEngine(
	logger *zap.Logger,
	ws repo.WebsiteStore,
	hs repo.HistoryStore,
	checker probe.Checker,
	interval time.Duration,
	timeout time.Duration,
	concurrency int,
) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	if interval < 0 {
		interval = 0
	}
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Engine{
		Logger:      logger,
		Websites:    ws,
		History:     hs,
		Checker:     checker,
		Interval:    interval,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Run starts the loop and blocks until ctx is cancelled. There is no
// immediate pass: the first cycle fires one full interval after start.
func (e *Engine) Run(ctx context.Context) {
	if e.Interval == 0 {
		e.Logger.Info("engine_disabled")
		return
	}
	e.Logger.Info("engine_started", zap.Duration("interval", e.Interval))

	t := time.NewTicker(e.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Logger.Info("engine_stopped")
			return
		case <-t.C:
			e.runCycle(ctx)
		}
	}
}

// runCycle is one full pass. A snapshot failure skips the cycle; any
// per-website failure is logged and the pass moves on. Nothing retries.
func (e *Engine) runCycle(ctx context.Context) {
	sites, err := e.Websites.GetAllWebsites(ctx)
	if err != nil {
		e.Logger.Warn("engine_snapshot_error", zap.Error(err))
		return
	}
	if len(sites) == 0 {
		return
	}
	e.Logger.Debug("engine_cycle", zap.Int("websites", len(sites)))

	sem := make(chan struct{}, e.Concurrency)
	var wg sync.WaitGroup

	for _, site := range sites {
		w := site
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			e.checkOne(ctx, w)
		}()
	}

	wg.Wait()
}

// checkOne probes outside any store call, then writes history before
// status. Both writes happen in this goroutine, so per-website ordering
// holds even with a concurrent pool.
func (e *Engine) checkOne(ctx context.Context, w *domain.Website) {
	cctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	out := e.Checker.Check(cctx, w.URL)

	if _, err := e.History.RecordCheck(ctx, w.ID, out); err != nil {
		e.Logger.Warn("engine_record_error",
			zap.String("website_id", string(w.ID)),
			zap.String("url", w.URL),
			zap.Error(err),
		)
	}
	if err := e.History.UpdateWebsiteStatus(ctx, w.ID, out.IsUp, out.ResponseTimeMS); err != nil {
		e.Logger.Warn("engine_status_error",
			zap.String("website_id", string(w.ID)),
			zap.String("url", w.URL),
			zap.Error(err),
		)
		return
	}

	e.Logger.Debug("engine_checked",
		zap.String("website_id", string(w.ID)),
		zap.String("url", w.URL),
		zap.Bool("up", out.IsUp),
	)
}
