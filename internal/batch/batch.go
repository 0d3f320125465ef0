// Package batch derives many hands concurrently. Results come back in input
// order regardless of which worker finished first.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/hand"
	"github.com/lox/handstats/internal/handfile"
	"github.com/lox/handstats/internal/metrics"
)

// Item is the outcome for one input. A malformed hand carries both a
// partial Result and its error.
type Item struct {
	Index  int
	Source string
	Result *derive.Result
	Err    error
}

// Report summarises one run.
type Report struct {
	RunID      string
	ImportTime time.Time
	Items      []Item
	Processed  int
	Failed     int
}

// Runner derives hands with a pool of workers, each with its own Engine.
type Runner struct {
	logger    *log.Logger
	workers   int
	clock     quartz.Clock
	metrics   *metrics.Manager
	newEngine func() *derive.Engine
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithWorkers sets the pool size. Zero or less means one per CPU.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithClock sets the clock used to stamp import times.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithMetrics records per-hand metrics on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithEngine sets the factory called once per worker.
func WithEngine(newEngine func() *derive.Engine) Option {
	return func(r *Runner) { r.newEngine = newEngine }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:    log.New(io.Discard),
		workers:   runtime.NumCPU(),
		clock:     quartz.NewReal(),
		newEngine: func() *derive.Engine { return derive.NewEngine() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// job loads one hand. Decode errors are reported per item.
type job struct {
	source string
	load   func() (*hand.Hand, error)
}

// RunFiles decodes and derives every hand file in paths.
func (r *Runner) RunFiles(ctx context.Context, paths []string) (*Report, error) {
	jobs := make([]job, len(paths))
	for i, path := range paths {
		jobs[i] = job{source: path, load: func() (*hand.Hand, error) { return handfile.DecodeFile(path) }}
	}
	return r.run(ctx, jobs)
}

// RunHands derives hands that are already in memory.
func (r *Runner) RunHands(ctx context.Context, hands []*hand.Hand) (*Report, error) {
	jobs := make([]job, len(hands))
	for i, h := range hands {
		jobs[i] = job{source: h.Source, load: func() (*hand.Hand, error) { return h, nil }}
	}
	return r.run(ctx, jobs)
}

func (r *Runner) run(ctx context.Context, jobs []job) (*Report, error) {
	report := &Report{
		RunID:      uuid.NewString(),
		ImportTime: r.clock.Now().UTC(),
		Items:      make([]Item, len(jobs)),
	}
	logger := r.logger.With("run", report.RunID)
	started := r.clock.Now()
	r.metrics.BatchStarted()

	workers := min(r.workers, len(jobs))
	logger.Info("Starting batch", "hands", len(jobs), "workers", workers)

	indexes := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indexes)
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			engine := r.newEngine()
			for i := range indexes {
				// Each index is owned by exactly one worker.
				report.Items[i] = r.derive(engine, logger, jobs[i], i, report.ImportTime)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", report.RunID, err)
	}

	for _, item := range report.Items {
		if item.Err != nil {
			report.Failed++
		} else {
			report.Processed++
		}
	}
	took := r.clock.Since(started)
	r.metrics.BatchFinished(took)
	logger.Info("Batch finished", "processed", report.Processed, "failed", report.Failed, "took", took)
	return report, nil
}

func (r *Runner) derive(engine *derive.Engine, logger *log.Logger, j job, index int, imported time.Time) Item {
	item := Item{Index: index, Source: j.source}

	h, err := j.load()
	if err != nil {
		logger.Warn("Skipping undecodable hand", "source", j.source, "err", err)
		r.metrics.RecordFailure(metrics.ReasonDecode)
		item.Err = err
		return item
	}
	if item.Source == "" {
		item.Source = h.HandID
	}

	r.metrics.WorkerBusy(1)
	started := r.clock.Now()
	res, err := engine.Derive(h)
	took := r.clock.Since(started)
	r.metrics.WorkerBusy(-1)

	if res != nil {
		res.Hand.ImportTime = imported
	}
	item.Result = res
	item.Err = err

	switch {
	case err == nil:
		r.metrics.RecordHand(len(res.Players), len(res.Pots), took)
	case derive.IsMalformed(err):
		logger.Warn("Malformed hand", "source", item.Source, "err", err)
		r.metrics.RecordFailure(metrics.ReasonMalformed)
	case isInvalid(err):
		logger.Warn("Invalid hand", "source", item.Source, "err", err)
		r.metrics.RecordFailure(metrics.ReasonInvalid)
	default:
		logger.Error("Derivation failed", "source", item.Source, "err", err)
		r.metrics.RecordFailure(metrics.ReasonError)
	}
	return item
}

var invalidHand = []error{
	hand.ErrNoPlayers,
	hand.ErrDuplicateSeat,
	hand.ErrDuplicateName,
	hand.ErrUnknownActor,
	hand.ErrNoStreets,
}

func isInvalid(err error) bool {
	for _, target := range invalidHand {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Results returns the successfully derived results in input order.
// Partial results of malformed hands are included when keepMalformed is set.
func (rep *Report) Results(keepMalformed bool) []*derive.Result {
	var out []*derive.Result
	for _, item := range rep.Items {
		switch {
		case item.Err == nil:
			out = append(out, item.Result)
		case keepMalformed && item.Result != nil && derive.IsMalformed(item.Err):
			out = append(out, item.Result)
		}
	}
	return out
}
