package progress

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gcastellov/go-progress/tracing"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// run is one Start or Resume cycle.
type run struct {
	id     uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func (r *run) alive() bool {
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// reporter drives the render and stats loops over a set of workloads. Its
// lifecycle is Created, then Running and Stopped any number of times, then
// Disposed.
//
// Loop state (timer, options, last overview) is only written while no loop is
// alive, so the loops read it without locking.
type reporter struct {
	mu       sync.Mutex
	opts     reporterOptions
	display  bool
	printer  Printer
	timer    Timer
	current  *run
	disposed atomic.Bool

	workloads    *Workloads
	lastOverview map[string]bool
	frame        atomic.Pointer[string]
}

func newReporter(o reporterOptions, workloads *Workloads, display bool) *reporter {
	if o.sink == nil {
		if display {
			o.sink = NewConsole(os.Stdout)
		} else {
			o.sink = discardSink{}
		}
	}
	return &reporter{
		opts:         o,
		display:      display,
		printer:      NewPrinter(o.config.Options),
		timer:        NewTimer(o.clock),
		workloads:    workloads,
		lastOverview: workloads.Overview(),
	}
}

// Start resets every counter and the timer, then starts reporting.
func (r *reporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed.Load() {
		return ErrDisposed
	}
	if r.current != nil && r.current.alive() {
		return ErrStillRunning
	}
	r.workloads.Reset()
	r.timer = NewTimer(r.opts.clock)
	r.lastOverview = r.workloads.Overview()
	r.spawn()
	return nil
}

// Stop cancels the loops and waits for them to exit. It returns the error of
// the run, if any. Callbacks may read the reporter while Stop waits, but must
// not call Stop or Dispose themselves.
func (r *reporter) Stop() error {
	r.mu.Lock()
	if r.disposed.Load() {
		r.mu.Unlock()
		return ErrDisposed
	}
	current := r.current
	r.mu.Unlock()
	if current == nil {
		return ErrNotStarted
	}
	return current.join()
}

// Resume restarts the loops after Stop without resetting the counters or the
// timer.
func (r *reporter) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed.Load() {
		return ErrDisposed
	}
	if r.current == nil {
		return ErrNotStarted
	}
	if r.current.alive() {
		return ErrStillRunning
	}
	r.spawn()
	return nil
}

// Wait blocks until the current run ends, either because every workload is
// finished or because it was stopped. It returns the error of the run.
func (r *reporter) Wait() error {
	r.mu.Lock()
	if r.disposed.Load() {
		r.mu.Unlock()
		return ErrDisposed
	}
	current := r.current
	r.mu.Unlock()
	if current == nil {
		return ErrNotStarted
	}
	<-current.done
	return current.err
}

// Dispose stops reporting for good and drops the callbacks. It is safe to
// call more than once.
func (r *reporter) Dispose() {
	r.mu.Lock()
	if r.disposed.Swap(true) {
		r.mu.Unlock()
		return
	}
	current := r.current
	r.mu.Unlock()

	if current != nil {
		if err := current.join(); err != nil {
			r.opts.log.Error(err, "reporting ended with an error")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.onProgress = nil
	r.opts.onCompletion = nil
	r.opts.log.V(3).Info("reporter disposed")
}

// Reconfigure applies opts while no loop is running. Workloads and renderers
// are fixed at construction.
func (r *reporter) Reconfigure(opts ...Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed.Load() {
		return ErrDisposed
	}
	if r.current != nil && r.current.alive() {
		return ErrStillRunning
	}
	next := r.opts
	next.workloads = nil
	next.component = nil
	if err := next.apply(opts); err != nil {
		return fmt.Errorf("unable to reconfigure reporter: %w", err)
	}
	if next.workloads != nil || next.component != nil {
		return errors.New("unable to reconfigure reporter: workloads and components cannot change")
	}
	next.workloads = r.opts.workloads
	next.component = r.opts.component
	r.opts = next
	r.printer = NewPrinter(next.config.Options)
	return nil
}

// The accessors below only read state and stay valid after Dispose, so the
// final counters of a disposed reporter can still be inspected. Every call
// that starts, stops or feeds the reporter returns ErrDisposed instead.

// Configuration returns a copy of the current configuration.
func (r *reporter) Configuration() Configuration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.config
}

// IsFinished reports whether every workload is finished.
func (r *reporter) IsFinished() bool {
	return r.workloads.AreFinished()
}

// Stats collects a snapshot of the counters and the timer.
func (r *reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collectStats()
}

// String returns the current frame. While running it is the last frame
// written by the render loop.
func (r *reporter) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.current.alive() {
		if frame := r.frame.Load(); frame != nil {
			return *frame
		}
		return ""
	}
	return r.printer.Print(r.collectStats(), r.workloads.All())
}

func (r *reporter) checkDisposed() error {
	if r.disposed.Load() {
		return ErrDisposed
	}
	return nil
}

// spawn starts the loops of a new run. Callers hold r.mu.
func (r *reporter) spawn() {
	id := uuid.New()
	ctx, cancel := context.WithCancel(r.opts.ctx)
	ctx, span := tracing.StartRunSpan(ctx, id.String(), r.workloads.Len(), r.workloads.ExpectedItems())
	log := r.opts.log.WithValues("run", id.String())
	g, gctx := errgroup.WithContext(ctx)

	current := &run{id: id, cancel: cancel, done: make(chan struct{})}
	r.current = current

	if r.display {
		g.Go(func() error { return r.renderLoop(gctx, cancel) })
		if r.opts.config.Options.NotifyProgressStats {
			g.Go(func() error { return r.statsLoop(gctx) })
		}
	} else {
		g.Go(func() error { return r.backgroundLoop(gctx) })
	}
	log.V(3).Info("reporting started", "display", r.display)

	go func() {
		err := g.Wait()
		cancel()
		tracing.EndRunSpan(span, r.workloads.AreFinished(), err)
		current.err = err
		log.V(3).Info("reporting ended", "finished", r.workloads.AreFinished())
		close(current.done)
	}()
}

// join cancels the run and waits for its loops. It must be called without
// holding r.mu, callbacks running in the loops may need it.
func (c *run) join() error {
	c.cancel()
	<-c.done
	return c.err
}

// renderLoop draws a frame every report interval until every workload is
// finished or the run is cancelled, then always draws one final frame.
func (r *reporter) renderLoop(ctx context.Context, cancel context.CancelFunc) error {
	// The stats loop has nothing to do once the render loop is gone.
	defer cancel()

	ticker := time.NewTicker(r.opts.config.ReportFrequency)
	defer ticker.Stop()

	for {
		r.render()
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		if r.workloads.AreFinished() || ctx.Err() != nil {
			break
		}
	}
	r.render()

	if !r.workloads.AreFinished() {
		return nil
	}
	return r.complete(ctx)
}

// statsLoop notifies the progress callback at most once per stats interval.
func (r *reporter) statsLoop(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(r.opts.config.StatsFrequency), 1)
	// The first notification is due one full interval after the start.
	limiter.Allow()

	for {
		if err := limiter.Wait(ctx); err != nil {
			// Cancelled, or the context deadline comes before the next token.
			return nil
		}
		if r.opts.onProgress != nil {
			r.opts.onProgress(r.collectStats())
		}
		if r.workloads.AreFinished() {
			return nil
		}
	}
}

// backgroundLoop is the only loop of a reporter without display. It notifies
// progress like statsLoop and takes care of the completion itself.
func (r *reporter) backgroundLoop(ctx context.Context) error {
	if err := r.statsLoop(ctx); err != nil {
		return err
	}
	if !r.workloads.AreFinished() {
		return nil
	}
	return r.complete(ctx)
}

func (r *reporter) render() {
	r.workloads.NextAll()

	overview := r.workloads.Overview()
	clear := r.opts.config.Options.HideWorkloadOnComplete && !maps.Equal(r.lastOverview, overview)
	r.lastOverview = overview

	frame := r.printer.Print(r.collectStats(), r.workloads.All())
	r.frame.Store(&frame)
	if err := r.opts.sink.Write(frame, clear); err != nil {
		r.opts.log.Error(err, "unable to write progress frame")
	}
	r.opts.log.V(7).Info("frame written", "clear", clear)
}

// complete collects the completion stats once and hands them to the
// completion callback and the exporter.
func (r *reporter) complete(ctx context.Context) error {
	o := r.opts.config.Options
	if !o.NotifyCompletionStats && !o.ExportCompletionStats {
		return nil
	}
	stats := r.collectStats()
	if r.opts.onCompletion != nil {
		r.opts.onCompletion(stats)
	}
	if !o.ExportCompletionStats || r.opts.config.Exporter == nil {
		return nil
	}
	_, span := tracing.StartExportSpan(ctx, stats.SuccessCount, stats.FailureCount)
	err := r.opts.config.Exporter.Export(stats)
	tracing.EndSpan(span, err)
	if err != nil {
		r.opts.log.Error(err, "unable to export completion stats")
		return fmt.Errorf("unable to export completion stats: %w", err)
	}
	r.opts.log.V(3).Info("completion stats exported")
	return nil
}

func (r *reporter) collectStats() Stats {
	success := r.workloads.SuccessCount()
	failure := r.workloads.FailureCount()
	percent := r.workloads.Percent()
	return Stats{
		StartedAt:              r.timer.StartedAt(),
		EstimatedTimeOfArrival: r.timer.EstimatedTimeOfArrival(percent),
		ElapsedTime:            r.timer.Elapsed(),
		RemainingTime:          r.timer.Remaining(percent),
		ExpectedItems:          r.workloads.ExpectedItems(),
		SuccessCount:           success,
		FailureCount:           failure,
		CurrentCount:           success + failure,
		CurrentPercent:         percent,
	}
}
