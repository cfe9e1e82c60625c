package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gcastellov/go-progress/progress/component"
	"github.com/go-logr/logr"
)

const (
	DefaultReportFrequency = time.Second
	DefaultStatsFrequency  = 5 * time.Second
)

// Exporter persists the completion stats. It is invoked at most once per run,
// after the final frame.
type Exporter interface {
	Export(stats Stats) error
}

// Options are the display and notification toggles of a reporter.
type Options struct {
	DisplayStartingTime           bool
	DisplayEstimatedTimeOfArrival bool
	DisplayElapsedTime            bool
	DisplayRemainingTime          bool
	DisplayItemsOverview          bool
	DisplayItemsSummary           bool
	HideWorkloadOnComplete        bool
	NotifyProgressStats           bool
	NotifyCompletionStats         bool
	ExportCompletionStats         bool
}

// Configuration is owned by one reporter. It can only change through
// Reconfigure while no loop is running.
type Configuration struct {
	Options         Options
	ReportFrequency time.Duration
	StatsFrequency  time.Duration
	Exporter        Exporter
}

// DefaultConfiguration turns every summary line off, refreshes every second
// and notifies stats every five seconds.
func DefaultConfiguration() Configuration {
	return Configuration{
		ReportFrequency: DefaultReportFrequency,
		StatsFrequency:  DefaultStatsFrequency,
	}
}

type workloadSpec struct {
	id            string
	description   string
	expectedItems uint64
	descriptor    component.Descriptor
}

type reporterOptions struct {
	config       Configuration
	onProgress   func(Stats)
	onCompletion func(Stats)
	component    *component.Descriptor
	workloads    []workloadSpec
	sink         Sink
	log          logr.Logger
	ctx          context.Context
	clock        Clock
}

// Option configures a reporter at construction or through Reconfigure.
type Option func(*reporterOptions) error

func defaultReporterOptions() reporterOptions {
	return reporterOptions{
		config: DefaultConfiguration(),
		log:    logr.Discard(),
		ctx:    context.Background(),
		clock:  RealClock{},
	}
}

// apply runs every option, collecting all the errors instead of stopping at
// the first one.
func (o *reporterOptions) apply(opts []Option) error {
	var errs []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithStartingTime displays the time reporting started.
func WithStartingTime() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayStartingTime = true
		return nil
	}
}

// WithElapsedTime displays the time elapsed since the start.
func WithElapsedTime() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayElapsedTime = true
		return nil
	}
}

// WithEstimatedTimeOfArrival displays the estimated completion time.
func WithEstimatedTimeOfArrival() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayEstimatedTimeOfArrival = true
		return nil
	}
}

// WithRemainingTime displays the estimated time left.
func WithRemainingTime() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayRemainingTime = true
		return nil
	}
}

// WithItemsOverview displays the number of processed items.
func WithItemsOverview() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayItemsOverview = true
		return nil
	}
}

// WithItemsSummary displays the successful and unsuccessful item counts.
func WithItemsSummary() Option {
	return func(o *reporterOptions) error {
		o.config.Options.DisplayItemsSummary = true
		return nil
	}
}

// WithHideWorkloadOnComplete omits finished workloads from the frame.
func WithHideWorkloadOnComplete(hide bool) Option {
	return func(o *reporterOptions) error {
		o.config.Options.HideWorkloadOnComplete = hide
		return nil
	}
}

// WithDisplayOptions replaces every display toggle at once.
func WithDisplayOptions(display Options) Option {
	return func(o *reporterOptions) error {
		current := o.config.Options
		current.DisplayStartingTime = display.DisplayStartingTime
		current.DisplayEstimatedTimeOfArrival = display.DisplayEstimatedTimeOfArrival
		current.DisplayElapsedTime = display.DisplayElapsedTime
		current.DisplayRemainingTime = display.DisplayRemainingTime
		current.DisplayItemsOverview = display.DisplayItemsOverview
		current.DisplayItemsSummary = display.DisplayItemsSummary
		current.HideWorkloadOnComplete = display.HideWorkloadOnComplete
		o.config.Options = current
		return nil
	}
}

// WithReportFrequency sets how often a frame is drawn. It must be positive.
func WithReportFrequency(frequency time.Duration) Option {
	return func(o *reporterOptions) error {
		if frequency <= 0 {
			return fmt.Errorf("report frequency must be positive, got %s", frequency)
		}
		o.config.ReportFrequency = frequency
		return nil
	}
}

// WithStatsFrequency sets how often progress stats are notified. It must be
// positive.
func WithStatsFrequency(frequency time.Duration) Option {
	return func(o *reporterOptions) error {
		if frequency <= 0 {
			return fmt.Errorf("stats frequency must be positive, got %s", frequency)
		}
		o.config.StatsFrequency = frequency
		return nil
	}
}

// WithProgressNotification calls fn with a Stats snapshot at most once every
// interval while reporting. A zero interval keeps the current stats frequency.
func WithProgressNotification(fn func(Stats), every time.Duration) Option {
	return func(o *reporterOptions) error {
		if every < 0 {
			return fmt.Errorf("stats frequency must be positive, got %s", every)
		}
		if every > 0 {
			o.config.StatsFrequency = every
		}
		o.onProgress = fn
		o.config.Options.NotifyProgressStats = fn != nil
		return nil
	}
}

// WithCompletionNotification calls fn once when every workload is finished.
func WithCompletionNotification(fn func(Stats)) Option {
	return func(o *reporterOptions) error {
		o.onCompletion = fn
		o.config.Options.NotifyCompletionStats = fn != nil
		return nil
	}
}

// WithExporter exports the completion stats once every workload is finished.
func WithExporter(exporter Exporter) Option {
	return func(o *reporterOptions) error {
		o.config.Exporter = exporter
		o.config.Options.ExportCompletionStats = exporter != nil
		return nil
	}
}

// WithComponent sets the renderer of a single-workload reporter.
func WithComponent(descriptor component.Descriptor) Option {
	return func(o *reporterOptions) error {
		o.component = &descriptor
		return nil
	}
}

// WithWorkload registers a workload of an aggregate reporter. Workloads are
// displayed in registration order.
func WithWorkload(id, description string, expectedItems uint64, descriptor component.Descriptor) Option {
	return func(o *reporterOptions) error {
		o.workloads = append(o.workloads, workloadSpec{
			id:            id,
			description:   description,
			expectedItems: expectedItems,
			descriptor:    descriptor,
		})
		return nil
	}
}

// WithSink sets where frames are written. Defaults to the standard output.
func WithSink(sink Sink) Option {
	return func(o *reporterOptions) error {
		if sink == nil {
			return errors.New("sink cannot be nil")
		}
		o.sink = sink
		return nil
	}
}

// WithLogger sets the logger. Reporters log nothing by default.
func WithLogger(log logr.Logger) Option {
	return func(o *reporterOptions) error {
		o.log = log
		return nil
	}
}

// WithContext sets the parent context of every run. Cancelling it has the
// same effect on the loops as Stop.
func WithContext(ctx context.Context) Option {
	return func(o *reporterOptions) error {
		if ctx == nil {
			return errors.New("context cannot be nil")
		}
		o.ctx = ctx
		return nil
	}
}

// WithClock replaces the clock the timer reads.
func WithClock(clock Clock) Option {
	return func(o *reporterOptions) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		o.clock = clock
		return nil
	}
}
