// progress-demo simulates an installer and renders its progress on the
// console.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bombsimon/logrusr/v3"
	"github.com/gcastellov/go-progress/config"
	"github.com/gcastellov/go-progress/progress"
	"github.com/gcastellov/go-progress/progress/notifier"
	"github.com/gcastellov/go-progress/tracing"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flags          = &config.Flags{}
	items          uint64
	aggregate      bool
	failureRate    float64
	itemDelay      time.Duration
	statsFile      string
	logLevel       int
	logFile        string
	enableJaeger   bool
	jaegerEndpoint string
)

// installer is the sample used by --aggregate when the config file does not
// declare workloads.
var installer = []config.Workload{
	{ID: "calculate", Description: "Calculating dependencies", ExpectedItems: 3},
	{ID: "download", Description: "Downloading packages", ExpectedItems: 15},
	{ID: "install", Description: "Installing files", ExpectedItems: 15000},
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "progress-demo",
		Short: "Render the progress of a simulated workload",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if failureRate < 0 || failureRate > 1 {
				return fmt.Errorf("failure rate must be between 0 and 1, got %v", failureRate)
			}
			if itemDelay <= 0 {
				return fmt.Errorf("item delay must be positive")
			}
			if !aggregate && items == 0 {
				return fmt.Errorf("items must be greater than 0")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog := newLogger()
			defer closeLog()

			tp, err := tracing.InitTracerProvider(log, tracing.Options{
				EnableJaeger:   enableJaeger,
				JaegerEndpoint: jaegerEndpoint,
			})
			if err != nil {
				log.Error(err, "unable to initialize tracing")
				return err
			}
			defer tracing.Shutdown(context.Background(), log, tp)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, log); err != nil {
				log.Error(err, "demo failed")
				return err
			}
			return nil
		},
	}
	flags.AddFlags(rootCmd)
	rootCmd.Flags().Uint64Var(&items, "items", 100, "Number of items processed by the single workload")
	rootCmd.Flags().BoolVar(&aggregate, "aggregate", false, "Run the installer sample with several workloads")
	rootCmd.Flags().Float64Var(&failureRate, "failure-rate", 0.1, "Probability, between 0 and 1, of an item failing")
	rootCmd.Flags().DurationVar(&itemDelay, "item-delay", 2*time.Millisecond, "Time taken to process one item")
	rootCmd.Flags().StringVar(&statsFile, "stats-file", "", "Append progress stats as JSON lines to this file")
	rootCmd.Flags().IntVar(&logLevel, "verbose", 0, "Level for logging output")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.Flags().BoolVar(&enableJaeger, "enable-jaeger", false, "Export reporter traces to jaeger")
	rootCmd.Flags().StringVar(&jaegerEndpoint, "jaeger-endpoint", "http://localhost:14268/api/traces", "Jaeger collector endpoint")
	return rootCmd
}

func newLogger() (logr.Logger, func()) {
	logrusLog := logrus.New()
	logrusLog.SetOutput(os.Stderr)
	logrusLog.SetFormatter(&logrus.TextFormatter{})
	// logr verbosity V(n) maps to logrus level n+5.
	logrusLog.SetLevel(logrus.Level(logLevel + 5))

	closer := func() {}
	if logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
		}
		logrusLog.SetOutput(rotating)
		closer = func() { _ = rotating.Close() }
	}
	return logrusr.New(logrusLog), closer
}

type demoReporter interface {
	Start() error
	Stop() error
	Wait() error
	Dispose()
	IsFinished() bool
	Stats() progress.Stats
}

func run(ctx context.Context, log logr.Logger) error {
	fs := afero.NewOsFs()
	c, err := flags.Config(fs)
	if err != nil {
		return err
	}
	if aggregate && len(c.Workloads) == 0 {
		c.Workloads = installer
	}
	opts, err := c.Options(fs)
	if err != nil {
		return err
	}

	notifiers := []func(progress.Stats){notifier.NewLog(log).Notify}
	if statsFile != "" {
		f, err := os.OpenFile(statsFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("unable to open stats file: %w", err)
		}
		defer f.Close()
		notifiers = append(notifiers, notifier.NewJSON(f).Notify)
	}

	completed := make(chan progress.Stats, 1)
	opts = append(opts,
		progress.WithContext(ctx),
		progress.WithLogger(log),
		progress.WithProgressNotification(notifier.Fanout(notifiers...), 0),
		progress.WithCompletionNotification(func(s progress.Stats) { completed <- s }),
	)

	var r demoReporter
	var jobs []job
	if len(c.Workloads) > 0 {
		agg, err := progress.NewAggregateReporter(opts...)
		if err != nil {
			return err
		}
		for _, w := range agg.Workloads() {
			id := w.ID()
			jobs = append(jobs, job{
				expected: w.ExpectedItems(),
				success:  func() error { return agg.ReportSuccess(id) },
				failure:  func() error { return agg.ReportFailure(id) },
			})
		}
		r = agg
	} else {
		single, err := progress.NewConsoleReporter(items, opts...)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{expected: items, success: single.ReportSuccess, failure: single.ReportFailure})
		r = single
	}
	defer r.Dispose()

	if err := r.Start(); err != nil {
		return err
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(len(jobs))
	for _, j := range jobs {
		j := j
		p.Go(func(ctx context.Context) error {
			return j.process(ctx)
		})
	}
	produceErr := p.Wait()
	if produceErr != nil && !r.IsFinished() {
		_ = r.Stop()
	}

	if err := r.Wait(); err != nil {
		return err
	}
	if !r.IsFinished() {
		s := r.Stats()
		log.Info("demo interrupted", "current", s.CurrentCount, "expected", s.ExpectedItems)
		if errors.Is(produceErr, context.Canceled) {
			return nil
		}
		return produceErr
	}

	s := <-completed
	printSummary(os.Stdout, s)
	return nil
}

type job struct {
	expected uint64
	success  func() error
	failure  func() error
}

func (j job) process(ctx context.Context) error {
	ticker := time.NewTicker(itemDelay)
	defer ticker.Stop()
	for i := uint64(0); i < j.expected; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		report := j.success
		if rand.Float64() < failureRate {
			report = j.failure
		}
		if err := report(); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, s progress.Stats) {
	fmt.Fprintf(w, "\nDone in %s: %d succeeded, %d failed\n",
		progress.FormatDuration(s.ElapsedTime), s.SuccessCount, s.FailureCount)
}
