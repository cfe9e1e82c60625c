package notifier

import (
	"github.com/gcastellov/go-progress/progress"
	"github.com/go-logr/logr"
)

// Log writes every snapshot as a structured log line.
type Log struct {
	log     logr.Logger
	message string
}

type LogOption func(*Log)

// WithMessage sets the log message. Defaults to "progress".
func WithMessage(message string) LogOption {
	return func(l *Log) {
		l.message = message
	}
}

func NewLog(log logr.Logger, opts ...LogOption) *Log {
	l := &Log{log: log, message: "progress"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Log) Notify(stats progress.Stats) {
	l.log.Info(l.message,
		"current", stats.CurrentCount,
		"expected", stats.ExpectedItems,
		"success", stats.SuccessCount,
		"failure", stats.FailureCount,
		"percent", stats.CurrentPercent,
		"elapsed", progress.FormatDuration(stats.ElapsedTime),
		"remaining", progress.FormatDuration(stats.RemainingTime),
		"eta", progress.FormatTime(stats.EstimatedTimeOfArrival),
	)
}
