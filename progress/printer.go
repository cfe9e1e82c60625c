package progress

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	labelWidth = 20
	valueWidth = 30
)

// Printer renders a Stats snapshot and the workload components into one
// frame of text. It holds no state besides the display options.
type Printer struct {
	options Options
}

// NewPrinter returns a printer for the given display options.
func NewPrinter(options Options) Printer {
	return Printer{options: options}
}

// Print returns the frame for stats and workloads. Workloads are rendered in
// the given order, and finished ones are skipped when HideWorkloadOnComplete
// is set.
func (p Printer) Print(stats Stats, workloads []*Workload) string {
	var b strings.Builder
	o := p.options

	if o.DisplayStartingTime {
		line(&b, "Process started at:", FormatTime(stats.StartedAt))
	}
	if o.DisplayEstimatedTimeOfArrival {
		value := Unknown
		if stats.CurrentPercent != 0 {
			value = FormatTime(stats.EstimatedTimeOfArrival)
		}
		line(&b, "ETA:", value)
	}
	if o.DisplayElapsedTime {
		line(&b, "Elapsed time:", FormatDuration(stats.ElapsedTime))
	}
	if o.DisplayRemainingTime {
		value := Unknown
		if stats.CurrentPercent != 0 {
			value = FormatDuration(stats.RemainingTime)
		}
		line(&b, "Remaining time:", value)
	}
	if o.DisplayItemsSummary {
		line(&b, "Successful items:", strconv.FormatUint(stats.SuccessCount, 10))
		line(&b, "Unsuccessful items:", strconv.FormatUint(stats.FailureCount, 10))
	}
	if o.DisplayItemsOverview {
		line(&b, "Total items:", strconv.FormatUint(stats.CurrentCount, 10))
	}

	b.WriteByte('\n')

	for _, w := range workloads {
		if o.HideWorkloadOnComplete && w.IsFinished() {
			continue
		}
		b.WriteString(w.Description())
		b.WriteByte('\n')
		b.WriteString(w.Render())
		b.WriteString("\n\n")
	}

	return b.String()
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-*s %*s\n", labelWidth, label, valueWidth, value)
}
