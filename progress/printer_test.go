package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func allDisplayed() Options {
	return Options{
		DisplayStartingTime:           true,
		DisplayEstimatedTimeOfArrival: true,
		DisplayElapsedTime:            true,
		DisplayRemainingTime:          true,
		DisplayItemsOverview:          true,
		DisplayItemsSummary:           true,
	}
}

func TestPrinterGolden(t *testing.T) {
	w := newTestWorkload(t, "a", 10)
	for i := 0; i < 3; i++ {
		w.Success()
	}
	w.Failure()
	w.Next()

	stats := Stats{
		StartedAt:              epoch,
		EstimatedTimeOfArrival: epoch.Add(225 * time.Second),
		ElapsedTime:            90 * time.Second,
		RemainingTime:          135 * time.Second,
		ExpectedItems:          10,
		SuccessCount:           3,
		FailureCount:           1,
		CurrentCount:           4,
		CurrentPercent:         40,
	}

	want := strings.Join([]string{
		"Process started at:             2024-01-02 03:04:05",
		"ETA:                            2024-01-02 03:07:50",
		"Elapsed time:                              00:01:30",
		"Remaining time:                            00:02:15",
		"Successful items:                                 3",
		"Unsuccessful items:                               1",
		"Total items:                                      4",
		"",
		"Workload a",
		"[####      ] 40.00%",
		"",
		"",
	}, "\n")

	assert.Equal(t, want, NewPrinter(allDisplayed()).Print(stats, []*Workload{w}))
}

func TestPrinterUnknownBeforeProgress(t *testing.T) {
	stats := Stats{StartedAt: epoch, RemainingTime: UnknownDuration}
	out := NewPrinter(Options{
		DisplayEstimatedTimeOfArrival: true,
		DisplayRemainingTime:          true,
	}).Print(stats, nil)

	assert.Equal(t, ""+
		"ETA:                                        Unknown\n"+
		"Remaining time:                             Unknown\n"+
		"\n", out)
}

func TestPrinterOnlyComponentsByDefault(t *testing.T) {
	w := newTestWorkload(t, "a", 2)
	out := NewPrinter(Options{}).Print(Stats{}, []*Workload{w})
	assert.Equal(t, "\nWorkload a\n[          ] 0.00%\n\n", out)
}

func TestPrinterHidesFinishedWorkloads(t *testing.T) {
	done := newTestWorkload(t, "done", 1)
	done.Success()
	pending := newTestWorkload(t, "pending", 2)

	out := NewPrinter(Options{HideWorkloadOnComplete: true}).Print(Stats{}, []*Workload{done, pending})
	assert.NotContains(t, out, "Workload done")
	assert.Contains(t, out, "Workload pending")

	out = NewPrinter(Options{}).Print(Stats{}, []*Workload{done, pending})
	assert.Contains(t, out, "Workload done")
}
