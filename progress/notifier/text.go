package notifier

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gcastellov/go-progress/progress"
)

// Text writes every snapshot as a human readable, timestamped line:
//
//	[17:06:22] 40/100 items (40.00%), 3 failed, remaining 00:01:30
type Text struct {
	writer io.Writer
	mu     sync.Mutex
	now    func() time.Time
}

func NewText(w io.Writer) *Text {
	return &Text{writer: w, now: time.Now}
}

func (t *Text) Notify(stats progress.Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("[%s] %d/%d items (%.2f%%)",
		t.now().Format("15:04:05"),
		stats.CurrentCount,
		stats.ExpectedItems,
		stats.CurrentPercent)
	if stats.FailureCount > 0 {
		line += fmt.Sprintf(", %d failed", stats.FailureCount)
	}
	if stats.IsFinished() {
		line += ", complete"
	} else {
		line += ", remaining " + progress.FormatDuration(stats.RemainingTime)
	}
	t.writer.Write([]byte(line + "\n"))
}
