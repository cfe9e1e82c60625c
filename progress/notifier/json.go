package notifier

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gcastellov/go-progress/progress"
)

// JSON writes every snapshot as one line of newline-delimited JSON.
//
//	{"timestamp":"2024-10-29T17:06:22Z","stats":{"startedAt":"2024-10-29T17:06:14Z",...,"currentPercent":10}}
//
// Each line is written under a lock, so lines never interleave.
type JSON struct {
	writer io.Writer
	mu     sync.Mutex
	now    func() time.Time
}

type jsonLine struct {
	Timestamp time.Time      `json:"timestamp"`
	Stats     progress.Stats `json:"stats"`
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{writer: w, now: time.Now}
}

// Notify writes stats. Encoding and write errors are dropped so a broken
// writer never disturbs reporting.
func (j *JSON) Notify(stats progress.Stats) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(jsonLine{Timestamp: j.now().UTC(), Stats: stats})
	if err != nil {
		return
	}
	fmt.Fprintln(j.writer, string(data))
}
