package progress

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Stats is a point-in-time snapshot of a reporter. It is never modified
// after it is collected and can be handed to other goroutines freely.
type Stats struct {
	StartedAt              time.Time     `json:"startedAt" xml:"StartedAt" yaml:"startedAt"`
	EstimatedTimeOfArrival time.Time     `json:"estimatedTimeOfArrival" xml:"EstimatedTimeOfArrival" yaml:"estimatedTimeOfArrival"`
	ElapsedTime            time.Duration `json:"elapsedTime" xml:"ElapsedTime" yaml:"elapsedTime"`
	RemainingTime          time.Duration `json:"remainingTime" xml:"RemainingTime" yaml:"remainingTime"`
	ExpectedItems          uint64        `json:"expectedItems" xml:"ExpectedItems" yaml:"expectedItems"`
	SuccessCount           uint64        `json:"successCount" xml:"SuccessCount" yaml:"successCount"`
	FailureCount           uint64        `json:"failureCount" xml:"FailureCount" yaml:"failureCount"`
	CurrentCount           uint64        `json:"currentCount" xml:"CurrentCount" yaml:"currentCount"`
	CurrentPercent         float64       `json:"currentPercent" xml:"CurrentPercent" yaml:"currentPercent"`
}

// Field is a named, formatted Stats value.
type Field struct {
	Name  string
	Value string
}

// Fields returns every Stats value formatted as text, sorted by name.
// Unknown times and durations are rendered as Unknown.
func (s Stats) Fields() []Field {
	fields := []Field{
		{Name: "StartedAt", Value: FormatTime(s.StartedAt)},
		{Name: "EstimatedTimeOfArrival", Value: FormatTime(s.EstimatedTimeOfArrival)},
		{Name: "ElapsedTime", Value: FormatDuration(s.ElapsedTime)},
		{Name: "RemainingTime", Value: FormatDuration(s.RemainingTime)},
		{Name: "ExpectedItems", Value: strconv.FormatUint(s.ExpectedItems, 10)},
		{Name: "SuccessCount", Value: strconv.FormatUint(s.SuccessCount, 10)},
		{Name: "FailureCount", Value: strconv.FormatUint(s.FailureCount, 10)},
		{Name: "CurrentCount", Value: strconv.FormatUint(s.CurrentCount, 10)},
		{Name: "CurrentPercent", Value: strconv.FormatFloat(s.CurrentPercent, 'f', 2, 64)},
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// IsFinished reports whether every expected item was processed.
func (s Stats) IsFinished() bool {
	return s.ExpectedItems > 0 && s.CurrentCount == s.ExpectedItems
}

const timeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in UTC, or Unknown for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	return t.UTC().Format(timeLayout)
}

// FormatDuration renders d as hh:mm:ss, prefixed with the days when longer
// than a day, or Unknown for UnknownDuration.
func FormatDuration(d time.Duration) string {
	if d == UnknownDuration {
		return Unknown
	}
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
