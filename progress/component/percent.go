package component

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var percentPrinter = message.NewPrinter(language.AmericanEnglish)

// Percent is the completion ratio of a workload expressed in the 0-100 scale.
//
// A Percent built with a zero count is always 0, regardless of the total.
// Building one with a zero total and a non-zero count is a caller error.
type Percent struct {
	value float64
}

// NewPercent calculates count/total*100.
func NewPercent(total, count uint64) Percent {
	if count == 0 {
		return Percent{}
	}
	return Percent{value: float64(count) / float64(total) * 100.0}
}

// Value returns the percent in the 0-100 scale.
func (p Percent) Value() float64 {
	return p.value
}

// IsInRange reports whether the work is started but not finished,
// i.e. 0 < value < 100. Animated components only move while in range.
func (p Percent) IsInRange() bool {
	return p.value > 0 && p.value < 100
}

// String formats the percent with two decimals, e.g. "42.00%".
func (p Percent) String() string {
	return percentPrinter.Sprintf("%.2f%%", p.value)
}
