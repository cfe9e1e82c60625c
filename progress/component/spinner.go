package component

import "strings"

var spinnerPhases = [...]rune{'|', '/', '-', '\\', '|', '/', '-', '\\'}

// Spinner rotates a single glyph while the work is in progress.
// It is blank before any item completes and once every item is done.
type Spinner struct {
	base
	phase int
}

// NewSpinner creates a spinner.
func NewSpinner(displayPercent bool) *Spinner {
	return &Spinner{base: base{displayPercent: displayPercent}}
}

// Next moves the spinner one phase forward, only while in range.
func (s *Spinner) Next(total, count uint64) Percent {
	s.percent = NewPercent(total, count)
	if s.percent.IsInRange() {
		s.phase = (s.phase + 1) % len(spinnerPhases)
	}
	return s.percent
}

// Glyph returns the character currently displayed.
func (s *Spinner) Glyph() rune {
	if !s.percent.IsInRange() {
		return ' '
	}
	return spinnerPhases[s.phase]
}

func (s *Spinner) String() string {
	var sb strings.Builder
	sb.WriteRune(s.Glyph())
	s.suffix(&sb)
	return sb.String()
}
