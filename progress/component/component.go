// Package component provides the visual renderers used by console reporters.
//
// Every renderer is a small state machine advanced once per rendering tick:
//
//	bar := component.NewBar(40, '#', true)
//	bar.Next(total, current)
//	fmt.Println(bar.String()) // [################                        ] 40.00%
//
// Components are not safe for concurrent use. Each workload owns its own
// instance and only the reporter's render loop advances it.
package component

import "strings"

// Component renders the progress of a single workload.
type Component interface {
	// Next advances the component one tick and records the percent
	// that String will display.
	Next(total, count uint64) Percent

	// String renders the current state. It never changes the state, so
	// calling it repeatedly between two Next calls gives the same output.
	String() string
}

// base holds what every component shares: the last recorded percent
// and whether it is printed after the visual.
type base struct {
	percent        Percent
	displayPercent bool
}

func (b *base) suffix(sb *strings.Builder) {
	if b.displayPercent {
		sb.WriteByte(' ')
		sb.WriteString(b.percent.String())
	}
}

// frame renders cells between square brackets followed by the optional percent.
func (b *base) frame(cells []rune) string {
	var sb strings.Builder
	sb.Grow(len(cells) + 12)
	sb.WriteByte('[')
	for _, c := range cells {
		sb.WriteRune(c)
	}
	sb.WriteByte(']')
	b.suffix(&sb)
	return sb.String()
}

func blank(width uint) []rune {
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	return cells
}
