package component

// Pulse moves a single marker across a fixed-width buffer, wrapping
// around at the end. The marker disappears once the work is complete.
type Pulse struct {
	base
	width  uint
	symbol rune
	index  uint
}

// NewPulse creates a pulse of the given width drawn with symbol.
func NewPulse(width uint, symbol rune, displayPercent bool) *Pulse {
	return &Pulse{
		base:   base{displayPercent: displayPercent},
		width:  width,
		symbol: symbol,
	}
}

func (p *Pulse) Next(total, count uint64) Percent {
	p.percent = NewPercent(total, count)
	p.index++
	if p.index >= p.width {
		p.index = 0
	}
	return p.percent
}

// Index returns the marker position.
func (p *Pulse) Index() uint {
	return p.index
}

func (p *Pulse) String() string {
	cells := blank(p.width)
	if p.width > 0 && p.percent.Value() < 100 {
		cells[p.index] = p.symbol
	}
	return p.frame(cells)
}
