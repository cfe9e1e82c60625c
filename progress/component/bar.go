package component

import "math/bits"

// Bar fills a fixed-width buffer proportionally to the completed items.
//
//	[##########          ] 50.00%
type Bar struct {
	base
	width  uint
	symbol rune
	total  uint64
	count  uint64
}

// NewBar creates a bar of the given width drawn with symbol.
func NewBar(width uint, symbol rune, displayPercent bool) *Bar {
	return &Bar{
		base:   base{displayPercent: displayPercent},
		width:  width,
		symbol: symbol,
	}
}

// Next records the counters used to fill the bar.
func (b *Bar) Next(total, count uint64) Percent {
	b.total = total
	b.count = count
	b.percent = NewPercent(total, count)
	return b.percent
}

// Filled returns floor(count*width/total), never more than the bar width.
func (b *Bar) Filled() uint {
	if b.count == 0 || b.total == 0 {
		return 0
	}
	hi, lo := bits.Mul64(b.count, uint64(b.width))
	// Div64 panics when the quotient does not fit in 64 bits, which can only
	// happen when count is far beyond total.
	if hi >= b.total {
		return b.width
	}
	q, _ := bits.Div64(hi, lo, b.total)
	if q > uint64(b.width) {
		return b.width
	}
	return uint(q)
}

func (b *Bar) String() string {
	cells := blank(b.width)
	filled := b.Filled()
	for i := uint(0); i < filled; i++ {
		cells[i] = b.symbol
	}
	return b.frame(cells)
}
