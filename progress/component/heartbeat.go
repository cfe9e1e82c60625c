package component

// Heartbeat draws two markers that start at the centre of the buffer and
// move outward one cell per tick. After the left marker reaches the first
// cell, the next tick starts a new beat from the centre.
type Heartbeat struct {
	base
	width   uint
	symbol  rune
	left    uint
	right   uint
	started bool
}

// NewHeartbeat creates a heartbeat of the given width drawn with symbol.
func NewHeartbeat(width uint, symbol rune, displayPercent bool) *Heartbeat {
	return &Heartbeat{
		base:   base{displayPercent: displayPercent},
		width:  width,
		symbol: symbol,
	}
}

func (h *Heartbeat) Next(total, count uint64) Percent {
	h.percent = NewPercent(total, count)
	if !h.started || h.left == 0 {
		h.left, h.right = h.center()
		h.started = true
	} else {
		h.left--
		h.right++
	}
	return h.percent
}

// center returns the starting cells: the middle one for odd widths,
// the two middle ones for even widths.
func (h *Heartbeat) center() (uint, uint) {
	mid := h.width / 2
	if h.width%2 == 0 && mid > 0 {
		return mid - 1, mid
	}
	return mid, mid
}

// Markers returns the left and right marker positions.
func (h *Heartbeat) Markers() (uint, uint) {
	return h.left, h.right
}

func (h *Heartbeat) String() string {
	cells := blank(h.width)
	if h.started && h.percent.IsInRange() && h.right < h.width {
		cells[h.left] = h.symbol
		cells[h.right] = h.symbol
	}
	return h.frame(cells)
}
