package component

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarFill(t *testing.T) {
	tests := []struct {
		name     string
		width    uint
		total    uint64
		count    uint64
		expected string
	}{
		{name: "empty", width: 10, total: 10, count: 0, expected: "[          ] 0.00%"},
		{name: "half", width: 10, total: 10, count: 5, expected: "[#####     ] 50.00%"},
		{name: "floor", width: 10, total: 3, count: 1, expected: "[###       ] 33.33%"},
		{name: "complete", width: 10, total: 10, count: 10, expected: "[##########] 100.00%"},
		{name: "overflow is clamped", width: 10, total: 10, count: 25, expected: "[##########] 250.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(tt.width, '#', true)
			bar.Next(tt.total, tt.count)
			assert.Equal(t, tt.expected, bar.String())
		})
	}
}

func TestBarFillNeverExceedsWidth(t *testing.T) {
	for _, width := range []uint{1, 7, 40, 100} {
		for total := uint64(1); total <= 64; total++ {
			bar := NewBar(width, '=', false)
			for count := uint64(0); count <= total; count++ {
				bar.Next(total, count)
				filled := bar.Filled()
				if filled > width {
					t.Fatalf("width %d, %d/%d: filled %d exceeds width", width, count, total, filled)
				}
				if want := uint(count * uint64(width) / total); filled != want {
					t.Fatalf("width %d, %d/%d: filled %d, want %d", width, count, total, filled, want)
				}
			}
			if bar.Filled() != width {
				t.Fatalf("width %d, total %d: complete bar filled %d", width, total, bar.Filled())
			}
		}
	}
}

func TestBarHugeCounters(t *testing.T) {
	bar := NewBar(40, '#', false)
	bar.Next(1<<63, 1<<62)
	assert.Equal(t, uint(20), bar.Filled())

	bar.Next(3, 1<<63)
	assert.Equal(t, uint(40), bar.Filled())
}

func TestBarWithoutPercent(t *testing.T) {
	bar := NewBar(4, '*', false)
	bar.Next(4, 2)
	assert.Equal(t, "[**  ]", bar.String())
}

func TestStringDoesNotMutate(t *testing.T) {
	components := map[string]Component{
		"bar":       NewBar(10, '#', true),
		"spinner":   NewSpinner(true),
		"pulse":     NewPulse(10, '#', true),
		"heartbeat": NewHeartbeat(10, '#', true),
	}

	for name, c := range components {
		t.Run(name, func(t *testing.T) {
			c.Next(10, 3)
			first := c.String()
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, c.String())
			}
		})
	}
}

func TestSpinnerPhases(t *testing.T) {
	s := NewSpinner(false)

	s.Next(100, 0)
	assert.Equal(t, " ", s.String(), "spinner is blank before any progress")

	expected := []string{"/", "-", "\\", "|", "/", "-", "\\", "|", "/"}
	for i, want := range expected {
		s.Next(100, uint64(i+1))
		assert.Equal(t, want, s.String(), "tick %d", i)
	}

	s.Next(100, 100)
	assert.Equal(t, " ", s.String(), "spinner is blank once complete")
	phase := s.phase
	s.Next(100, 100)
	assert.Equal(t, phase, s.phase, "spinner does not move once complete")
}

func TestSpinnerWithPercent(t *testing.T) {
	s := NewSpinner(true)
	s.Next(4, 1)
	assert.Equal(t, "/ 25.00%", s.String())
}

func TestPulseWraps(t *testing.T) {
	p := NewPulse(3, '#', false)

	p.Next(10, 1)
	assert.Equal(t, "[ # ]", p.String())
	p.Next(10, 2)
	assert.Equal(t, "[  #]", p.String())
	p.Next(10, 3)
	assert.Equal(t, "[#  ]", p.String())
	assert.Equal(t, uint(0), p.Index())

	p.Next(10, 10)
	assert.Equal(t, "[   ]", p.String(), "marker suppressed at 100%")
}

func TestHeartbeatOddWidth(t *testing.T) {
	h := NewHeartbeat(5, '#', false)

	h.Next(10, 1)
	assert.Equal(t, "[  #  ]", h.String())
	h.Next(10, 2)
	assert.Equal(t, "[ # # ]", h.String())
	h.Next(10, 3)
	assert.Equal(t, "[#   #]", h.String())

	// a new beat starts from the centre
	h.Next(10, 4)
	assert.Equal(t, "[  #  ]", h.String())
}

func TestHeartbeatEvenWidth(t *testing.T) {
	h := NewHeartbeat(6, '#', false)

	h.Next(10, 1)
	left, right := h.Markers()
	assert.Equal(t, uint(2), left)
	assert.Equal(t, uint(3), right)
	assert.Equal(t, "[  ##  ]", h.String())

	h.Next(10, 2)
	assert.Equal(t, "[ #  # ]", h.String())
	h.Next(10, 3)
	assert.Equal(t, "[#    #]", h.String())
}

func TestHeartbeatOnlyDrawnInRange(t *testing.T) {
	h := NewHeartbeat(5, '#', true)
	assert.Equal(t, "[     ] 0.00%", h.String())

	h.Next(10, 0)
	assert.Equal(t, "[     ] 0.00%", h.String())

	h.Next(10, 10)
	assert.Equal(t, "[     ] 100.00%", h.String())
}

func TestDescriptorBuild(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		prefix     string
	}{
		{name: "bar", descriptor: DefaultBar(), prefix: "[" + strings.Repeat(" ", 40) + "]"},
		{name: "spinner", descriptor: DefaultSpinner(), prefix: " "},
		{name: "pulse", descriptor: DefaultPulse(), prefix: "["},
		{name: "heartbeat", descriptor: DefaultHeartbeat(), prefix: "["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.descriptor.Build()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(c.String(), tt.prefix))
			assert.True(t, strings.HasSuffix(c.String(), "0.00%"))

			other, err := tt.descriptor.Build()
			require.NoError(t, err)
			assert.NotSame(t, c, other, "every build returns a new component")
		})
	}
}

func TestDescriptorErrors(t *testing.T) {
	_, err := Descriptor{Kind: KindBar}.Build()
	assert.True(t, errors.Is(err, ErrZeroWidth))

	_, err = Descriptor{Kind: "gauge", Width: 10}.Build()
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = Descriptor{}.Build()
	assert.True(t, errors.Is(err, ErrUnknownKind))

	c, err := Descriptor{Kind: KindSpinner}.Build()
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" HeartBeat ")
	require.NoError(t, err)
	assert.Equal(t, KindHeartbeat, k)

	_, err = ParseKind("dial")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
