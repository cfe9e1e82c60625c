package component

import (
	"testing"
)

func TestPercentString(t *testing.T) {
	tests := []struct {
		count    uint64
		expected string
	}{
		{0, "0.00%"},
		{1, "1.00%"},
		{3, "3.00%"},
		{50, "50.00%"},
		{75, "75.00%"},
		{100, "100.00%"},
		{120, "120.00%"},
	}

	for _, tt := range tests {
		got := NewPercent(100, tt.count).String()
		if got != tt.expected {
			t.Errorf("NewPercent(100, %d).String() = %q, want %q", tt.count, got, tt.expected)
		}
	}
}

func TestPercentIsInRange(t *testing.T) {
	tests := []struct {
		count    uint64
		expected bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{50, true},
		{75, true},
		{100, false},
		{120, false},
	}

	for _, tt := range tests {
		got := NewPercent(100, tt.count).IsInRange()
		if got != tt.expected {
			t.Errorf("NewPercent(100, %d).IsInRange() = %v, want %v", tt.count, got, tt.expected)
		}
	}
}

func TestPercentValue(t *testing.T) {
	for total := uint64(1); total <= 50; total++ {
		for count := uint64(0); count <= total; count++ {
			p := NewPercent(total, count)
			want := float64(count) / float64(total) * 100
			if p.Value() != want {
				t.Fatalf("NewPercent(%d, %d).Value() = %v, want %v", total, count, p.Value(), want)
			}
			if p.IsInRange() != (want > 0 && want < 100) {
				t.Fatalf("NewPercent(%d, %d).IsInRange() mismatch", total, count)
			}
		}
	}
}

func TestPercentZeroCountIgnoresTotal(t *testing.T) {
	if v := NewPercent(0, 0).Value(); v != 0 {
		t.Errorf("Expected 0 for zero count, got %v", v)
	}
}
