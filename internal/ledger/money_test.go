package ledger

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.236, 1.24},
		{-1.236, -1.24},
		{99.999, 100},
		{0.004, 0},
		{150.0, 150.0},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettled(t *testing.T) {
	if !settled(0) || !settled(5e-7) || !settled(-5e-7) {
		t.Error("values within Epsilon should count as settled")
	}
	if settled(0.01) || settled(-0.01) {
		t.Error("cent-sized residuals are not settled")
	}
}
