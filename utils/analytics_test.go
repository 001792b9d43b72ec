package utils

import "testing"

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 75, 100, -25},
		{"no change", 100, 100, 0},
		{"from zero to something", 40, 0, 100},
		{"zero to zero", 0, 0, 0},
		{"rounds to one decimal", 110, 90, 22.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(tt.current, tt.previous)
			if got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333, 33.3},
		{66.666, 66.7},
		{50, 50},
		{0.05, 0.1},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPaletteColorCycles(t *testing.T) {
	if PaletteColor(0) != ChartPalette[0] {
		t.Errorf("PaletteColor(0) = %s", PaletteColor(0))
	}
	if PaletteColor(3) != ChartPalette[0] {
		t.Errorf("PaletteColor(3) should wrap to the first color, got %s", PaletteColor(3))
	}
	if PaletteColor(5) != ChartPalette[2] {
		t.Errorf("PaletteColor(5) should wrap to the third color, got %s", PaletteColor(5))
	}
}

func TestCalculateKPITrend(t *testing.T) {
	up := CalculateKPI(200, 100)
	if up.Trend != "up" || up.ChangePercent != 100 {
		t.Errorf("expected up/100, got %s/%v", up.Trend, up.ChangePercent)
	}

	down := CalculateKPI(50, 100)
	if down.Trend != "down" {
		t.Errorf("expected down trend, got %s", down.Trend)
	}

	stable := CalculateKPI(100, 100)
	if stable.Trend != "stable" || stable.ChangePercent != 0 {
		t.Errorf("expected stable/0, got %s/%v", stable.Trend, stable.ChangePercent)
	}
}

func TestCalculateStatistics(t *testing.T) {
	if got := CalculateStatistics(nil); got != nil {
		t.Errorf("expected nil summary for empty input, got %+v", got)
	}

	s := CalculateStatistics([]float64{100, 200, 300, 400})
	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if s.Sum != 1000 {
		t.Errorf("Sum = %v, want 1000", s.Sum)
	}
	if s.Mean != 250 {
		t.Errorf("Mean = %v, want 250", s.Mean)
	}
	if s.Median != 250 {
		t.Errorf("Median = %v, want 250", s.Median)
	}
	if s.Min != 100 || s.Max != 400 {
		t.Errorf("Min/Max = %v/%v, want 100/400", s.Min, s.Max)
	}

	odd := CalculateStatistics([]float64{10, 30, 20})
	if odd.Median != 20 {
		t.Errorf("Median = %v, want 20", odd.Median)
	}
}
