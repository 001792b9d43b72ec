package utils

import (
	"math"
	"sort"
)

// Fixed chart palette used by the dashboard series. Breakdowns that show more
// markets than colors cycle through it.
var ChartPalette = []string{"#4F46E5", "#10B981", "#F59E0B"}

// PaletteColor returns the palette entry for series index i, cycling when i
// runs past the palette.
func PaletteColor(i int) string {
	return ChartPalette[i%len(ChartPalette)]
}

// Round1 rounds to one decimal place, the precision every rate and
// percentage in the reports is expressed in.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PercentChange computes the change from previous to current as a
// percentage rounded to one decimal. Division by zero is never surfaced:
// growth from nothing reads as 100, no activity at all reads as 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Round1((current - previous) / previous * 100)
}

// KPIMetrics summarises a metric against its prior-period value.
type KPIMetrics struct {
	CurrentValue  float64 `json:"currentValue"`
	PreviousValue float64 `json:"previousValue"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Trend         string  `json:"trend"` // up, down, stable
}

// CalculateKPI builds KPI metrics with trend direction.
func CalculateKPI(current, previous float64) *KPIMetrics {
	kpi := &KPIMetrics{
		CurrentValue:  current,
		PreviousValue: previous,
		Change:        current - previous,
		ChangePercent: PercentChange(current, previous),
	}
	switch {
	case kpi.Change > 0:
		kpi.Trend = "up"
	case kpi.Change < 0:
		kpi.Trend = "down"
	default:
		kpi.Trend = "stable"
	}
	return kpi
}

// StatisticalSummary describes a set of payment amounts.
type StatisticalSummary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// CalculateStatistics computes a statistical summary over values. Returns
// nil for an empty input.
func CalculateStatistics(values []float64) *StatisticalSummary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := &StatisticalSummary{Count: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(s.Count)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.Median = sorted[mid]
	}

	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(s.Count))

	return s
}
