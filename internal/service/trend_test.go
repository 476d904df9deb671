package service

import (
	"testing"

	"github.com/willowhealth/willow-api/internal/models"
)

func TestSeverityTrend(t *testing.T) {
	tests := []struct {
		name       string
		severities []float64
		want       models.Trend
	}{
		{
			name:       "empty series is stable",
			severities: nil,
			want:       models.TrendStable,
		},
		{
			name:       "three points is insufficient data",
			severities: []float64{1, 2, 3},
			want:       models.TrendStable,
		},
		{
			name:       "four rising points",
			severities: []float64{1, 1, 2, 2},
			want:       models.TrendIncreasing,
		},
		{
			name:       "five points with worsening second half",
			severities: []float64{2, 2, 3, 3, 3},
			want:       models.TrendIncreasing,
		},
		{
			name:       "falling severities",
			severities: []float64{3, 3, 1, 1},
			want:       models.TrendDecreasing,
		},
		{
			name:       "flat series",
			severities: []float64{2, 2, 2, 2},
			want:       models.TrendStable,
		},
		{
			name:       "change inside dead zone stays stable",
			severities: []float64{2.0, 2.0, 2.125, 2.125}, // +6.25%
			want:       models.TrendStable,
		},
		{
			name:       "change past dead zone",
			severities: []float64{2.0, 2.0, 2.25, 2.25}, // +12.5%
			want:       models.TrendIncreasing,
		},
		{
			name:       "zero baseline half is stable",
			severities: []float64{0, 0, 2, 2},
			want:       models.TrendStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := severityTrend(tt.severities)
			if got != tt.want {
				t.Errorf("severityTrend(%v) = %s, want %s", tt.severities, got, tt.want)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		baseline float64
		current  float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"zero baseline positive current", 0, 5, 100},
		{"doubling", 2, 4, 100},
		{"halving", 4, 2, -50},
		{"unchanged", 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentChange(tt.baseline, tt.current)
			if got != tt.want {
				t.Errorf("percentChange(%v, %v) = %v, want %v", tt.baseline, tt.current, got, tt.want)
			}
		})
	}
}

func TestProgressImproved_RequiresBothSignals(t *testing.T) {
	// Count down 50%, severity down 20%: improvement.
	if !progressImproved(10, 5, 2.5, 2.0) {
		t.Error("expected improvement when both frequency and severity drop")
	}

	// Count down 50% but severity unchanged: not improvement.
	if progressImproved(10, 5, 2.0, 2.0) {
		t.Error("frequency drop alone should not count as improvement")
	}

	// Severity down 20% but count unchanged: not improvement.
	if progressImproved(10, 10, 2.5, 2.0) {
		t.Error("severity drop alone should not count as improvement")
	}
}

func TestProgressWorsened_EitherSignalSuffices(t *testing.T) {
	// Count up 50%, severity unchanged.
	if !progressWorsened(10, 15, 2.0, 2.0) {
		t.Error("frequency increase alone should count as worsening")
	}

	// Severity up 25%, count unchanged.
	if !progressWorsened(10, 10, 2.0, 2.5) {
		t.Error("severity increase alone should count as worsening")
	}

	// Both inside the dead zones.
	if progressWorsened(10, 11, 2.0, 2.1) {
		t.Error("small shifts should not count as worsening")
	}
}
