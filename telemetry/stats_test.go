package telemetry

import (
	"math"
	"testing"
)

func TestComputeFrameStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
		wantP95  float64
	}{
		{"empty", []float64{}, 0, 0, 0},
		{"single", []float64{16.7}, 16.7, 16.7, 16.7},
		{"one to ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5.5, 5, 10},
		{"unsorted", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, 5.5, 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p95 := ComputeFrameStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("expected mean %v, got %v", tt.wantMean, mean)
			}
			if p50 != tt.wantP50 {
				t.Errorf("expected p50 %v, got %v", tt.wantP50, p50)
			}
			if p95 != tt.wantP95 {
				t.Errorf("expected p95 %v, got %v", tt.wantP95, p95)
			}
		})
	}
}

func TestComputeFrameStatsLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeFrameStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("expected input untouched, got %v", values)
	}
}
