package engine

import "testing"

func TestUtilizationStatus_Bands(t *testing.T) {
	tests := []struct {
		utilization float64
		expected    UtilizationBand
	}{
		{0, UtilizationExcellent},
		{9.99, UtilizationExcellent},
		{10, UtilizationGood},
		{29.99, UtilizationGood},
		{30, UtilizationFair}, // boundary belongs to fair, not good
		{49.99, UtilizationFair},
		{50, UtilizationPoor},
		{74.99, UtilizationPoor},
		{75, UtilizationCritical},
		{100, UtilizationCritical},
		{250, UtilizationCritical},
	}

	for _, tc := range tests {
		if got := UtilizationStatus(tc.utilization); got != tc.expected {
			t.Errorf("UtilizationStatus(%f) = %s, want %s", tc.utilization, got, tc.expected)
		}
	}
}

func TestUtilizationStatus_PartitionIsTotal(t *testing.T) {
	// Every value in [0, 200) must land in exactly one band, and adjacent
	// samples may only move to the same or a worse band.
	order := map[UtilizationBand]int{
		UtilizationExcellent: 0,
		UtilizationGood:      1,
		UtilizationFair:      2,
		UtilizationPoor:      3,
		UtilizationCritical:  4,
	}

	prev := UtilizationExcellent
	for u := 0.0; u < 200; u += 0.25 {
		band := UtilizationStatus(u)
		if _, known := order[band]; !known {
			t.Fatalf("UtilizationStatus(%f) returned unknown band %s", u, band)
		}
		if order[band] < order[prev] {
			t.Fatalf("bands not monotone: %f maps to %s after %s", u, band, prev)
		}
		prev = band
	}
}

func TestDiversificationScore_EqualWeights(t *testing.T) {
	factors := []ScoreFactor{
		{Name: "asset_class_spread", Score: 80},
		{Name: "geographic_spread", Score: 60},
		{Name: "sector_balance", Score: 90},
		{Name: "correlation", Score: 82},
	}

	got := DiversificationScore(factors, nil)
	if got != 78 {
		t.Errorf("DiversificationScore() = %f, want 78", got)
	}
}

func TestDiversificationScore_Weighted(t *testing.T) {
	factors := []ScoreFactor{
		{Name: "a", Score: 100},
		{Name: "b", Score: 0},
	}
	weights := map[string]float64{"a": 3, "b": 1}

	if got := DiversificationScore(factors, weights); got != 75 {
		t.Errorf("DiversificationScore() = %f, want 75", got)
	}
}

func TestDiversificationScore_NoFactors(t *testing.T) {
	if got := DiversificationScore(nil, nil); got != 0 {
		t.Errorf("DiversificationScore(nil) = %f, want 0", got)
	}
}

func TestDiversificationScore_Clamped(t *testing.T) {
	factors := []ScoreFactor{{Name: "a", Score: 150}}
	if got := DiversificationScore(factors, nil); got != 100 {
		t.Errorf("DiversificationScore() = %f, want clamp to 100", got)
	}
}
