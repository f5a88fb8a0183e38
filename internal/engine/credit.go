package engine

// UtilizationBand classifies credit utilization into ordered health bands.
type UtilizationBand string

// Utilization bands, best to worst. Boundaries are inclusive-low /
// exclusive-high except the last, which is open-ended.
const (
	UtilizationExcellent UtilizationBand = "excellent" // [0, 10)
	UtilizationGood      UtilizationBand = "good"      // [10, 30)
	UtilizationFair      UtilizationBand = "fair"      // [30, 50)
	UtilizationPoor      UtilizationBand = "poor"      // [50, 75)
	UtilizationCritical  UtilizationBand = "critical"  // [75, ∞)
)

// UtilizationStatus returns the band for a utilization percentage. The bands
// partition [0, ∞): exactly one applies to any value.
func UtilizationStatus(utilization float64) UtilizationBand {
	switch {
	case utilization < 10:
		return UtilizationExcellent
	case utilization < 30:
		return UtilizationGood
	case utilization < 50:
		return UtilizationFair
	case utilization < 75:
		return UtilizationPoor
	default:
		return UtilizationCritical
	}
}

// ScoreFactor is one named component of a diversification score, valued 0-100.
type ScoreFactor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// DiversificationScore combines factor scores into a single 0-100 composite
// using a weighted mean. Factors without a configured weight count with weight
// 1, so an empty weight map degrades to a simple mean. No factors scores 0.
func DiversificationScore(factors []ScoreFactor, weights map[string]float64) float64 {
	if len(factors) == 0 {
		return 0
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for _, f := range factors {
		w := 1.0
		if cw, ok := weights[f.Name]; ok && cw > 0 {
			w = cw
		}
		weightedSum += f.Score * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}

	composite := weightedSum / totalWeight
	if composite < 0 {
		return 0
	}
	if composite > 100 {
		return 100
	}
	return composite
}
