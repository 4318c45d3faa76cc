package mastery

// Trend is the direction of a skill's recent performance relative to its
// lifetime performance.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DefaultTrendMargin is how far recent accuracy must move away from lifetime
// accuracy before the trend leaves stable.
const DefaultTrendMargin = 0.05

// CalculateTrend classifies the gap between lifetime and recent accuracy
// using the default margin.
func CalculateTrend(accuracy, recentAccuracy float64) Trend {
	return calculateTrend(accuracy, recentAccuracy, DefaultTrendMargin)
}

func calculateTrend(accuracy, recentAccuracy, margin float64) Trend {
	switch {
	case recentAccuracy-accuracy > margin:
		return TrendImproving
	case accuracy-recentAccuracy > margin:
		return TrendDeclining
	default:
		return TrendStable
	}
}
