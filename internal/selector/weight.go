package selector

import "github.com/abhisek/prepengine/internal/mastery"

// Weights tune how strongly the selector favours weak categories.
type Weights struct {
	// Floor is the weight of a fully mastered, stable category.
	Floor float64
	// Declining multiplies the weight of categories trending down.
	Declining float64
	// Improving multiplies the weight of categories trending up.
	Improving float64
}

// DefaultWeights returns the default need weighting.
func DefaultWeights() Weights {
	return Weights{Floor: 0.1, Declining: 1.5, Improving: 0.75}
}

// Need returns the selection weight of a category. It falls linearly from
// 1 at mastery 0 to Floor at mastery 100, then is scaled by the trend.
func (w Weights) Need(s mastery.SkillStats) float64 {
	m := s.MasteryLevel
	if m < 0 {
		m = 0
	}
	if m > 100 {
		m = 100
	}
	need := w.Floor + (1-w.Floor)*(100-m)/100

	switch s.Trend {
	case mastery.TrendDeclining:
		need *= w.Declining
	case mastery.TrendImproving:
		need *= w.Improving
	}
	if need < w.Floor {
		need = w.Floor
	}
	return need
}
