package mastery

import "time"

const (
	// DefaultAlpha is the smoothing factor of the recent-accuracy average.
	DefaultAlpha = 0.2

	// DefaultLearningRate is the weight given to recent accuracy on each
	// mastery update.
	DefaultLearningRate = 0.15

	// DefaultMinTrendSamples is the attempt count below which the trend is
	// always stable.
	DefaultMinTrendSamples = 5
)

// Params are the tunable constants of the estimator. They are policy
// values, not calibrated psychometric parameters.
type Params struct {
	Alpha           float64 `mapstructure:"alpha"`
	LearningRate    float64 `mapstructure:"learning_rate"`
	TrendMargin     float64 `mapstructure:"trend_margin"`
	MinTrendSamples int     `mapstructure:"min_trend_samples"`
}

// DefaultParams returns the default estimator constants.
func DefaultParams() Params {
	return Params{
		Alpha:           DefaultAlpha,
		LearningRate:    DefaultLearningRate,
		TrendMargin:     DefaultTrendMargin,
		MinTrendSamples: DefaultMinTrendSamples,
	}
}

// Estimator updates skill records from attempt outcomes.
type Estimator struct {
	params Params
}

// NewEstimator creates an estimator. Out-of-range smoothing constants fall
// back to the defaults.
func NewEstimator(p Params) *Estimator {
	d := DefaultParams()
	if p.Alpha <= 0 || p.Alpha > 1 {
		p.Alpha = d.Alpha
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		p.LearningRate = d.LearningRate
	}
	if p.TrendMargin < 0 {
		p.TrendMargin = d.TrendMargin
	}
	if p.MinTrendSamples < 0 {
		p.MinTrendSamples = d.MinTrendSamples
	}
	return &Estimator{params: p}
}

// Params returns the effective constants.
func (e *Estimator) Params() Params {
	return e.params
}

// Update returns prev advanced by one attempt. prev is not modified.
//
// Mastery moves toward the blended target but never against the outcome:
// a correct answer cannot lower it and a wrong answer cannot raise it.
func (e *Estimator) Update(prev SkillStats, isCorrect bool, attemptedAt time.Time) SkillStats {
	next := prev
	if next.TotalAttempted <= 0 {
		next = NewSkillStats(prev.StudentID, prev.Category)
		next.Version = prev.Version
	}

	outcome := 0.0
	next.TotalAttempted++
	if isCorrect {
		next.TotalCorrect++
		outcome = 1.0
	}
	next.Accuracy = next.lifetimeAccuracy()

	a := e.params.Alpha
	next.RecentAccuracy = clamp(a*outcome+(1-a)*next.RecentAccuracy, 0, 1)

	w := e.params.LearningRate
	blend := clamp(w*next.RecentAccuracy*100+(1-w)*next.MasteryLevel, 0, 100)
	if isCorrect {
		next.MasteryLevel = max(next.MasteryLevel, blend)
	} else {
		next.MasteryLevel = min(next.MasteryLevel, blend)
	}
	next.MasteryLevel = clamp(next.MasteryLevel, 0, 100)

	at := attemptedAt
	next.LastPracticedAt = &at
	next.Trend = e.TrendFor(next)
	return next
}

// TrendFor classifies the record's trend, reporting stable until enough
// attempts exist for the comparison to mean anything.
func (e *Estimator) TrendFor(s SkillStats) Trend {
	if s.TotalAttempted < e.params.MinTrendSamples {
		return TrendStable
	}
	return calculateTrend(s.Accuracy, s.RecentAccuracy, e.params.TrendMargin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
