package difficulty

const (
	// DefaultLowThreshold is the lowest mastery level served medium questions.
	DefaultLowThreshold = 35.0

	// DefaultHighThreshold is the lowest mastery level served hard questions.
	DefaultHighThreshold = 70.0
)

// Thresholds split the 0-100 mastery range into the three tiers. Each band
// includes its lower bound.
type Thresholds struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// DefaultThresholds returns the default mastery bands.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLowThreshold, High: DefaultHighThreshold}
}

// Valid reports whether the bands are ordered and inside 0-100.
func (th Thresholds) Valid() bool {
	return th.Low > 0 && th.Low < th.High && th.High <= 100
}

// ForMastery maps a mastery level to the tier a student should be served.
// Levels outside 0-100 fall into the end tiers.
func (th Thresholds) ForMastery(masteryLevel float64) Tier {
	if !th.Valid() {
		th = DefaultThresholds()
	}
	switch {
	case masteryLevel >= th.High:
		return TierHard
	case masteryLevel >= th.Low:
		return TierMedium
	default:
		return TierEasy
	}
}

// ForMastery maps a mastery level to a tier using the default thresholds.
func ForMastery(masteryLevel float64) Tier {
	return DefaultThresholds().ForMastery(masteryLevel)
}
