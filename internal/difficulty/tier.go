package difficulty

import "fmt"

// Tier is a question difficulty level.
type Tier int

const (
	TierEasy   Tier = 1
	TierMedium Tier = 2
	TierHard   Tier = 3
)

// AllTiers returns every tier from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierHard
}

// Label returns the display label for a tier.
func (t Tier) Label() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Distance is the number of tiers between t and other.
func (t Tier) Distance(other Tier) int {
	d := int(t) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

// ParseTier converts 1, 2 or 3 into a Tier.
func ParseTier(n int) (Tier, error) {
	t := Tier(n)
	if !t.Valid() {
		return 0, fmt.Errorf("difficulty %d out of range 1-3", n)
	}
	return t, nil
}
