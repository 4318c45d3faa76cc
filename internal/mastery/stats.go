package mastery

import "time"

// DefaultMasteryLevel is the neutral starting estimate for a skill that has
// never been attempted.
const DefaultMasteryLevel = 50.0

// SkillStats holds one student's performance record for a single skill
// category.
type SkillStats struct {
	StudentID       string
	Category        string
	TotalAttempted  int
	TotalCorrect    int
	Accuracy        float64 // lifetime, 0..1
	RecentAccuracy  float64 // exponentially weighted, 0..1
	MasteryLevel    float64 // 0..100
	Trend           Trend
	LastPracticedAt *time.Time

	// Version is bumped by the store on every write and used for
	// optimistic concurrency. Update leaves it untouched.
	Version int64
}

// NewSkillStats returns the neutral record for a category nobody has
// practiced yet.
func NewSkillStats(studentID, category string) SkillStats {
	return SkillStats{
		StudentID:    studentID,
		Category:     category,
		MasteryLevel: DefaultMasteryLevel,
		Trend:        TrendStable,
	}
}

// IsNew reports whether no attempt has been recorded for the skill.
func (s SkillStats) IsNew() bool {
	return s.TotalAttempted == 0
}

// lifetimeAccuracy recomputes accuracy from the counters.
func (s SkillStats) lifetimeAccuracy() float64 {
	if s.TotalAttempted == 0 {
		return 0.0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAttempted)
}

// Index keys stats by category. Later entries win on duplicate categories.
func Index(stats []SkillStats) map[string]SkillStats {
	m := make(map[string]SkillStats, len(stats))
	for _, s := range stats {
		m[s.Category] = s
	}
	return m
}
