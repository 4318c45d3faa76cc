package exam

import (
	"math"
	"strings"

	"github.com/abhisek/prepengine/internal/question"
)

const (
	// DefaultScaleFloor is the scaled score of a section with no correct answers.
	DefaultScaleFloor = 200
	// DefaultScaleSpan is the width of the scaled range above the floor.
	DefaultScaleSpan = 600
	// DefaultRevisingPrefix marks ELA categories scored as revising.
	DefaultRevisingPrefix = "revising"
)

// Scale maps a raw fraction correct onto the display range. It is a plain
// linear transform, not an equating table.
type Scale struct {
	Floor int `mapstructure:"floor"`
	Span  int `mapstructure:"span"`
}

// DefaultScale returns the 200-800 scale.
func DefaultScale() Scale {
	return Scale{Floor: DefaultScaleFloor, Span: DefaultScaleSpan}
}

// Apply returns round(floor + raw/total*span). A zero total scores the floor.
func (s Scale) Apply(raw, total int) int {
	if total <= 0 {
		return s.Floor
	}
	pct := float64(raw) / float64(total)
	pct = math.Max(0, math.Min(1, pct))
	return int(math.Round(float64(s.Floor) + pct*float64(s.Span)))
}

// Attempt is one answered exam question.
type Attempt struct {
	IsCorrect bool
	Category  string
	Type      question.Type
	Section   question.Section
}

// Tally counts correct answers out of a total.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (t *Tally) add(correct bool) {
	t.Total++
	if correct {
		t.Correct++
	}
}

// Breakdown splits each section into its two scoring buckets.
type Breakdown struct {
	ELARevising        Tally `json:"ela_revising"`
	ELAReading         Tally `json:"ela_reading"`
	MathMultipleChoice Tally `json:"math_multiple_choice"`
	MathGridIn         Tally `json:"math_grid_in"`
}

// Score is the result of a full-length exam.
type Score struct {
	ELARaw     int       `json:"ela_raw"`
	MathRaw    int       `json:"math_raw"`
	ELATotal   int       `json:"ela_total"`
	MathTotal  int       `json:"math_total"`
	ELAScaled  int       `json:"ela_scaled"`
	MathScaled int       `json:"math_scaled"`
	Composite  int       `json:"composite_score"`
	Breakdown  Breakdown `json:"breakdown"`
}

// Scorer converts exam attempts into scaled scores.
type Scorer struct {
	scale          Scale
	revisingPrefix string
}

// NewScorer creates a scorer. An empty prefix uses DefaultRevisingPrefix.
func NewScorer(scale Scale, revisingPrefix string) *Scorer {
	if revisingPrefix == "" {
		revisingPrefix = DefaultRevisingPrefix
	}
	return &Scorer{scale: scale, revisingPrefix: revisingPrefix}
}

// Score aggregates attempts. Attempts in an unknown section are ignored.
func (s *Scorer) Score(attempts []Attempt) Score {
	var b Breakdown
	for _, a := range attempts {
		switch a.Section {
		case question.SectionELA:
			if strings.HasPrefix(a.Category, s.revisingPrefix) {
				b.ELARevising.add(a.IsCorrect)
			} else {
				b.ELAReading.add(a.IsCorrect)
			}
		case question.SectionMath:
			if a.Type == question.TypeGridIn {
				b.MathGridIn.add(a.IsCorrect)
			} else {
				b.MathMultipleChoice.add(a.IsCorrect)
			}
		}
	}

	sc := Score{
		ELARaw:    b.ELARevising.Correct + b.ELAReading.Correct,
		ELATotal:  b.ELARevising.Total + b.ELAReading.Total,
		MathRaw:   b.MathMultipleChoice.Correct + b.MathGridIn.Correct,
		MathTotal: b.MathMultipleChoice.Total + b.MathGridIn.Total,
		Breakdown: b,
	}
	sc.ELAScaled = s.scale.Apply(sc.ELARaw, sc.ELATotal)
	sc.MathScaled = s.scale.Apply(sc.MathRaw, sc.MathTotal)
	sc.Composite = sc.ELAScaled + sc.MathScaled
	return sc
}
