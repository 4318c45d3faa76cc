package exam

import "github.com/abhisek/prepengine/internal/question"

const (
	// DefaultELACount is the number of ELA questions on a full exam.
	DefaultELACount = 57
	// DefaultMathCount is the number of math questions on a full exam.
	DefaultMathCount = 57
)

// Blueprint is the fixed section composition of a full-length exam.
type Blueprint struct {
	ELACount  int `mapstructure:"ela_count"`
	MathCount int `mapstructure:"math_count"`
}

// DefaultBlueprint returns the standard 57/57 composition.
func DefaultBlueprint() Blueprint {
	return Blueprint{ELACount: DefaultELACount, MathCount: DefaultMathCount}
}

// Count returns the number of questions the blueprint asks for in section.
func (b Blueprint) Count(section question.Section) int {
	switch section {
	case question.SectionELA:
		return max(b.ELACount, 0)
	case question.SectionMath:
		return max(b.MathCount, 0)
	default:
		return 0
	}
}
