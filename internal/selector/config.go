package selector

import (
	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/question"
)

// Mode is the kind of practice session.
type Mode string

const (
	ModePractice      Mode = "practice"
	ModeTimedPractice Mode = "timed_practice"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePractice || m == ModeTimedPractice
}

const (
	MinQuestionCount = 10
	MaxQuestionCount = 50
)

// SessionConfig describes the practice session being assembled. Empty
// filter fields mean "any".
type SessionConfig struct {
	Section       question.Section
	Category      string // prefix match
	Difficulty    difficulty.Tier
	Mode          Mode
	QuestionCount int
}

// Filter returns the pool filter implied by the config.
func (c SessionConfig) Filter() question.Filter {
	return question.Filter{
		Section:        c.Section,
		CategoryPrefix: c.Category,
		Difficulty:     c.Difficulty,
	}
}

// Selection is one picked question. Position is its index in the session.
type Selection struct {
	QuestionID string
	Position   int
}
