package report

import (
	"testing"
	"time"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/session"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	out := ansi.Strip(Stats("stu", []mastery.SkillStats{
		{Category: "algebra.linear", TotalAttempted: 10, TotalCorrect: 7, Accuracy: 0.7, MasteryLevel: 52.3, Trend: mastery.TrendImproving},
		{Category: "geometry.circles", TotalAttempted: 4, TotalCorrect: 1, Accuracy: 0.25, MasteryLevel: 20, Trend: mastery.TrendStable},
	}, difficulty.DefaultThresholds()))

	assert.Contains(t, out, "Skill profile: stu")
	assert.Contains(t, out, "algebra.linear")
	assert.Contains(t, out, "7/10")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "improving")
	assert.Contains(t, out, difficulty.TierMedium.Label())
	assert.Contains(t, out, difficulty.TierEasy.Label())
}

func TestStats_Empty(t *testing.T) {
	out := ansi.Strip(Stats("stu", nil, difficulty.DefaultThresholds()))
	assert.Contains(t, out, "No practice recorded yet.")
}

func TestPractice(t *testing.T) {
	ps := &session.PracticeSession{
		ID:     "p-1",
		Config: selector.SessionConfig{Mode: selector.ModePractice, QuestionCount: 10},
		Questions: []question.Question{{
			ID: "m-1", Category: "algebra.linear", Difficulty: difficulty.TierEasy, Stem: "2x = 4",
			Options: []question.Option{
				{Kind: question.OptionChoice, Label: "A", Text: "1"},
				{Kind: question.OptionChoice, Label: "B", Text: "2"},
			},
		}, {
			ID: "m-2", Category: "algebra.quadratic", Difficulty: difficulty.TierHard, Stem: "x^2 = 9",
			Options: []question.Option{{Kind: question.OptionFreeform, Text: "Enter a number"}},
		}},
	}
	out := ansi.Strip(Practice(ps))

	assert.Contains(t, out, "Practice session p-1")
	assert.Contains(t, out, "2 questions, practice")
	assert.Contains(t, out, "[m-1] algebra.linear")
	assert.Contains(t, out, "B) 2")
	assert.Contains(t, out, "Enter a number")
}

func TestScore(t *testing.T) {
	out := ansi.Strip(Score(exam.Score{
		ELARaw: 40, MathRaw: 50, ELATotal: 57, MathTotal: 57,
		ELAScaled: 621, MathScaled: 726, Composite: 1347,
		Breakdown: exam.Breakdown{
			ELARevising:        exam.Tally{Correct: 20, Total: 27},
			ELAReading:         exam.Tally{Correct: 20, Total: 30},
			MathMultipleChoice: exam.Tally{Correct: 35, Total: 40},
			MathGridIn:         exam.Tally{Correct: 15, Total: 17},
		},
	}))

	assert.Contains(t, out, "1347")
	assert.Contains(t, out, "621  (40/57)")
	assert.Contains(t, out, "726  (50/57)")
	assert.Contains(t, out, "Grid-in")
}

func TestSummary(t *testing.T) {
	out := ansi.Strip(Summary(&session.Summary{
		SessionID: "p-1", Total: 10, Answered: 4, Correct: 3, Accuracy: 0.75,
		Categories: []session.CategoryResult{{Category: "algebra.linear", Attempted: 4, Correct: 3}},
	}))
	assert.Contains(t, out, "4 of 10")
	assert.Contains(t, out, "3 (75%)")
	assert.Contains(t, out, "algebra.linear")
}

func TestAnswer(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := mastery.SkillStats{Category: "algebra.linear", MasteryLevel: 42.5, Trend: mastery.TrendStable, LastPracticedAt: &at}

	assert.Contains(t, ansi.Strip(Answer(false, st)), "incorrect")
	assert.Contains(t, ansi.Strip(Answer(true, st)), "correct")
}
