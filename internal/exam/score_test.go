package exam

import (
	"testing"

	"github.com/abhisek/prepengine/internal/question"
	"github.com/stretchr/testify/assert"
)

func attempts(section question.Section, category string, typ question.Type, correct, total int) []Attempt {
	out := make([]Attempt, total)
	for i := range out {
		out[i] = Attempt{IsCorrect: i < correct, Category: category, Type: typ, Section: section}
	}
	return out
}

func TestScore_Empty(t *testing.T) {
	sc := NewScorer(DefaultScale(), "").Score(nil)

	assert.Equal(t, 0, sc.ELARaw)
	assert.Equal(t, 0, sc.MathRaw)
	assert.Equal(t, 0, sc.ELATotal)
	assert.Equal(t, 0, sc.MathTotal)
	assert.Equal(t, 200, sc.ELAScaled)
	assert.Equal(t, 200, sc.MathScaled)
	assert.Equal(t, 400, sc.Composite)
	assert.Equal(t, Breakdown{}, sc.Breakdown)
}

func TestScore_FullExamScenario(t *testing.T) {
	var all []Attempt
	// ELA: 40 of 57 correct, split across revising and reading.
	all = append(all, attempts(question.SectionELA, "revising-transitions", question.TypeMultipleChoice, 20, 27)...)
	all = append(all, attempts(question.SectionELA, "reading-inference", question.TypeMultipleChoice, 20, 30)...)
	// Math: 50 of 57 correct.
	all = append(all, attempts(question.SectionMath, "algebra", question.TypeMultipleChoice, 35, 40)...)
	all = append(all, attempts(question.SectionMath, "algebra", question.TypeGridIn, 15, 17)...)

	sc := NewScorer(DefaultScale(), "").Score(all)

	assert.Equal(t, 40, sc.ELARaw)
	assert.Equal(t, 57, sc.ELATotal)
	assert.Equal(t, 50, sc.MathRaw)
	assert.Equal(t, 57, sc.MathTotal)
	// 200 + 600*40/57 = 621.05, 200 + 600*50/57 = 726.32
	assert.Equal(t, 621, sc.ELAScaled)
	assert.Equal(t, 726, sc.MathScaled)
	assert.Equal(t, 1347, sc.Composite)

	assert.Equal(t, Tally{Correct: 20, Total: 27}, sc.Breakdown.ELARevising)
	assert.Equal(t, Tally{Correct: 20, Total: 30}, sc.Breakdown.ELAReading)
	assert.Equal(t, Tally{Correct: 35, Total: 40}, sc.Breakdown.MathMultipleChoice)
	assert.Equal(t, Tally{Correct: 15, Total: 17}, sc.Breakdown.MathGridIn)
}

func TestScore_OneSectionOnly(t *testing.T) {
	sc := NewScorer(DefaultScale(), "").Score(attempts(question.SectionMath, "geometry", question.TypeMultipleChoice, 10, 10))

	assert.Equal(t, 800, sc.MathScaled)
	assert.Equal(t, 200, sc.ELAScaled)
	assert.Equal(t, 1000, sc.Composite)
}

func TestScore_UnknownSectionIgnored(t *testing.T) {
	sc := NewScorer(DefaultScale(), "").Score([]Attempt{{IsCorrect: true, Section: "science"}})

	assert.Equal(t, 0, sc.ELATotal+sc.MathTotal)
	assert.Equal(t, 400, sc.Composite)
}

func TestScore_CustomRevisingPrefix(t *testing.T) {
	sc := NewScorer(DefaultScale(), "craft").Score([]Attempt{
		{IsCorrect: true, Category: "craft-structure", Section: question.SectionELA},
		{IsCorrect: true, Category: "revising-x", Section: question.SectionELA},
	})

	assert.Equal(t, 1, sc.Breakdown.ELARevising.Total)
	assert.Equal(t, 1, sc.Breakdown.ELAReading.Total)
}

func TestScale_Monotone(t *testing.T) {
	s := DefaultScale()
	for _, total := range []int{1, 7, 27, 57, 100} {
		prev := s.Apply(0, total)
		assert.Equal(t, 200, prev)
		for raw := 1; raw <= total; raw++ {
			got := s.Apply(raw, total)
			assert.GreaterOrEqual(t, got, prev, "total %d raw %d", total, raw)
			prev = got
		}
		assert.Equal(t, 800, prev)
	}
}

func TestScale_Apply(t *testing.T) {
	tests := []struct {
		raw, total, want int
	}{
		{0, 0, 200},
		{5, 0, 200},
		{1, 2, 500},
		{1, 3, 400},
		{2, 3, 600},
		{1, 8, 275},   // 275.0
		{1, 16, 238},  // 237.5 rounds half away from zero
		{20, 10, 800}, // clamped
	}
	s := DefaultScale()
	for _, tt := range tests {
		if got := s.Apply(tt.raw, tt.total); got != tt.want {
			t.Errorf("Apply(%d, %d) = %d, want %d", tt.raw, tt.total, got, tt.want)
		}
	}
}
