package mastery

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func replay(e *Estimator, s SkillStats, outcomes []bool) []SkillStats {
	steps := make([]SkillStats, 0, len(outcomes))
	for i, c := range outcomes {
		s = e.Update(s, c, t0.Add(time.Duration(i)*time.Minute))
		steps = append(steps, s)
	}
	return steps
}

func TestUpdate_FirstAttemptStartsFromNeutral(t *testing.T) {
	e := NewEstimator(DefaultParams())

	got := e.Update(SkillStats{StudentID: "s1", Category: "algebra"}, true, t0)

	assert.Equal(t, 1, got.TotalAttempted)
	assert.Equal(t, 1, got.TotalCorrect)
	assert.InDelta(t, 1.0, got.Accuracy, 1e-9)
	assert.InDelta(t, 0.2, got.RecentAccuracy, 1e-9)
	// Blend is 0.15*20 + 0.85*50 = 45.5, below 50, so a correct answer holds.
	assert.InDelta(t, DefaultMasteryLevel, got.MasteryLevel, 1e-9)
	assert.Equal(t, TrendStable, got.Trend)
	require.NotNil(t, got.LastPracticedAt)
	assert.Equal(t, t0, *got.LastPracticedAt)
}

func TestUpdate_DoesNotMutatePrevious(t *testing.T) {
	e := NewEstimator(DefaultParams())
	prev := NewSkillStats("s1", "algebra")

	_ = e.Update(prev, false, t0)

	assert.Equal(t, 0, prev.TotalAttempted)
	assert.Nil(t, prev.LastPracticedAt)
	assert.InDelta(t, DefaultMasteryLevel, prev.MasteryLevel, 1e-9)
}

func TestUpdate_SevenOfTenInAlgebra(t *testing.T) {
	e := NewEstimator(DefaultParams())
	outcomes := []bool{true, true, false, true, true, false, true, true, false, true}

	steps := replay(e, NewSkillStats("s1", "algebra"), outcomes)
	last := steps[len(steps)-1]

	assert.Equal(t, 10, last.TotalAttempted)
	assert.Equal(t, 7, last.TotalCorrect)
	assert.InDelta(t, 0.7, last.Accuracy, 1e-9)
	assert.Greater(t, last.MasteryLevel, DefaultMasteryLevel)
	assert.Less(t, last.MasteryLevel, 100.0)
	assert.InDelta(t, 52.2654, last.MasteryLevel, 1e-3)
}

func TestUpdate_WrongAnswerLowersMastery(t *testing.T) {
	e := NewEstimator(DefaultParams())

	got := e.Update(NewSkillStats("s1", "geometry"), false, t0)

	assert.InDelta(t, 42.5, got.MasteryLevel, 1e-9)
	assert.InDelta(t, 0.0, got.Accuracy, 1e-9)
}

func TestUpdate_LongCorrectRunApproachesCeiling(t *testing.T) {
	e := NewEstimator(DefaultParams())
	outcomes := make([]bool, 200)
	for i := range outcomes {
		outcomes[i] = true
	}

	steps := replay(e, NewSkillStats("s1", "algebra"), outcomes)
	last := steps[len(steps)-1]

	assert.Greater(t, last.MasteryLevel, 99.0)
	assert.LessOrEqual(t, last.MasteryLevel, 100.0)
}

func TestUpdate_MasteryStaysInBounds(t *testing.T) {
	e := NewEstimator(DefaultParams())
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		s := NewSkillStats("s1", "reading")
		for i := 0; i < 150; i++ {
			s = e.Update(s, rng.Intn(2) == 0, t0)
			require.GreaterOrEqual(t, s.MasteryLevel, 0.0, "run %d step %d", run, i)
			require.LessOrEqual(t, s.MasteryLevel, 100.0, "run %d step %d", run, i)
			require.GreaterOrEqual(t, s.RecentAccuracy, 0.0)
			require.LessOrEqual(t, s.RecentAccuracy, 1.0)
			require.LessOrEqual(t, s.TotalCorrect, s.TotalAttempted)
		}
	}
}

func TestUpdate_MonotoneDirection(t *testing.T) {
	e := NewEstimator(DefaultParams())
	rng := rand.New(rand.NewSource(11))

	for run := 0; run < 100; run++ {
		// Random warm-up, then a run of identical outcomes.
		s := NewSkillStats("s1", "algebra")
		for i := 0; i < rng.Intn(40); i++ {
			s = e.Update(s, rng.Intn(2) == 0, t0)
		}
		correct := rng.Intn(2) == 0
		for i := 0; i < 30; i++ {
			next := e.Update(s, correct, t0)
			if correct {
				require.GreaterOrEqual(t, next.MasteryLevel, s.MasteryLevel)
			} else {
				require.LessOrEqual(t, next.MasteryLevel, s.MasteryLevel)
			}
			s = next
		}
	}
}

func TestTrendFor_StableBelowMinimumSamples(t *testing.T) {
	e := NewEstimator(DefaultParams())
	s := SkillStats{TotalAttempted: 3, Accuracy: 0.1, RecentAccuracy: 0.9}

	assert.Equal(t, TrendStable, e.TrendFor(s))

	s.TotalAttempted = DefaultMinTrendSamples
	assert.Equal(t, TrendImproving, e.TrendFor(s))
}

func TestNewEstimator_InvalidParamsFallBack(t *testing.T) {
	e := NewEstimator(Params{Alpha: 0, LearningRate: 3, TrendMargin: -1, MinTrendSamples: -2})

	assert.Equal(t, DefaultParams(), e.Params())
}

func TestNewEstimator_CustomParams(t *testing.T) {
	e := NewEstimator(Params{Alpha: 0.5, LearningRate: 0.5, TrendMargin: 0.1, MinTrendSamples: 0})

	got := e.Update(NewSkillStats("s1", "algebra"), true, t0)

	// recent = 0.5, blend = 0.5*50 + 0.5*50 = 50; lifetime accuracy is 1.0.
	assert.InDelta(t, 0.5, got.RecentAccuracy, 1e-9)
	assert.InDelta(t, 50.0, got.MasteryLevel, 1e-9)
	assert.Equal(t, TrendDeclining, got.Trend)
}
