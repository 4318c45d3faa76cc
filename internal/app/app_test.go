package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/prepengine/internal/config"
	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/abhisek/prepengine/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DB:         filepath.Join(t.TempDir(), "nested", "prep.db"),
		Log:        config.LogConfig{Level: "debug", Format: "json"},
		Mastery:    mastery.DefaultParams(),
		Difficulty: difficulty.DefaultThresholds(),
		Exam:       exam.Blueprint{ELACount: 1, MathCount: 1},
		Scoring:    config.ScoringConfig{Floor: 200, Span: 600, RevisingPrefix: "revising"},
		Practice:   config.PracticeConfig{RecentWindow: 50},
	}
}

func TestNew_WiresServiceToStore(t *testing.T) {
	var logs bytes.Buffer
	c, err := New(testConfig(t), Options{Seed: 3, LogOutput: &logs})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	var qs []question.Question
	for i, cat := range []string{"algebra.linear", "reading.main_idea"} {
		section := question.SectionMath
		if i == 1 {
			section = question.SectionELA
		}
		for j := 0; j < 6; j++ {
			qs = append(qs, question.Question{
				ID:         cat + "-" + string(rune('a'+j)),
				Section:    section,
				Category:   cat,
				Difficulty: difficulty.Tier(j%3 + 1),
				Type:       question.TypeMultipleChoice,
				Stem:       "stem",
			})
		}
	}
	require.NoError(t, c.Store.Questions().Upsert(ctx, qs))

	ps, err := c.Service.StartPractice(ctx, "stu", selector.SessionConfig{QuestionCount: 10})
	require.NoError(t, err)
	assert.Len(t, ps.Questions, 10)

	st, err := c.Service.RecordAnswer(ctx, session.AnswerInput{
		StudentID: "stu", SessionID: ps.ID, QuestionID: ps.Questions[0].ID, IsCorrect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalAttempted)

	es, err := c.Service.StartExam(ctx, "stu")
	require.NoError(t, err)
	assert.Equal(t, 2, es.Set.Len())

	assert.Contains(t, logs.String(), "practice session started")
}

func TestNew_BadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "loud"
	_, err := New(cfg, Options{LogOutput: &bytes.Buffer{}})
	assert.Error(t, err)
}
