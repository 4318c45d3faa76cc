package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// PracticeSession is a started practice session with its questions in
// presentation order.
type PracticeSession struct {
	ID        string
	StudentID string
	Config    selector.SessionConfig
	Questions []question.Question
	CreatedAt time.Time
}

// AnswerInput is one answered practice question.
type AnswerInput struct {
	StudentID  string
	SessionID  string // optional; when set the question must belong to it
	QuestionID string
	IsCorrect  bool
}

// persistedConfig is the stored form of a selector.SessionConfig.
type persistedConfig struct {
	Section       string `mapstructure:"section"`
	Category      string `mapstructure:"category"`
	Difficulty    int    `mapstructure:"difficulty"`
	Mode          string `mapstructure:"mode"`
	QuestionCount int    `mapstructure:"question_count"`
}

// ValidateConfig normalizes cfg and checks it against the accepted
// ranges. An empty mode means plain practice.
func ValidateConfig(cfg selector.SessionConfig) (selector.SessionConfig, error) {
	if cfg.Mode == "" {
		cfg.Mode = selector.ModePractice
	}
	if !cfg.Mode.Valid() {
		return cfg, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
	if cfg.QuestionCount < selector.MinQuestionCount || cfg.QuestionCount > selector.MaxQuestionCount {
		return cfg, fmt.Errorf("%w: question count %d not in [%d, %d]",
			ErrInvalidConfig, cfg.QuestionCount, selector.MinQuestionCount, selector.MaxQuestionCount)
	}
	if cfg.Section != "" && !cfg.Section.Valid() {
		return cfg, fmt.Errorf("%w: unknown section %q", ErrInvalidConfig, cfg.Section)
	}
	if cfg.Difficulty != 0 && !cfg.Difficulty.Valid() {
		return cfg, fmt.Errorf("%w: difficulty %d not in [1, 3]", ErrInvalidConfig, cfg.Difficulty)
	}
	return cfg, nil
}

// StartPractice selects questions for a new practice session and persists
// it.
func (s *Service) StartPractice(ctx context.Context, studentID string, cfg selector.SessionConfig) (*PracticeSession, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := s.questions.List(ctx, cfg.Filter())
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}
	stats, err := s.skillStats.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load skill stats: %w", err)
	}
	recent, err := s.attempts.RecentQuestionIDs(ctx, studentID, s.recentWindow)
	if err != nil {
		return nil, fmt.Errorf("load recent attempts: %w", err)
	}

	picks := s.selector.Select(stats, cfg, pool, recent)
	if len(picks) == 0 {
		return nil, ErrNoQuestions
	}

	byID := lo.KeyBy(pool, func(q question.Question) string { return q.ID })
	ordered := lo.Map(picks, func(p selector.Selection, _ int) question.Question { return byID[p.QuestionID] })

	ps := &PracticeSession{
		ID:        s.newID(),
		StudentID: studentID,
		Config:    cfg,
		Questions: ordered,
		CreatedAt: s.now().UTC(),
	}

	stored, err := encodeConfig(cfg)
	if err != nil {
		return nil, err
	}
	err = s.sessions.CreatePractice(ctx, store.PracticeSession{
		ID:          ps.ID,
		StudentID:   studentID,
		Mode:        string(cfg.Mode),
		Config:      stored,
		QuestionIDs: question.IDs(ordered),
		CreatedAt:   ps.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("save practice session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"student":   studentID,
		"session":   ps.ID,
		"mode":      cfg.Mode,
		"requested": cfg.QuestionCount,
		"selected":  len(ordered),
		"pool":      len(pool),
		"cooldown":  len(recent),
	}).Info("practice session started")

	return ps, nil
}

// GetPractice loads a stored practice session with its questions.
func (s *Service) GetPractice(ctx context.Context, sessionID string) (*PracticeSession, error) {
	rec, err := s.sessions.GetPractice(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cfg, err := decodeConfig(rec.Config)
	if err != nil {
		return nil, err
	}
	qs, err := s.questions.Get(ctx, rec.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("load session questions: %w", err)
	}
	return &PracticeSession{
		ID:        rec.ID,
		StudentID: rec.StudentID,
		Config:    cfg,
		Questions: qs,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// RecordAnswer stores an answer and folds it into the student's skill
// record for the question's category. Both writes commit together.
//
// With a session id, the session must belong to the student and must have
// served the question, and each question counts once
// (store.ErrAlreadyAnswered on a repeat).
func (s *Service) RecordAnswer(ctx context.Context, in AnswerInput) (mastery.SkillStats, error) {
	if in.SessionID != "" {
		rec, err := s.sessions.GetPractice(ctx, in.SessionID)
		if err != nil {
			return mastery.SkillStats{}, err
		}
		if rec.StudentID != in.StudentID {
			return mastery.SkillStats{}, fmt.Errorf("%s for %s: %w", in.SessionID, in.StudentID, ErrSessionNotOwned)
		}
		if !lo.Contains(rec.QuestionIDs, in.QuestionID) {
			return mastery.SkillStats{}, fmt.Errorf("%s in %s: %w", in.QuestionID, in.SessionID, ErrQuestionNotInSession)
		}
	}

	qs, err := s.questions.Get(ctx, []string{in.QuestionID})
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("load question: %w", err)
	}
	if len(qs) == 0 {
		return mastery.SkillStats{}, fmt.Errorf("question %s: %w", in.QuestionID, store.ErrNotFound)
	}
	q := qs[0]
	at := s.now().UTC()

	var before float64
	_, updated, err := s.attempts.Record(ctx, store.Attempt{
		StudentID:   in.StudentID,
		SessionID:   in.SessionID,
		QuestionID:  q.ID,
		Category:    q.Category,
		IsCorrect:   in.IsCorrect,
		AttemptedAt: at,
	}, func(prev mastery.SkillStats) mastery.SkillStats {
		before = prev.MasteryLevel
		return s.estimator.Update(prev, in.IsCorrect, at)
	})
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("record attempt: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"student":  in.StudentID,
		"session":  in.SessionID,
		"category": q.Category,
		"correct":  in.IsCorrect,
		"previous": before,
		"mastery":  updated.MasteryLevel,
		"trend":    updated.Trend,
	}).Debug("mastery updated")

	return updated, nil
}

func encodeConfig(cfg selector.SessionConfig) (map[string]any, error) {
	var out map[string]any
	err := mapstructure.Decode(persistedConfig{
		Section:       string(cfg.Section),
		Category:      cfg.Category,
		Difficulty:    int(cfg.Difficulty),
		Mode:          string(cfg.Mode),
		QuestionCount: cfg.QuestionCount,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("encode session config: %w", err)
	}
	return out, nil
}

func decodeConfig(m map[string]any) (selector.SessionConfig, error) {
	var pc persistedConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &pc,
	})
	if err != nil {
		return selector.SessionConfig{}, err
	}
	if err := dec.Decode(m); err != nil {
		return selector.SessionConfig{}, fmt.Errorf("decode session config: %w", err)
	}
	return selector.SessionConfig{
		Section:       question.Section(pc.Section),
		Category:      pc.Category,
		Difficulty:    difficulty.Tier(pc.Difficulty),
		Mode:          selector.Mode(pc.Mode),
		QuestionCount: pc.QuestionCount,
	}, nil
}
