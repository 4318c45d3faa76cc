package session

import (
	"errors"
	"time"

	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoQuestions is returned when the pool has nothing to serve.
	ErrNoQuestions = errors.New("no questions match the session config")

	// ErrInvalidConfig is returned for a session config outside the
	// accepted ranges.
	ErrInvalidConfig = errors.New("invalid session config")

	// ErrQuestionNotInSession is returned when an answer names a question
	// the practice session never served.
	ErrQuestionNotInSession = errors.New("question not part of session")

	// ErrSessionNotOwned is returned when a student answers inside another
	// student's practice session.
	ErrSessionNotOwned = errors.New("session belongs to another student")
)

// Deps holds the collaborators of a Service. Repos are required; nil
// engine parts fall back to their defaults.
type Deps struct {
	Questions  store.QuestionRepo
	SkillStats store.SkillStatsRepo
	Attempts   store.AttemptRepo
	Sessions   store.SessionRepo

	Estimator *mastery.Estimator
	Selector  *selector.Selector
	Assembler *exam.Assembler
	Scorer    *exam.Scorer

	// RecentWindow is how many recent attempts put a question on cooldown.
	RecentWindow int

	Logger logrus.FieldLogger
	Clock  func() time.Time
}

// Service runs practice sessions and exams on top of the engine and the
// store. It holds no per-student state, so one value can serve concurrent
// callers.
type Service struct {
	questions  store.QuestionRepo
	skillStats store.SkillStatsRepo
	attempts   store.AttemptRepo
	sessions   store.SessionRepo

	estimator *mastery.Estimator
	selector  *selector.Selector
	assembler *exam.Assembler
	scorer    *exam.Scorer

	recentWindow int
	log          logrus.FieldLogger
	now          func() time.Time
	newID        func() string
}

// NewService creates a Service.
func NewService(d Deps) *Service {
	s := &Service{
		questions:    d.Questions,
		skillStats:   d.SkillStats,
		attempts:     d.Attempts,
		sessions:     d.Sessions,
		estimator:    d.Estimator,
		selector:     d.Selector,
		assembler:    d.Assembler,
		scorer:       d.Scorer,
		recentWindow: d.RecentWindow,
		log:          d.Logger,
		now:          d.Clock,
		newID:        uuid.NewString,
	}
	if s.estimator == nil {
		s.estimator = mastery.NewEstimator(mastery.DefaultParams())
	}
	if s.selector == nil {
		s.selector = selector.New()
	}
	if s.assembler == nil {
		s.assembler = exam.NewAssembler(exam.DefaultBlueprint(), nil)
	}
	if s.scorer == nil {
		s.scorer = exam.NewScorer(exam.DefaultScale(), exam.DefaultRevisingPrefix)
	}
	if s.recentWindow <= 0 {
		s.recentWindow = store.DefaultRecentLimit
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}
