package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentUpdate is returned when a skill record kept changing
	// underneath Apply for every retry.
	ErrConcurrentUpdate = errors.New("concurrent update of skill stats")

	// ErrAlreadyScored is returned when a result is saved for an exam that
	// already has one.
	ErrAlreadyScored = errors.New("exam already scored")

	// ErrAlreadyAnswered is returned when a session's question is answered
	// a second time.
	ErrAlreadyAnswered = errors.New("question already answered in session")
)

// DefaultRecentLimit is the cooldown window of recently served questions.
const DefaultRecentLimit = 50

// QuestionRepo stores the question bank.
type QuestionRepo interface {
	// Upsert inserts questions, replacing existing ones with the same id.
	Upsert(ctx context.Context, qs []question.Question) error

	// List returns questions matching the filter, ordered by id.
	List(ctx context.Context, f question.Filter) ([]question.Question, error)

	// Get returns the questions with the given ids, in the order given.
	// Unknown ids are skipped.
	Get(ctx context.Context, ids []string) ([]question.Question, error)

	// Count returns the number of questions per section.
	Count(ctx context.Context) (map[question.Section]int, error)
}

// SkillStatsRepo is the per-student skill profile store.
type SkillStatsRepo interface {
	// ListByStudent returns every skill record of a student, ordered by
	// category.
	ListByStudent(ctx context.Context, studentID string) ([]mastery.SkillStats, error)

	// Get returns one record, or the neutral default if none exists.
	Get(ctx context.Context, studentID, category string) (mastery.SkillStats, error)

	// Apply atomically replaces a record with fn(current). fn must be pure:
	// it may run more than once when a concurrent writer wins the race.
	Apply(ctx context.Context, studentID, category string, fn func(mastery.SkillStats) mastery.SkillStats) (mastery.SkillStats, error)
}

// Attempt is one answered practice question.
type Attempt struct {
	Sequence    int64
	StudentID   string
	SessionID   string
	QuestionID  string
	Category    string
	IsCorrect   bool
	AttemptedAt time.Time
}

// AttemptRepo records answered questions.
type AttemptRepo interface {
	// Append stores an attempt and assigns its sequence number. Each
	// question can be answered once per session.
	Append(ctx context.Context, a Attempt) (Attempt, error)

	// Record appends the attempt and replaces the student's skill record
	// for its category with fn(current), atomically. fn must be pure: it
	// may run more than once when a concurrent writer wins the race.
	Record(ctx context.Context, a Attempt, fn func(mastery.SkillStats) mastery.SkillStats) (Attempt, mastery.SkillStats, error)

	// RecentQuestionIDs returns the distinct ids of the student's most
	// recent attempts, newest first, looking back at most limit attempts.
	RecentQuestionIDs(ctx context.Context, studentID string, limit int) ([]string, error)

	// BySession returns the attempts of one session in answer order.
	BySession(ctx context.Context, sessionID string) ([]Attempt, error)
}

// PracticeSession is a persisted practice session.
type PracticeSession struct {
	ID          string
	StudentID   string
	Mode        string
	Config      map[string]any
	QuestionIDs []string
	CreatedAt   time.Time
}

// ExamSession is a persisted full-length exam.
type ExamSession struct {
	ID              string
	StudentID       string
	ELAQuestionIDs  []string
	MathQuestionIDs []string
	CreatedAt       time.Time
}

// ExamResult is a scored exam.
type ExamResult struct {
	ExamID      string
	StudentID   string
	Score       exam.Score
	CompletedAt time.Time
}

// SessionRepo stores practice sessions, exams and exam results.
type SessionRepo interface {
	CreatePractice(ctx context.Context, s PracticeSession) error
	GetPractice(ctx context.Context, id string) (*PracticeSession, error)

	CreateExam(ctx context.Context, s ExamSession) error
	GetExam(ctx context.Context, id string) (*ExamSession, error)

	// SaveExamResult stores a result. An exam can be scored only once.
	SaveExamResult(ctx context.Context, r ExamResult) error

	// GetExamResult returns the result of one exam.
	GetExamResult(ctx context.Context, examID string) (*ExamResult, error)

	// LatestExamResults returns a student's results, newest first.
	LatestExamResults(ctx context.Context, studentID string, limit int) ([]ExamResult, error)
}
