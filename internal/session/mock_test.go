package session

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/store"
)

// mockQuestionRepo implements store.QuestionRepo for testing.
type mockQuestionRepo struct {
	byID map[string]question.Question
}

func newMockQuestionRepo(qs ...question.Question) *mockQuestionRepo {
	m := &mockQuestionRepo{byID: make(map[string]question.Question)}
	m.Upsert(context.Background(), qs)
	return m
}

func (m *mockQuestionRepo) Upsert(_ context.Context, qs []question.Question) error {
	for _, q := range qs {
		m.byID[q.ID] = q
	}
	return nil
}

func (m *mockQuestionRepo) List(_ context.Context, f question.Filter) ([]question.Question, error) {
	var out []question.Question
	for _, q := range m.byID {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockQuestionRepo) Get(_ context.Context, ids []string) ([]question.Question, error) {
	var out []question.Question
	for _, id := range ids {
		if q, ok := m.byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) Count(_ context.Context) (map[question.Section]int, error) {
	counts := make(map[question.Section]int)
	for _, q := range m.byID {
		counts[q.Section]++
	}
	return counts, nil
}

// mockSkillStatsRepo implements store.SkillStatsRepo for testing.
type mockSkillStatsRepo struct {
	mu    sync.Mutex
	stats map[string]mastery.SkillStats // key: student|category
}

func newMockSkillStatsRepo() *mockSkillStatsRepo {
	return &mockSkillStatsRepo{stats: make(map[string]mastery.SkillStats)}
}

func (m *mockSkillStatsRepo) ListByStudent(_ context.Context, studentID string) ([]mastery.SkillStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []mastery.SkillStats
	for k, s := range m.stats {
		if strings.HasPrefix(k, studentID+"|") {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *mockSkillStatsRepo) Get(_ context.Context, studentID, category string) (mastery.SkillStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stats[studentID+"|"+category]; ok {
		return s, nil
	}
	return mastery.NewSkillStats(studentID, category), nil
}

func (m *mockSkillStatsRepo) Apply(
	_ context.Context,
	studentID, category string,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (mastery.SkillStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := studentID + "|" + category
	prev, ok := m.stats[key]
	if !ok {
		prev = mastery.NewSkillStats(studentID, category)
	}
	next := fn(prev)
	next.Version = prev.Version + 1
	m.stats[key] = next
	return next, nil
}

// mockAttemptRepo implements store.AttemptRepo for testing. Record folds
// attempts into skills.
type mockAttemptRepo struct {
	attempts []store.Attempt
	skills   *mockSkillStatsRepo
}

func (m *mockAttemptRepo) Append(_ context.Context, a store.Attempt) (store.Attempt, error) {
	if a.SessionID != "" {
		for _, prev := range m.attempts {
			if prev.SessionID == a.SessionID && prev.QuestionID == a.QuestionID {
				return store.Attempt{}, store.ErrAlreadyAnswered
			}
		}
	}
	a.Sequence = int64(len(m.attempts) + 1)
	m.attempts = append(m.attempts, a)
	return a, nil
}

func (m *mockAttemptRepo) Record(
	ctx context.Context,
	a store.Attempt,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (store.Attempt, mastery.SkillStats, error) {
	saved, err := m.Append(ctx, a)
	if err != nil {
		return store.Attempt{}, mastery.SkillStats{}, err
	}
	next, err := m.skills.Apply(ctx, a.StudentID, a.Category, fn)
	if err != nil {
		return store.Attempt{}, mastery.SkillStats{}, err
	}
	return saved, next, nil
}

func (m *mockAttemptRepo) RecentQuestionIDs(_ context.Context, studentID string, limit int) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for i := len(m.attempts) - 1; i >= 0 && len(m.attempts)-i <= limit; i-- {
		a := m.attempts[i]
		if a.StudentID == studentID && !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			ids = append(ids, a.QuestionID)
		}
	}
	return ids, nil
}

func (m *mockAttemptRepo) BySession(_ context.Context, sessionID string) ([]store.Attempt, error) {
	var out []store.Attempt
	for _, a := range m.attempts {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

// mockSessionRepo implements store.SessionRepo for testing.
type mockSessionRepo struct {
	practice map[string]store.PracticeSession
	exams    map[string]store.ExamSession
	results  []store.ExamResult
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		practice: make(map[string]store.PracticeSession),
		exams:    make(map[string]store.ExamSession),
	}
}

func (m *mockSessionRepo) CreatePractice(_ context.Context, s store.PracticeSession) error {
	m.practice[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetPractice(_ context.Context, id string) (*store.PracticeSession, error) {
	s, ok := m.practice[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (m *mockSessionRepo) CreateExam(_ context.Context, s store.ExamSession) error {
	m.exams[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetExam(_ context.Context, id string) (*store.ExamSession, error) {
	s, ok := m.exams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (m *mockSessionRepo) SaveExamResult(_ context.Context, r store.ExamResult) error {
	for _, existing := range m.results {
		if existing.ExamID == r.ExamID {
			return store.ErrAlreadyScored
		}
	}
	m.results = append(m.results, r)
	return nil
}

func (m *mockSessionRepo) GetExamResult(_ context.Context, examID string) (*store.ExamResult, error) {
	for _, r := range m.results {
		if r.ExamID == examID {
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionRepo) LatestExamResults(_ context.Context, studentID string, limit int) ([]store.ExamResult, error) {
	var out []store.ExamResult
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].StudentID == studentID {
			out = append(out, m.results[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
