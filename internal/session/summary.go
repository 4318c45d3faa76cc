package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/prepengine/internal/mastery"
)

// CategoryResult holds one category's tally within a practice session.
type CategoryResult struct {
	Category  string
	Attempted int
	Correct   int
}

// Summary is the outcome of a practice session so far.
type Summary struct {
	SessionID  string
	Total      int
	Answered   int
	Correct    int
	Accuracy   float64
	Categories []CategoryResult
}

// Summarize tallies the answers recorded against a practice session.
// Categories are listed in the order they were first answered.
func (s *Service) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	rec, err := s.sessions.GetPractice(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attempts.BySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session attempts: %w", err)
	}

	sum := &Summary{SessionID: sessionID, Total: len(rec.QuestionIDs)}
	index := make(map[string]int)
	for _, a := range attempts {
		i, ok := index[a.Category]
		if !ok {
			i = len(sum.Categories)
			index[a.Category] = i
			sum.Categories = append(sum.Categories, CategoryResult{Category: a.Category})
		}
		sum.Categories[i].Attempted++
		sum.Answered++
		if a.IsCorrect {
			sum.Categories[i].Correct++
			sum.Correct++
		}
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	return sum, nil
}

// Stats returns the student's skill profile, weakest category first.
func (s *Service) Stats(ctx context.Context, studentID string) ([]mastery.SkillStats, error) {
	stats, err := s.skillStats.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load skill stats: %w", err)
	}
	for i := range stats {
		stats[i].Trend = s.estimator.TrendFor(stats[i])
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MasteryLevel < stats[j].MasteryLevel
	})
	return stats, nil
}
