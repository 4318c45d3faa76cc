package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// ExamSession is a started full-length exam.
type ExamSession struct {
	ID        string
	StudentID string
	Set       exam.Set
	CreatedAt time.Time
}

// StartExam draws a full-length exam from the whole bank and persists it.
func (s *Service) StartExam(ctx context.Context, studentID string) (*ExamSession, error) {
	pool, err := s.questions.List(ctx, question.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}

	set := s.assembler.Assemble(pool)
	if set.Len() == 0 {
		return nil, ErrNoQuestions
	}

	es := &ExamSession{
		ID:        s.newID(),
		StudentID: studentID,
		Set:       set,
		CreatedAt: s.now().UTC(),
	}
	err = s.sessions.CreateExam(ctx, store.ExamSession{
		ID:              es.ID,
		StudentID:       studentID,
		ELAQuestionIDs:  question.IDs(set.ELA),
		MathQuestionIDs: question.IDs(set.Math),
		CreatedAt:       es.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("save exam session: %w", err)
	}

	bp := s.assembler.Blueprint()
	s.log.WithFields(logrus.Fields{
		"student": studentID,
		"exam":    es.ID,
		"ela":     fmt.Sprintf("%d/%d", len(set.ELA), bp.ELACount),
		"math":    fmt.Sprintf("%d/%d", len(set.Math), bp.MathCount),
	}).Info("exam started")

	return es, nil
}

// SubmitExam scores an exam from the given correctness per question id.
// Questions without an entry count as incorrect. Each exam can be
// submitted once.
func (s *Service) SubmitExam(ctx context.Context, examID string, answers map[string]bool) (exam.Score, error) {
	rec, err := s.sessions.GetExam(ctx, examID)
	if err != nil {
		return exam.Score{}, err
	}

	all := append(append([]string{}, rec.ELAQuestionIDs...), rec.MathQuestionIDs...)
	inExam := lo.Associate(all, func(id string) (string, bool) { return id, true })
	for id := range answers {
		if !inExam[id] {
			return exam.Score{}, fmt.Errorf("%s in exam %s: %w", id, examID, ErrQuestionNotInSession)
		}
	}

	qs, err := s.questions.Get(ctx, all)
	if err != nil {
		return exam.Score{}, fmt.Errorf("load exam questions: %w", err)
	}
	byID := lo.KeyBy(qs, func(q question.Question) string { return q.ID })

	var attempts []exam.Attempt
	add := func(section question.Section, ids []string) {
		for _, id := range ids {
			a := exam.Attempt{Section: section, IsCorrect: answers[id]}
			// A question removed from the bank since the exam started
			// still counts towards its section.
			if q, ok := byID[id]; ok {
				a.Category = q.Category
				a.Type = q.Type
			}
			attempts = append(attempts, a)
		}
	}
	add(question.SectionELA, rec.ELAQuestionIDs)
	add(question.SectionMath, rec.MathQuestionIDs)

	score := s.scorer.Score(attempts)
	err = s.sessions.SaveExamResult(ctx, store.ExamResult{
		ExamID:      examID,
		StudentID:   rec.StudentID,
		Score:       score,
		CompletedAt: s.now().UTC(),
	})
	if err != nil {
		return exam.Score{}, fmt.Errorf("save exam result: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"student":   rec.StudentID,
		"exam":      examID,
		"ela":       score.ELAScaled,
		"math":      score.MathScaled,
		"composite": score.Composite,
	}).Info("exam scored")

	return score, nil
}

// ExamHistory returns a student's most recent exam results, newest first.
func (s *Service) ExamHistory(ctx context.Context, studentID string, limit int) ([]store.ExamResult, error) {
	return s.sessions.LatestExamResults(ctx, studentID, limit)
}
