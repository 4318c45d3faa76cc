package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/prepengine/internal/exam"
)

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) CreatePractice(ctx context.Context, s PracticeSession) error {
	cfg, err := json.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("marshal session config: %w", err)
	}
	ids, err := json.Marshal(s.QuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal question ids: %w", err)
	}

	query, args := sqlite.Insert("practice_sessions").
		Columns("id", "student_id", "mode", "config", "question_ids", "created_at").
		Values(s.ID, s.StudentID, s.Mode, cfg, ids, s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetPractice(ctx context.Context, id string) (*PracticeSession, error) {
	query, args := sqlite.Select("id", "student_id", "mode", "config", "question_ids", "created_at").
		From(sqlite.Table("practice_sessions")).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		s          PracticeSession
		cfg, idsJS []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.StudentID, &s.Mode, &cfg, &idsJS, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("practice session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query practice session: %w", err)
	}
	if err := json.Unmarshal(cfg, &s.Config); err != nil {
		return nil, fmt.Errorf("decode session config: %w", err)
	}
	if err := json.Unmarshal(idsJS, &s.QuestionIDs); err != nil {
		return nil, fmt.Errorf("decode question ids: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) CreateExam(ctx context.Context, s ExamSession) error {
	ela, err := json.Marshal(s.ELAQuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal ela ids: %w", err)
	}
	math, err := json.Marshal(s.MathQuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal math ids: %w", err)
	}

	query, args := sqlite.Insert("exam_sessions").
		Columns("id", "student_id", "ela_question_ids", "math_question_ids", "created_at").
		Values(s.ID, s.StudentID, ela, math, s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save exam session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetExam(ctx context.Context, id string) (*ExamSession, error) {
	query, args := sqlite.Select("id", "student_id", "ela_question_ids", "math_question_ids", "created_at").
		From(sqlite.Table("exam_sessions")).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		s         ExamSession
		ela, math []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.StudentID, &ela, &math, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exam session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query exam session: %w", err)
	}
	if err := json.Unmarshal(ela, &s.ELAQuestionIDs); err != nil {
		return nil, fmt.Errorf("decode ela ids: %w", err)
	}
	if err := json.Unmarshal(math, &s.MathQuestionIDs); err != nil {
		return nil, fmt.Errorf("decode math ids: %w", err)
	}
	return &s, nil
}

var examResultColumns = []string{
	"exam_id", "student_id", "ela_raw", "math_raw", "ela_total", "math_total",
	"ela_scaled", "math_scaled", "composite_score", "breakdown", "completed_at",
}

func (r *sessionRepo) SaveExamResult(ctx context.Context, res ExamResult) error {
	breakdown, err := json.Marshal(res.Score.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	sc := res.Score
	query, args := sqlite.Insert("exam_results").
		Columns(examResultColumns...).
		Values(res.ExamID, res.StudentID, sc.ELARaw, sc.MathRaw, sc.ELATotal, sc.MathTotal,
			sc.ELAScaled, sc.MathScaled, sc.Composite, breakdown, res.CompletedAt).
		OnConflict(entsql.ConflictColumns("exam_id"), entsql.DoNothing()).
		Query()
	out, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save exam result: %w", err)
	}
	n, err := out.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exam %s: %w", res.ExamID, ErrAlreadyScored)
	}
	return nil
}

func (r *sessionRepo) GetExamResult(ctx context.Context, examID string) (*ExamResult, error) {
	query, args := sqlite.Select(examResultColumns...).
		From(sqlite.Table("exam_results")).
		Where(entsql.EQ("exam_id", examID)).
		Query()
	out, err := r.queryResults(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get exam result: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("exam result %s: %w", examID, ErrNotFound)
	}
	return &out[0], nil
}

func (r *sessionRepo) LatestExamResults(ctx context.Context, studentID string, limit int) ([]ExamResult, error) {
	sel := sqlite.Select(examResultColumns...).
		From(sqlite.Table("exam_results")).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("completed_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	out, err := r.queryResults(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list exam results: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) queryResults(ctx context.Context, query string, args []any) ([]ExamResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExamResult
	for rows.Next() {
		var (
			res       ExamResult
			breakdown []byte
		)
		sc := &res.Score
		if err := rows.Scan(&res.ExamID, &res.StudentID, &sc.ELARaw, &sc.MathRaw, &sc.ELATotal, &sc.MathTotal,
			&sc.ELAScaled, &sc.MathScaled, &sc.Composite, &breakdown, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan exam result: %w", err)
		}
		var b exam.Breakdown
		if err := json.Unmarshal(breakdown, &b); err != nil {
			return nil, fmt.Errorf("decode breakdown: %w", err)
		}
		sc.Breakdown = b
		out = append(out, res)
	}
	return out, rows.Err()
}
