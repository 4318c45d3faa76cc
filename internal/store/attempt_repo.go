package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/prepengine/internal/mastery"
)

// attemptRepo implements AttemptRepo.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Append(ctx context.Context, a Attempt) (Attempt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	a, err = r.insert(ctx, tx, a)
	if err != nil {
		return Attempt{}, err
	}
	if err := tx.Commit(); err != nil {
		return Attempt{}, fmt.Errorf("commit attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) Record(
	ctx context.Context,
	a Attempt,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (Attempt, mastery.SkillStats, error) {
	var (
		saved Attempt
		next  mastery.SkillStats
	)
	isConflict := func(err error) bool { return errors.Is(err, errVersionConflict) }
	err := applyRetry.do(ctx, isConflict, func() error {
		var err error
		saved, next, err = r.recordOnce(ctx, a, fn)
		return err
	})
	if isConflict(err) {
		return Attempt{}, mastery.SkillStats{}, ErrConcurrentUpdate
	}
	if err != nil {
		return Attempt{}, mastery.SkillStats{}, err
	}
	return saved, next, nil
}

// recordOnce stores the attempt and updates its skill record in one
// transaction, so neither write survives without the other.
func (r *attemptRepo) recordOnce(
	ctx context.Context,
	a Attempt,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (Attempt, mastery.SkillStats, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, mastery.SkillStats{}, fmt.Errorf("begin record: %w", err)
	}
	defer tx.Rollback()

	a, err = r.insert(ctx, tx, a)
	if err != nil {
		return Attempt{}, mastery.SkillStats{}, err
	}
	next, err := applySkillStats(ctx, tx, a.StudentID, a.Category, fn)
	if err != nil {
		return Attempt{}, mastery.SkillStats{}, err
	}
	if err := tx.Commit(); err != nil {
		return Attempt{}, mastery.SkillStats{}, fmt.Errorf("commit record: %w", err)
	}
	return a, next, nil
}

// insert assigns the next sequence number and writes the attempt. A second
// answer to the same question in one session is rejected with
// ErrAlreadyAnswered.
func (r *attemptRepo) insert(ctx context.Context, tx *sql.Tx, a Attempt) (Attempt, error) {
	seqNum, err := r.seq.Next(ctx, tx)
	if err != nil {
		return Attempt{}, fmt.Errorf("next sequence: %w", err)
	}
	a.Sequence = seqNum

	query, args := sqlite.Insert("attempts").
		Columns("sequence", "student_id", "session_id", "question_id", "category", "is_correct", "attempted_at").
		Values(a.Sequence, a.StudentID, nullString(a.SessionID), a.QuestionID, a.Category, a.IsCorrect, a.AttemptedAt).
		OnConflict(entsql.ConflictColumns("session_id", "question_id"), entsql.DoNothing()).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return Attempt{}, fmt.Errorf("save attempt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Attempt{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return Attempt{}, fmt.Errorf("%s in %s: %w", a.QuestionID, a.SessionID, ErrAlreadyAnswered)
	}
	return a, nil
}

func (r *attemptRepo) RecentQuestionIDs(ctx context.Context, studentID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	query, args := sqlite.Select("question_id").
		From(sqlite.Table("attempts")).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("sequence")).
		Limit(limit).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent attempts: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recent attempt: %w", err)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

func (r *attemptRepo) BySession(ctx context.Context, sessionID string) ([]Attempt, error) {
	query, args := sqlite.Select("sequence", "student_id", "session_id", "question_id", "category", "is_correct", "attempted_at").
		From(sqlite.Table("attempts")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a       Attempt
			session sql.NullString
		)
		if err := rows.Scan(&a.Sequence, &a.StudentID, &session, &a.QuestionID, &a.Category, &a.IsCorrect, &a.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.SessionID = session.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// nullString maps an empty id to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
