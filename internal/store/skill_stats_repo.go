package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/prepengine/internal/mastery"
)

var errVersionConflict = errors.New("version conflict")

var skillStatsColumns = []string{
	"student_id", "category", "total_attempted", "total_correct", "accuracy",
	"recent_accuracy", "mastery_level", "trend", "last_practiced_at", "version",
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// skillStatsRepo implements SkillStatsRepo.
type skillStatsRepo struct {
	db *sql.DB
}

func (r *skillStatsRepo) ListByStudent(ctx context.Context, studentID string) ([]mastery.SkillStats, error) {
	query, args := sqlite.Select(skillStatsColumns...).
		From(sqlite.Table("skill_stats")).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy("category").
		Query()
	out, err := scanSkillStats(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("list skill stats: %w", err)
	}
	return out, nil
}

func (r *skillStatsRepo) Get(ctx context.Context, studentID, category string) (mastery.SkillStats, error) {
	s, found, err := getSkillStats(ctx, r.db, studentID, category)
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("get skill stats: %w", err)
	}
	if !found {
		return mastery.NewSkillStats(studentID, category), nil
	}
	return s, nil
}

func (r *skillStatsRepo) Apply(
	ctx context.Context,
	studentID, category string,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (mastery.SkillStats, error) {
	var next mastery.SkillStats
	isConflict := func(err error) bool { return errors.Is(err, errVersionConflict) }
	err := applyRetry.do(ctx, isConflict, func() error {
		var err error
		next, err = r.applyOnce(ctx, studentID, category, fn)
		return err
	})
	if isConflict(err) {
		return mastery.SkillStats{}, ErrConcurrentUpdate
	}
	if err != nil {
		return mastery.SkillStats{}, err
	}
	return next, nil
}

// applyOnce performs one read-modify-write in its own transaction.
func (r *skillStatsRepo) applyOnce(
	ctx context.Context,
	studentID, category string,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (mastery.SkillStats, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("begin apply: %w", err)
	}
	defer tx.Rollback()

	next, err := applySkillStats(ctx, tx, studentID, category, fn)
	if err != nil {
		return mastery.SkillStats{}, err
	}
	if err := tx.Commit(); err != nil {
		return mastery.SkillStats{}, fmt.Errorf("commit apply: %w", err)
	}
	return next, nil
}

// applySkillStats reads a record and writes fn(record) through q. The write
// only lands if the row still carries the version that was read; otherwise
// errVersionConflict is returned and the caller's transaction must roll
// back.
func applySkillStats(
	ctx context.Context,
	q querier,
	studentID, category string,
	fn func(mastery.SkillStats) mastery.SkillStats,
) (mastery.SkillStats, error) {
	prev, found, err := getSkillStats(ctx, q, studentID, category)
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("read skill stats: %w", err)
	}
	if !found {
		prev = mastery.NewSkillStats(studentID, category)
	}

	next := fn(prev)
	next.StudentID = studentID
	next.Category = category
	next.Version = prev.Version + 1

	var res sql.Result
	if found {
		query, args := sqlite.Update("skill_stats").
			Set("total_attempted", next.TotalAttempted).
			Set("total_correct", next.TotalCorrect).
			Set("accuracy", next.Accuracy).
			Set("recent_accuracy", next.RecentAccuracy).
			Set("mastery_level", next.MasteryLevel).
			Set("trend", string(next.Trend)).
			Set("last_practiced_at", nullTime(next)).
			Set("version", next.Version).
			Where(entsql.And(
				entsql.EQ("student_id", studentID),
				entsql.EQ("category", category),
				entsql.EQ("version", prev.Version),
			)).
			Query()
		res, err = q.ExecContext(ctx, query, args...)
	} else {
		query, args := sqlite.Insert("skill_stats").
			Columns(skillStatsColumns...).
			Values(studentID, category, next.TotalAttempted, next.TotalCorrect, next.Accuracy,
				next.RecentAccuracy, next.MasteryLevel, string(next.Trend), nullTime(next), next.Version).
			OnConflict(entsql.ConflictColumns("student_id", "category"), entsql.DoNothing()).
			Query()
		res, err = q.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("write skill stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mastery.SkillStats{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return mastery.SkillStats{}, errVersionConflict
	}
	return next, nil
}

func getSkillStats(ctx context.Context, q querier, studentID, category string) (mastery.SkillStats, bool, error) {
	query, args := sqlite.Select(skillStatsColumns...).
		From(sqlite.Table("skill_stats")).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("category", category),
		)).
		Query()
	out, err := scanSkillStats(ctx, q, query, args)
	if err != nil {
		return mastery.SkillStats{}, false, err
	}
	if len(out) == 0 {
		return mastery.SkillStats{}, false, nil
	}
	return out[0], true, nil
}

func scanSkillStats(ctx context.Context, q querier, query string, args []any) ([]mastery.SkillStats, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []mastery.SkillStats
	for rows.Next() {
		var (
			s     mastery.SkillStats
			trend string
			last  sql.NullTime
		)
		if err := rows.Scan(&s.StudentID, &s.Category, &s.TotalAttempted, &s.TotalCorrect, &s.Accuracy,
			&s.RecentAccuracy, &s.MasteryLevel, &trend, &last, &s.Version); err != nil {
			return nil, fmt.Errorf("scan skill stats: %w", err)
		}
		s.Trend = mastery.Trend(trend)
		if last.Valid {
			t := last.Time
			s.LastPracticedAt = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullTime(s mastery.SkillStats) sql.NullTime {
	if s.LastPracticedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *s.LastPracticedAt, Valid: true}
}
