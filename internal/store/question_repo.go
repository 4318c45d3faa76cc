package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/samber/lo"
)

var (
	questionColumns       = []string{"id", "section", "category", "difficulty", "type", "stem", "options", "passage_id"}
	questionInsertColumns = []string{"id", "section", "category", "difficulty", "type", "stem", "options", "passage_id", "updated_at"}
)

// questionRepo implements QuestionRepo.
type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Upsert(ctx context.Context, qs []question.Question) error {
	if len(qs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, q := range qs {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options of %s: %w", q.ID, err)
		}
		query, args := sqlite.Insert("questions").
			Columns(questionInsertColumns...).
			Values(q.ID, string(q.Section), q.Category, int(q.Difficulty), string(q.Type), q.Stem, opts, q.PassageID, now).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func (r *questionRepo) List(ctx context.Context, f question.Filter) ([]question.Question, error) {
	sel := sqlite.Select(questionColumns...).From(sqlite.Table("questions"))
	if f.Section != "" {
		sel.Where(entsql.EQ("section", string(f.Section)))
	}
	if f.CategoryPrefix != "" {
		sel.Where(entsql.HasPrefix("category", f.CategoryPrefix))
	}
	if f.Difficulty != 0 {
		sel.Where(entsql.EQ("difficulty", int(f.Difficulty)))
	}
	sel.OrderBy("id")

	qs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	// LIKE is case-insensitive in SQLite; apply the exact prefix rule.
	return lo.Filter(qs, func(q question.Question, _ int) bool { return f.Match(q) }), nil
}

func (r *questionRepo) Get(ctx context.Context, ids []string) ([]question.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sel := sqlite.Select(questionColumns...).
		From(sqlite.Table("questions")).
		Where(entsql.In("id", lo.ToAnySlice(lo.Uniq(ids))...))

	qs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	byID := lo.KeyBy(qs, func(q question.Question) string { return q.ID })
	out := make([]question.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *questionRepo) Count(ctx context.Context) (map[question.Section]int, error) {
	query, args := sqlite.Select("section", entsql.Count("*")).
		From(sqlite.Table("questions")).
		GroupBy("section").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[question.Section]int)
	for rows.Next() {
		var (
			section string
			n       int
		)
		if err := rows.Scan(&section, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[question.Section(section)] = n
	}
	return counts, rows.Err()
}

func (r *questionRepo) query(ctx context.Context, sel *entsql.Selector) ([]question.Question, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var (
			q          question.Question
			section    string
			tier       int
			typ        string
			rawOptions []byte
		)
		if err := rows.Scan(&q.ID, &section, &q.Category, &tier, &typ, &q.Stem, &rawOptions, &q.PassageID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Section = question.Section(section)
		q.Difficulty = difficulty.Tier(tier)
		q.Type = question.Type(typ)
		if len(rawOptions) > 0 {
			if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
				return nil, fmt.Errorf("decode options of %s: %w", q.ID, err)
			}
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
