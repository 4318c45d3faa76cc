package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "section", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "type", Type: field.TypeString},
		{Name: "stem", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "options", Type: field.TypeJSON, Nullable: true},
		{Name: "passage_id", Type: field.TypeString, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       "questions",
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "question_section_category", Columns: []*schema.Column{QuestionsColumns[1], QuestionsColumns[2]}},
			{Name: "question_difficulty", Columns: []*schema.Column{QuestionsColumns[3]}},
		},
	}

	// SkillStatsColumns holds the columns for the "skill_stats" table.
	SkillStatsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "total_attempted", Type: field.TypeInt, Default: 0},
		{Name: "total_correct", Type: field.TypeInt, Default: 0},
		{Name: "accuracy", Type: field.TypeFloat64, Default: 0},
		{Name: "recent_accuracy", Type: field.TypeFloat64, Default: 0},
		{Name: "mastery_level", Type: field.TypeFloat64, Default: 50},
		{Name: "trend", Type: field.TypeString, Default: "stable"},
		{Name: "last_practiced_at", Type: field.TypeTime, Nullable: true},
		{Name: "version", Type: field.TypeInt64, Default: 0},
	}
	// SkillStatsTable holds the schema information for the "skill_stats" table.
	SkillStatsTable = &schema.Table{
		Name:       "skill_stats",
		Columns:    SkillStatsColumns,
		PrimaryKey: []*schema.Column{SkillStatsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "skillstats_student_id_category", Unique: true, Columns: []*schema.Column{SkillStatsColumns[1], SkillStatsColumns[2]}},
		},
	}

	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Nullable: true},
		{Name: "question_id", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "attempted_at", Type: field.TypeTime},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_student_id_sequence", Columns: []*schema.Column{AttemptsColumns[2], AttemptsColumns[1]}},
			// Answers outside a session store a NULL session_id, which the
			// unique index does not constrain.
			{Name: "attempt_session_id_question_id", Unique: true, Columns: []*schema.Column{AttemptsColumns[3], AttemptsColumns[4]}},
		},
	}

	// PracticeSessionsColumns holds the columns for the "practice_sessions" table.
	PracticeSessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "config", Type: field.TypeJSON},
		{Name: "question_ids", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// PracticeSessionsTable holds the schema information for the "practice_sessions" table.
	PracticeSessionsTable = &schema.Table{
		Name:       "practice_sessions",
		Columns:    PracticeSessionsColumns,
		PrimaryKey: []*schema.Column{PracticeSessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "practicesession_student_id", Columns: []*schema.Column{PracticeSessionsColumns[1]}},
		},
	}

	// ExamSessionsColumns holds the columns for the "exam_sessions" table.
	ExamSessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "ela_question_ids", Type: field.TypeJSON},
		{Name: "math_question_ids", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ExamSessionsTable holds the schema information for the "exam_sessions" table.
	ExamSessionsTable = &schema.Table{
		Name:       "exam_sessions",
		Columns:    ExamSessionsColumns,
		PrimaryKey: []*schema.Column{ExamSessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "examsession_student_id", Columns: []*schema.Column{ExamSessionsColumns[1]}},
		},
	}

	// ExamResultsColumns holds the columns for the "exam_results" table.
	ExamResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "exam_id", Type: field.TypeString, Unique: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "ela_raw", Type: field.TypeInt},
		{Name: "math_raw", Type: field.TypeInt},
		{Name: "ela_total", Type: field.TypeInt},
		{Name: "math_total", Type: field.TypeInt},
		{Name: "ela_scaled", Type: field.TypeInt},
		{Name: "math_scaled", Type: field.TypeInt},
		{Name: "composite_score", Type: field.TypeInt},
		{Name: "breakdown", Type: field.TypeJSON},
		{Name: "completed_at", Type: field.TypeTime},
	}
	// ExamResultsTable holds the schema information for the "exam_results" table.
	ExamResultsTable = &schema.Table{
		Name:       "exam_results",
		Columns:    ExamResultsColumns,
		PrimaryKey: []*schema.Column{ExamResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "examresult_student_id_completed_at", Columns: []*schema.Column{ExamResultsColumns[2], ExamResultsColumns[11]}},
		},
	}

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		QuestionsTable,
		SkillStatsTable,
		AttemptsTable,
		PracticeSessionsTable,
		ExamSessionsTable,
		ExamResultsTable,
	}
)
