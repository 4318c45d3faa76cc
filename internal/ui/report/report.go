// Package report renders engine results for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/session"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/abhisek/prepengine/internal/ui/components"
	"github.com/abhisek/prepengine/internal/ui/theme"
)

const barWidth = 24

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
}

// Stats renders a student's skill profile.
func Stats(studentID string, stats []mastery.SkillStats, th difficulty.Thresholds) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Skill profile: "+studentID) + "\n")

	if len(stats) == 0 {
		b.WriteString(theme.Hint.Render("No practice recorded yet.") + "\n")
		return b.String()
	}

	t := newTable("Category", "Mastery", "Target", "Answered", "Accuracy", "Trend")
	for _, s := range stats {
		t.Row(
			s.Category,
			components.MasteryBar(s.MasteryLevel, barWidth),
			th.ForMastery(s.MasteryLevel).Label(),
			fmt.Sprintf("%d/%d", s.TotalCorrect, s.TotalAttempted),
			fmt.Sprintf("%.0f%%", s.Accuracy*100),
			theme.TrendStyle(s.Trend).Render(theme.TrendArrow(s.Trend)+" "+string(s.Trend)),
		)
	}
	b.WriteString(t.String() + "\n")
	return b.String()
}

// Practice renders a started practice session.
func Practice(ps *session.PracticeSession) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice session "+ps.ID) + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d questions, %s", len(ps.Questions), ps.Config.Mode)) + "\n\n")

	for i, q := range ps.Questions {
		b.WriteString(Question(i+1, q))
		b.WriteString("\n")
	}
	return b.String()
}

// Question renders one question with its options.
func Question(n int, q question.Question) string {
	var b strings.Builder
	head := fmt.Sprintf("%2d. [%s] %s · %s", n, q.ID, q.Category, q.Difficulty.Label())
	b.WriteString(theme.Value.Render(head) + "\n")
	if q.PassageID != "" {
		b.WriteString("    " + theme.Hint.Render("passage "+q.PassageID) + "\n")
	}
	b.WriteString("    " + theme.Body.Render(q.Stem) + "\n")
	for _, o := range q.Options {
		switch o.Kind {
		case question.OptionChoice:
			b.WriteString(fmt.Sprintf("      %s) %s\n", o.Label, o.Text))
		default:
			b.WriteString("      " + theme.Hint.Render(o.Text) + "\n")
		}
	}
	return b.String()
}

// Answer renders the skill record after an answer.
func Answer(correct bool, s mastery.SkillStats) string {
	verdict := theme.Incorrect.Render("✗ incorrect")
	if correct {
		verdict = theme.Correct.Render("✓ correct")
	}
	return fmt.Sprintf("%s  %s  %s  %s\n",
		verdict,
		theme.Body.Render(s.Category),
		components.MasteryBar(s.MasteryLevel, barWidth),
		theme.TrendStyle(s.Trend).Render(theme.TrendArrow(s.Trend)),
	)
}

// Summary renders the tally of a practice session.
func Summary(sum *session.Summary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session "+sum.SessionID) + "\n")
	b.WriteString(fmt.Sprintf("%s%s\n", theme.Label.Render("Answered"),
		theme.Value.Render(fmt.Sprintf("%d of %d", sum.Answered, sum.Total))))
	b.WriteString(fmt.Sprintf("%s%s\n", theme.Label.Render("Correct"),
		theme.Value.Render(fmt.Sprintf("%d (%.0f%%)", sum.Correct, sum.Accuracy*100))))

	if len(sum.Categories) > 0 {
		t := newTable("Category", "Correct", "Answered")
		for _, c := range sum.Categories {
			t.Row(c.Category, fmt.Sprint(c.Correct), fmt.Sprint(c.Attempted))
		}
		b.WriteString(t.String() + "\n")
	}
	return b.String()
}

// Exam renders a started exam.
func Exam(es *session.ExamSession) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Exam "+es.ID) + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s: %d questions, %s: %d questions",
		question.SectionELA.DisplayName(), len(es.Set.ELA),
		question.SectionMath.DisplayName(), len(es.Set.Math))) + "\n\n")

	n := 1
	for _, part := range [][]question.Question{es.Set.ELA, es.Set.Math} {
		for _, q := range part {
			b.WriteString(Question(n, q))
			n++
		}
	}
	return b.String()
}

// Score renders a scored exam.
func Score(sc exam.Score) string {
	lines := []string{
		theme.Label.Render("Composite") + theme.Value.Render(fmt.Sprint(sc.Composite)),
		theme.Label.Render(question.SectionELA.DisplayName()) +
			theme.Value.Render(fmt.Sprintf("%d  (%d/%d)", sc.ELAScaled, sc.ELARaw, sc.ELATotal)),
		theme.Label.Render(question.SectionMath.DisplayName()) +
			theme.Value.Render(fmt.Sprintf("%d  (%d/%d)", sc.MathScaled, sc.MathRaw, sc.MathTotal)),
	}
	card := theme.Card.Render(strings.Join(lines, "\n"))

	bd := sc.Breakdown
	t := newTable("Part", "Correct", "Total")
	for _, row := range []struct {
		name string
		t    exam.Tally
	}{
		{"Revising", bd.ELARevising},
		{"Reading", bd.ELAReading},
		{"Multiple choice", bd.MathMultipleChoice},
		{"Grid-in", bd.MathGridIn},
	} {
		t.Row(row.name, fmt.Sprint(row.t.Correct), fmt.Sprint(row.t.Total))
	}

	return lipgloss.JoinVertical(lipgloss.Left, card, t.String()) + "\n"
}

// History renders past exam results, newest first.
func History(results []store.ExamResult) string {
	if len(results) == 0 {
		return ""
	}
	t := newTable("Completed", "Exam", "Reading & Writing", "Math", "Composite")
	for _, r := range results {
		t.Row(
			r.CompletedAt.Local().Format("2006-01-02 15:04"),
			r.ExamID,
			fmt.Sprint(r.Score.ELAScaled),
			fmt.Sprint(r.Score.MathScaled),
			fmt.Sprint(r.Score.Composite),
		)
	}
	return theme.Title.Render("Exams") + "\n" + t.String() + "\n"
}
