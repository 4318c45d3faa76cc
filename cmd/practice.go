package cmd

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepengine/internal/app"
	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/abhisek/prepengine/internal/session"
	"github.com/abhisek/prepengine/internal/ui/report"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an adaptive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		section, _ := cmd.Flags().GetString("section")
		category, _ := cmd.Flags().GetString("category")
		tier, _ := cmd.Flags().GetInt("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		mode, _ := cmd.Flags().GetString("mode")
		seed, _ := cmd.Flags().GetInt64("seed")

		cfg := selector.SessionConfig{
			Section:       question.Section(section),
			Category:      category,
			Mode:          selector.Mode(mode),
			QuestionCount: count,
		}
		if tier != 0 {
			t, err := difficulty.ParseTier(tier)
			if err != nil {
				return err
			}
			cfg.Difficulty = t
		}

		return withContainer(cmd, seed, func(c *app.Container) error {
			ps, err := c.Service.StartPractice(cmd.Context(), student, cfg)
			if err != nil {
				return err
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), report.Practice(ps))
			return err
		})
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record the result of one practice question",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		sessionID, _ := cmd.Flags().GetString("session")
		questionID, _ := cmd.Flags().GetString("question")
		correct, _ := cmd.Flags().GetBool("correct")

		return withContainer(cmd, 0, func(c *app.Container) error {
			st, err := c.Service.RecordAnswer(cmd.Context(), session.AnswerInput{
				StudentID:  student,
				SessionID:  sessionID,
				QuestionID: questionID,
				IsCorrect:  correct,
			})
			if err != nil {
				return err
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), report.Answer(correct, st))
			return err
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the answers recorded for a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		return withContainer(cmd, 0, func(c *app.Container) error {
			sum, err := c.Service.Summarize(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), report.Summary(sum))
			return err
		})
	},
}

func init() {
	practiceCmd.Flags().String("student", "", "Student ID (required)")
	practiceCmd.Flags().String("section", "", "Restrict to a section: ela or math")
	practiceCmd.Flags().String("category", "", "Restrict to categories with this prefix")
	practiceCmd.Flags().Int("difficulty", 0, "Restrict to a difficulty tier (1-3)")
	practiceCmd.Flags().IntP("count", "n", selector.MinQuestionCount, "Number of questions (10-50)")
	practiceCmd.Flags().String("mode", string(selector.ModePractice), "Session mode: practice or timed_practice")
	practiceCmd.Flags().Int64("seed", 0, "Seed for reproducible selection (0 = random)")
	practiceCmd.MarkFlagRequired("student")

	answerCmd.Flags().String("student", "", "Student ID (required)")
	answerCmd.Flags().String("session", "", "Practice session ID")
	answerCmd.Flags().String("question", "", "Question ID (required)")
	answerCmd.Flags().Bool("correct", false, "Whether the answer was correct")
	answerCmd.MarkFlagRequired("student")
	answerCmd.MarkFlagRequired("question")

	summaryCmd.Flags().String("session", "", "Practice session ID (required)")
	summaryCmd.MarkFlagRequired("session")
}
