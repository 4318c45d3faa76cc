package cmd

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepengine/internal/app"
	"github.com/abhisek/prepengine/internal/ui/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a student's skill profile and recent exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		exams, _ := cmd.Flags().GetInt("exams")

		return withContainer(cmd, 0, func(c *app.Container) error {
			ctx := cmd.Context()
			stats, err := c.Service.Stats(ctx, student)
			if err != nil {
				return err
			}
			history, err := c.Service.ExamHistory(ctx, student, exams)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := lipgloss.Fprint(out, report.Stats(student, stats, c.Config.Difficulty)); err != nil {
				return err
			}
			_, err = lipgloss.Fprint(out, report.History(history))
			return err
		})
	},
}

func init() {
	statsCmd.Flags().String("student", "", "Student ID (required)")
	statsCmd.Flags().IntP("exams", "n", 5, "Number of recent exams to show")
	statsCmd.MarkFlagRequired("student")
}
