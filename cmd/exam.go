package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepengine/internal/app"
	"github.com/abhisek/prepengine/internal/ui/report"
	"github.com/spf13/cobra"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Take and score full-length exams",
}

var examStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Assemble a new full-length exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		seed, _ := cmd.Flags().GetInt64("seed")

		return withContainer(cmd, seed, func(c *app.Container) error {
			es, err := c.Service.StartExam(cmd.Context(), student)
			if err != nil {
				return err
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), report.Exam(es))
			return err
		})
	},
}

var examSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Score an exam from a JSON answers file",
	Long: "Score an exam. The answers file maps question IDs to correctness, " +
		`e.g. {"q-1": true, "q-2": false}. Questions missing from the file count as incorrect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, _ := cmd.Flags().GetString("exam")
		path, _ := cmd.Flags().GetString("answers")

		answers, err := readAnswers(path)
		if err != nil {
			return err
		}

		return withContainer(cmd, 0, func(c *app.Container) error {
			score, err := c.Service.SubmitExam(cmd.Context(), examID, answers)
			if err != nil {
				return err
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), report.Score(score))
			return err
		})
	},
}

func readAnswers(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers map[string]bool
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers file %s: %w", path, err)
	}
	return answers, nil
}

func init() {
	examStartCmd.Flags().String("student", "", "Student ID (required)")
	examStartCmd.Flags().Int64("seed", 0, "Seed for reproducible assembly (0 = random)")
	examStartCmd.MarkFlagRequired("student")

	examSubmitCmd.Flags().String("exam", "", "Exam ID (required)")
	examSubmitCmd.Flags().String("answers", "", "Path to answers JSON file (required)")
	examSubmitCmd.MarkFlagRequired("exam")
	examSubmitCmd.MarkFlagRequired("answers")

	examCmd.AddCommand(examStartCmd)
	examCmd.AddCommand(examSubmitCmd)
}
