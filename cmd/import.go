package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/prepengine/internal/app"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a question bank (JSON) into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		bank, err := question.DecodeBank(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		return withContainer(cmd, 0, func(c *app.Container) error {
			ctx := cmd.Context()
			if err := c.Store.Questions().Upsert(ctx, bank.Questions); err != nil {
				return err
			}
			counts, err := c.Store.Questions().Count(ctx)
			if err != nil {
				return err
			}
			c.Logger.WithField("questions", len(bank.Questions)).Info("question bank imported")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d questions\n", len(bank.Questions))
			for _, s := range question.AllSections() {
				fmt.Fprintf(out, "  %-18s %d in bank\n", s.DisplayName(), counts[s])
			}
			return nil
		})
	},
}
