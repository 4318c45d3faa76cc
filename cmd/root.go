package cmd

import (
	"github.com/abhisek/prepengine/internal/app"
	"github.com/abhisek/prepengine/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "prepengine",
	Short: "Adaptive practice and exam scoring",
	Long: "prepengine serves adaptive practice sessions weighted toward weak skills, " +
		"tracks per-category mastery, and scores full-length exams on the 200-800 scale.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPENGINE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./prepengine.yaml or $XDG_CONFIG_HOME/prepengine/prepengine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration for cmd. Flags win over environment,
// which wins over the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if err := v.BindPFlag("db", cmd.Flags().Lookup("db")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return nil, err
	}
	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

// withContainer builds the application for one command and closes it
// when fn returns.
func withContainer(cmd *cobra.Command, seed int64, fn func(*app.Container) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := app.New(cfg, app.Options{Seed: seed, LogOutput: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
