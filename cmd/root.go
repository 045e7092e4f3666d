package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "quizbox",
	Short:         "Multiple-choice quizzes in the terminal",
	Long:          "quizbox: take built-in and home-made multiple-choice tests in the terminal, with progress saved as you go.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, app.Options{})
	},
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a quizbox.yaml config file")
	pf.String("db", "", "Path to SQLite database file (overrides QUIZBOX_DB)")
	pf.Bool("ephemeral", false, "Keep all data in memory; nothing is saved")
	pf.String("bundle", "", "Built-in test bundle: URL or file path (default: embedded)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Log file path (default: quizbox.log next to the database)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(versionCmd)
}
